package ui_test

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/gravitational/uitest/lib/ui"
	"github.com/gravitational/uitest/lib/wait"
	"github.com/gravitational/uitest/lib/webdrivertest"

	"github.com/gravitational/trace"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/tebeka/selenium"
)

var _ = Describe("Page", func() {
	var (
		driver *webdrivertest.Driver
		page   *ui.Page
	)

	BeforeEach(func() {
		driver = webdrivertest.New()
		page = ui.New(driver, ui.WithTimeout(300*time.Millisecond), ui.WithPollInterval(10*time.Millisecond))
	})

	Describe("navigation", func() {
		It("opens the URL in the current window", func() {
			Expect(page.Open("https://example.com/")).To(Succeed())
			Expect(page.CurrentURL()).To(Equal("https://example.com/"))

			driver.SetTitle("Example")
			Expect(page.Title()).To(Equal("Example"))
		})
	})

	Describe("waits", func() {
		It("returns the element once it becomes visible", func() {
			button := &webdrivertest.Element{ID: "submit", Tag: "button", Hidden: true}
			driver.Add(button)
			time.AfterFunc(50*time.Millisecond, func() {
				button.Set(func(e *webdrivertest.Element) { e.Hidden = false })
			})

			el, err := page.WaitForVisibility(ui.ByID("submit"))
			Expect(err).NotTo(HaveOccurred())
			Expect(el).To(BeIdenticalTo(button))
		})

		It("times out on a missing element", func() {
			start := time.Now()
			_, err := page.WaitForVisibilityTimeout(ui.ByCSS("#missing"), 100*time.Millisecond)
			Expect(wait.IsTimeout(err)).To(BeTrue())
			Expect(time.Since(start)).To(BeNumerically("<", 300*time.Millisecond))
		})

		It("does not consider a disabled element clickable", func() {
			driver.Add(&webdrivertest.Element{ID: "save", Tag: "button", Disabled: true})
			_, err := page.WaitForClickable(ui.ByID("save"))
			Expect(wait.IsTimeout(err)).To(BeTrue())
		})

		It("finds hidden elements attached to the document", func() {
			driver.Add(&webdrivertest.Element{ID: "token", Tag: "input", Hidden: true})
			_, err := page.WaitForPresence(ui.ByID("token"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("waits for an element to disappear", func() {
			spinner := &webdrivertest.Element{ID: "spinner", Tag: "div"}
			driver.Add(spinner)
			time.AfterFunc(30*time.Millisecond, func() { driver.Remove(spinner) })
			Expect(page.WaitForInvisibility(ui.ByID("spinner"), time.Second)).To(Succeed())
		})

		It("is interrupted by the context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := page.WithContext(ctx).WaitForVisibility(ui.ByID("missing"))
			Expect(wait.IsInterrupted(err)).To(BeTrue())
		})

		It("polls a custom condition", func() {
			calls := 0
			err := page.FluentWait(func(selenium.WebDriver) (bool, error) {
				calls++
				return calls == 3, nil
			}, time.Second, 5*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(3))
		})
	})

	Describe("clicks", func() {
		It("clicks natively", func() {
			button := &webdrivertest.Element{ID: "go", Tag: "button"}
			driver.Add(button)
			Expect(page.Click(ui.ByID("go"))).To(Succeed())
			Expect(button.NativeClicks).To(Equal(1))
		})

		It("falls back to a scripted click if the native click fails", func() {
			button := &webdrivertest.Element{
				ID:       "go",
				Tag:      "button",
				ClickErr: &selenium.Error{Err: "element click intercepted"},
			}
			driver.Add(button)

			Expect(page.SafeClick(ui.ByID("go"))).To(Succeed())
			Expect(button.NativeClicks).To(Equal(1))
			Expect(button.ScriptClicks).To(Equal(1))
			Expect(driver.Scripts()).To(ConsistOf("arguments[0].click();"))
		})

		It("does not fall back if the native click succeeds", func() {
			button := &webdrivertest.Element{ID: "go", Tag: "button"}
			driver.Add(button)
			Expect(page.SafeClick(ui.ByID("go"))).To(Succeed())
			Expect(button.ScriptClicks).To(Equal(0))
			Expect(driver.Scripts()).To(BeEmpty())
		})

		It("retries failed clicks", func() {
			button := &webdrivertest.Element{
				ID:       "flaky",
				Tag:      "button",
				ClickErr: &selenium.Error{Err: "stale element reference"},
			}
			driver.Add(button)
			time.AfterFunc(30*time.Millisecond, func() {
				button.Set(func(e *webdrivertest.Element) { e.ClickErr = nil })
			})

			Expect(page.RetryingClick(ui.ByID("flaky"), 5, 20*time.Millisecond)).To(BeTrue())
			var clicks int
			button.Get(func(e *webdrivertest.Element) { clicks = e.NativeClicks })
			Expect(clicks).To(BeNumerically(">=", 2))
		})

		It("gives up after the given number of attempts", func() {
			button := &webdrivertest.Element{
				ID:       "broken",
				Tag:      "button",
				ClickErr: &selenium.Error{Err: "element not interactable"},
			}
			driver.Add(button)

			const interval = 50 * time.Millisecond
			start := time.Now()
			Expect(page.RetryingClick(ui.ByID("broken"), 3, interval)).To(BeFalse())
			elapsed := time.Since(start)
			// two sleeps between three attempts, none after the last one
			Expect(elapsed).To(BeNumerically(">=", 2*interval))
			Expect(elapsed).To(BeNumerically("<", 3*interval))
			Expect(button.NativeClicks).To(Equal(3))
		})
	})

	Describe("input", func() {
		It("replaces the contents of the input", func() {
			input := &webdrivertest.Element{ID: "search", Tag: "input", Value: "old"}
			driver.Add(input)
			Expect(page.Type(ui.ByID("search"), "gravitational")).To(Succeed())
			Expect(input.Value).To(Equal("gravitational"))
			Expect(page.Attribute(ui.ByID("search"), "value")).To(Equal("gravitational"))
		})

		It("clears and submits", func() {
			input := &webdrivertest.Element{ID: "search", Tag: "input", Value: "old"}
			driver.Add(input)
			Expect(page.Clear(ui.ByID("search"))).To(Succeed())
			Expect(page.Submit(ui.ByID("search"))).To(Succeed())
			Expect(input.Value).To(BeEmpty())
			Expect(input.Submits).To(Equal(1))
		})

		It("reads the text of an element", func() {
			driver.Add(&webdrivertest.Element{Tag: "h1", Classes: []string{"title"}, InnerText: "Welcome"})
			Expect(page.Text(ui.ByCSS(".title"))).To(Equal("Welcome"))
			Expect(page.IsElementPresent(ui.ByText("Welcome"))).To(BeTrue())
		})
	})

	Describe("element state", func() {
		It("reports state of visible elements", func() {
			driver.Add(&webdrivertest.Element{ID: "agree", Tag: "input", Selected: true, Disabled: true})
			Expect(page.IsDisplayed(ui.ByID("agree"))).To(BeTrue())
			Expect(page.IsSelected(ui.ByID("agree"))).To(BeTrue())
			Expect(page.IsEnabled(ui.ByID("agree"))).To(BeFalse())
		})

		It("reports false for missing elements", func() {
			Expect(page.IsDisplayed(ui.ByID("missing"))).To(BeFalse())
			Expect(page.IsElementPresent(ui.ByID("missing"))).To(BeFalse())
		})

		It("reports false if the driver fails", func() {
			driver.Add(&webdrivertest.Element{ID: "agree", Tag: "input"})
			driver.FindErr = &selenium.Error{Err: "unknown error"}
			Expect(page.IsElementPresent(ui.ByID("agree"))).To(BeFalse())
			Expect(page.IsEnabled(ui.ByID("agree"))).To(BeFalse())
		})
	})

	Describe("gestures", func() {
		BeforeEach(func() {
			driver.Add(
				&webdrivertest.Element{ID: "card", Tag: "div"},
				&webdrivertest.Element{ID: "column", Tag: "div"},
			)
		})

		It("hovers and clicks with the pointer", func() {
			Expect(page.Hover(ui.ByID("card"))).To(Succeed())
			Expect(page.DoubleClick(ui.ByID("card"))).To(Succeed())
			Expect(page.RightClick(ui.ByID("column"))).To(Succeed())
			Expect(driver.Mouse()).To(Equal([]string{
				"move@card",
				"move@card", "doubleclick@card",
				"move@column", "click:2@column",
			}))
		})

		It("drags an element onto another", func() {
			Expect(page.DragAndDrop(ui.ByID("card"), ui.ByID("column"))).To(Succeed())
			Expect(driver.Mouse()).To(Equal([]string{"move@card", "down@card", "move@column", "up@column"}))
		})

		Context("on a driver without legacy mouse commands", func() {
			var dispatched [][]interface{}

			BeforeEach(func() {
				dispatched = nil
				driver.W3C = true
				driver.OnScript = func(script string, args []interface{}) (interface{}, error) {
					Expect(script).To(ContainSubstring("dispatchEvent"))
					dispatched = append(dispatched, args)
					return nil, nil
				}
			})

			It("dispatches pointer events by script", func() {
				Expect(page.Hover(ui.ByID("card"))).To(Succeed())
				Expect(page.DoubleClick(ui.ByID("card"))).To(Succeed())
				Expect(page.RightClick(ui.ByID("column"))).To(Succeed())
				Expect(page.DragAndDrop(ui.ByID("card"), ui.ByID("column"))).To(Succeed())

				Expect(driver.Mouse()).To(BeEmpty())
				Expect(dispatched).To(HaveLen(4))
				scripts := driver.Scripts()
				Expect(scripts[0]).To(ContainSubstring("mouseover"))
				Expect(scripts[1]).To(ContainSubstring("dblclick"))
				Expect(scripts[2]).To(ContainSubstring("contextmenu"))
				Expect(scripts[3]).To(ContainSubstring("drop"))
				Expect(dispatched[3]).To(HaveLen(2))
				Expect(dispatched[3][0].(*webdrivertest.Element).ID).To(Equal("card"))
				Expect(dispatched[3][1].(*webdrivertest.Element).ID).To(Equal("column"))
			})

			It("reports script failures", func() {
				driver.OnScript = func(string, []interface{}) (interface{}, error) {
					return nil, &selenium.Error{Err: "javascript error", Message: "MouseEvent is not defined"}
				}
				err := page.Hover(ui.ByID("card"))
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("MouseEvent is not defined"))
			})
		})

		It("does not fall back to script on other driver failures", func() {
			driver.MouseErr = &selenium.Error{Err: "move target out of bounds"}
			err := page.DoubleClick(ui.ByID("card"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("move target out of bounds"))
			Expect(driver.Scripts()).To(BeEmpty())
		})
	})

	Describe("select", func() {
		var red, green, blue *webdrivertest.Element

		BeforeEach(func() {
			red = &webdrivertest.Element{Tag: "option", Value: "r", InnerText: "Red", Selected: true}
			green = &webdrivertest.Element{Tag: "option", Value: "g", InnerText: "Green"}
			blue = &webdrivertest.Element{Tag: "option", Value: "b", InnerText: " Blue "}
			driver.Add(&webdrivertest.Element{ID: "color", Tag: "select", Options: []*webdrivertest.Element{red, green, blue}})
		})

		It("selects by visible text", func() {
			Expect(page.SelectByVisibleText(ui.ByID("color"), "Blue")).To(Succeed())
			Expect(blue.Selected).To(BeTrue())
			Expect(red.Selected).To(BeFalse())
			Expect(page.SelectedOption(ui.ByID("color"))).To(Equal("Blue"))
		})

		It("selects by value", func() {
			Expect(page.SelectByValue(ui.ByID("color"), "g")).To(Succeed())
			Expect(green.Selected).To(BeTrue())
		})

		It("selects by index", func() {
			Expect(page.SelectByIndex(ui.ByID("color"), 2)).To(Succeed())
			Expect(page.SelectedOption(ui.ByID("color"))).To(Equal("Blue"))
		})

		It("does not click an already selected option", func() {
			Expect(page.SelectByValue(ui.ByID("color"), "r")).To(Succeed())
			Expect(red.NativeClicks).To(Equal(0))
		})

		It("fails for unknown options", func() {
			err := page.SelectByVisibleText(ui.ByID("color"), "Purple")
			Expect(trace.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("frames and alerts", func() {
		It("switches between frames", func() {
			frame := &webdrivertest.Element{ID: "editor", Tag: "iframe"}
			driver.Add(frame)
			Expect(page.SwitchToFrame(ui.ByID("editor"))).To(Succeed())
			Expect(driver.Frame()).To(BeIdenticalTo(frame))
			Expect(page.SwitchToFrameIndex(1)).To(Succeed())
			Expect(driver.Frame()).To(Equal(1))
			Expect(page.SwitchToDefaultContent()).To(Succeed())
			Expect(driver.Frame()).To(BeNil())
		})

		It("accepts an alert", func() {
			time.AfterFunc(30*time.Millisecond, func() { driver.ShowAlert("Are you sure?") })
			Expect(page.AlertText()).To(Equal("Are you sure?"))
			Expect(page.AcceptAlert()).To(Succeed())
			Expect(driver.AlertOpen()).To(BeFalse())
		})

		It("dismisses an alert", func() {
			driver.ShowAlert("Leave page?")
			Expect(page.DismissAlert()).To(Succeed())
			Expect(driver.AlertOpen()).To(BeFalse())
		})

		It("times out without an alert", func() {
			Expect(wait.IsTimeout(page.AcceptAlert())).To(BeTrue())
		})
	})

	Describe("windows", func() {
		BeforeEach(func() {
			driver.SetTitle("Home")
			driver.AddWindow(webdrivertest.Window{Handle: "window-2", Title: "Docs"})
		})

		It("switches to the window with the given title", func() {
			Expect(page.WindowHandles()).To(Equal([]string{"window-1", "window-2"}))
			Expect(page.SwitchToWindowByTitle("Docs", time.Second)).To(BeTrue())
			Expect(driver.CurrentWindow().Handle).To(Equal("window-2"))
		})

		It("waits for the window to open", func() {
			time.AfterFunc(30*time.Millisecond, func() {
				driver.AddWindow(webdrivertest.Window{Handle: "window-3", Title: "Report"})
			})
			Expect(page.SwitchToWindowByTitle("Report", time.Second)).To(BeTrue())
			Expect(driver.CurrentWindow().Handle).To(Equal("window-3"))
		})

		It("is left in the last window if no title matches", func() {
			start := time.Now()
			Expect(page.SwitchToWindowByTitle("Missing", 100*time.Millisecond)).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically("<", 500*time.Millisecond))
			Expect(driver.CurrentWindow().Handle).To(Equal("window-2"))
		})

		It("closes the current window", func() {
			Expect(page.SwitchToWindowByTitle("Docs", time.Second)).To(BeTrue())
			Expect(page.Close()).To(Succeed())
			Expect(page.WindowHandles()).To(Equal([]string{"window-1"}))
		})
	})

	Describe("scripts", func() {
		It("waits for the document to load", func() {
			driver.ReadyState = "loading"
			Expect(page.WaitForPageLoad(50 * time.Millisecond)).To(BeFalse())
			driver.ReadyState = "complete"
			Expect(page.WaitForPageLoad(50 * time.Millisecond)).To(BeTrue())
		})

		It("scrolls elements into view", func() {
			footer := &webdrivertest.Element{ID: "footer", Tag: "footer"}
			driver.Add(footer)
			Expect(page.ScrollIntoView(ui.ByID("footer"))).To(Succeed())
			Expect(footer.ScrolledIntoView).To(BeTrue())
		})

		It("passes arguments to the script", func() {
			driver.OnScript = func(script string, args []interface{}) (interface{}, error) {
				return args[0], nil
			}
			Expect(page.ExecuteScript("return arguments[0];", "value")).To(Equal("value"))
		})
	})

	Describe("screenshots", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = ioutil.TempDir("", "ui")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("writes the screenshot creating missing directories", func() {
			driver.ScreenshotData = []byte("\x89PNG")
			path := filepath.Join(dir, "nested", "shot.png")
			Expect(page.TakeScreenshot(path)).To(Succeed())
			Expect(ioutil.ReadFile(path)).To(Equal([]byte("\x89PNG")))
		})

		It("reports capture failures", func() {
			driver.ScreenshotErr = errors.New("session deleted")
			Expect(page.TakeScreenshot(filepath.Join(dir, "shot.png"))).NotTo(Succeed())
		})
	})

	It("terminates the session", func() {
		Expect(page.Quit()).To(Succeed())
		Expect(driver.Quits()).To(Equal(1))
	})
})
