package specs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/gravitational/uitest/e2e/fixture"
	"github.com/gravitational/uitest/e2e/framework"
	"github.com/gravitational/uitest/e2e/uimodel/welcome"
	"github.com/gravitational/uitest/lib/ui"
	"github.com/gravitational/uitest/lib/wait"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// VerifyInteractions verifies element interactions against the local fixture pages
func VerifyInteractions(getPage PageGetter, address func(path string) string) {
	framework.RoboDescribe("Element interactions", func() {
		var page *ui.Page

		BeforeEach(func() {
			page = getPage()
			Expect(page.Open(address("/"))).To(Succeed())
			Expect(page.WaitForPageLoad(10 * time.Second)).To(BeTrue())
		})

		AfterEach(func() {
			framework.CaptureOnFailure(page, CurrentGinkgoTestDescription().FullTestText)
		})

		It("should report unknown users", func() {
			landing := welcome.NewWithURL(page, address("/"))
			Expect(landing.IsAt()).To(BeTrue())
			Expect(landing.Search(fixture.UnknownUser)).To(Succeed())
			Expect(landing.SearchError()).To(Equal("there is no user with that username"))
			Expect(landing.RemainingRequests()).To(Equal("requests : 59 / 60"))
		})

		It("should fall back to a scripted click on a covered element", func() {
			Expect(page.SafeClick(ui.ByID("covered"))).To(Succeed())
			Expect(page.Text(ui.ByID("covered-result"))).To(Equal("clicked"))
		})

		It("should retry clicking a disabled element", func() {
			impatient := ui.New(page.Driver(), ui.WithTimeout(100*time.Millisecond))
			Expect(impatient.RetryingClick(ui.ByID("delayed"), 10, 200*time.Millisecond)).To(BeTrue())
			Expect(page.Text(ui.ByID("delayed-result"))).To(Equal("clicked"))
		})

		It("should wait for an element to disappear", func() {
			Expect(page.WaitForInvisibility(ui.ByID("spinner"), 5*time.Second)).To(Succeed())
			Expect(page.IsElementPresent(ui.ByID("spinner"))).To(BeFalse())
		})

		It("should time out waiting for a missing element", func() {
			_, err := page.WaitForVisibilityTimeout(ui.ByID("missing"), time.Second)
			Expect(wait.IsTimeout(err)).To(BeTrue())
		})

		It("should toggle a checkbox", func() {
			Expect(page.IsSelected(ui.ByID("terms"))).To(BeFalse())
			Expect(page.Click(ui.ByID("terms"))).To(Succeed())
			Expect(page.IsSelected(ui.ByID("terms"))).To(BeTrue())
		})

		It("should select options", func() {
			Expect(page.SelectByVisibleText(ui.ByID("sort"), "Stars")).To(Succeed())
			Expect(page.SelectedOption(ui.ByID("sort"))).To(Equal("Stars"))
			Expect(page.SelectByValue(ui.ByID("sort"), "repos")).To(Succeed())
			Expect(page.SelectedOption(ui.ByID("sort"))).To(Equal("Repositories"))
			Expect(page.SelectByIndex(ui.ByID("sort"), 0)).To(Succeed())
			Expect(page.SelectedOption(ui.ByID("sort"))).To(Equal("Followers"))
		})

		It("should handle dialogs", func() {
			Expect(page.Click(ui.ByID("confirm"))).To(Succeed())
			Expect(page.AlertText()).To(Equal(fixture.AlertText))
			Expect(page.AcceptAlert()).To(Succeed())
			Expect(page.Text(ui.ByID("confirm-result"))).To(Equal("confirmed"))

			Expect(page.Click(ui.ByID("confirm"))).To(Succeed())
			Expect(page.DismissAlert()).To(Succeed())
			Expect(page.Text(ui.ByID("confirm-result"))).To(Equal("cancelled"))
		})

		It("should switch between windows", func() {
			title, err := page.Title()
			Expect(err).NotTo(HaveOccurred())

			Expect(page.Click(ui.ByID("open-docs"))).To(Succeed())
			Expect(page.SwitchToWindowByTitle(fixture.DocsTitle, 5*time.Second)).To(BeTrue())
			Expect(page.CurrentURL()).To(HaveSuffix("/docs"))
			Expect(page.Close()).To(Succeed())

			Expect(page.SwitchToWindowByTitle(title, 5*time.Second)).To(BeTrue())
			Expect(page.WindowHandles()).To(HaveLen(1))
		})

		It("should report a missing window", func() {
			Expect(page.SwitchToWindowByTitle("no such window", 500*time.Millisecond)).To(BeFalse())
		})

		It("should switch into frames", func() {
			Expect(page.SwitchToFrame(ui.ByID("frame"))).To(Succeed())
			Expect(page.Text(ui.ByID("inner"))).To(Equal("inside frame"))
			Expect(page.SwitchToDefaultContent()).To(Succeed())
			Expect(page.IsElementPresent(ui.ByID("covered"))).To(BeTrue())

			Expect(page.SwitchToFrameIndex(0)).To(Succeed())
			Expect(page.IsElementPresent(ui.ByID("inner"))).To(BeTrue())
			Expect(page.SwitchToDefaultContent()).To(Succeed())
		})

		It("should hover over elements", func() {
			Expect(page.IsElementPresent(ui.ByText("Profile"))).To(BeTrue())
			Expect(page.Hover(ui.ByID("menu"))).To(Succeed())
			_, err := page.WaitForVisibility(ui.ByText("Profile"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should double-click elements", func() {
			Expect(page.DoubleClick(ui.ByID("repo"))).To(Succeed())
			Expect(page.Text(ui.ByID("repo-result"))).To(Equal("double-clicked"))
		})

		It("should open the context menu", func() {
			Expect(page.RightClick(ui.ByID("follower"))).To(Succeed())
			Expect(page.Text(ui.ByID("follower-result"))).To(Equal("context menu"))
		})

		It("should drag elements onto others", func() {
			Expect(page.DragAndDrop(ui.ByID("card"), ui.ByID("column"))).To(Succeed())
			Expect(page.Text(ui.ByID("column-result"))).To(Equal("dropped"))
			Expect(page.IsElementPresent(ui.ByCSS("#column #card"))).To(BeTrue())
		})

		It("should scroll elements into view", func() {
			Expect(page.ScrollIntoView(ui.ByID("footer"))).To(Succeed())
			Expect(page.ExecuteScript("return window.pageYOffset > 0;")).To(BeTrue())
		})

		It("should take screenshots", func() {
			dir, err := ioutil.TempDir("", "uitest")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(dir)

			path := filepath.Join(dir, "shots", "landing.png")
			Expect(page.TakeScreenshot(path)).To(Succeed())
			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Size()).To(BeNumerically(">", 0))
		})
	})
}
