// Package webdrivertest provides an in-memory WebDriver for testing page models
// without a browser.
//
// Only the commands used by the page helpers are implemented; calling any other
// method of selenium.WebDriver or selenium.WebElement panics.
package webdrivertest

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tebeka/selenium"
)

// New returns a driver with a single empty window
func New() *Driver {
	d := &Driver{ReadyState: "complete"}
	d.windows = []*Window{{Handle: "window-1"}}
	return d
}

// Driver is a fake selenium.WebDriver backed by a list of elements
type Driver struct {
	selenium.WebDriver

	// ReadyState is reported for document.readyState
	ReadyState string
	// ScreenshotData is returned from Screenshot
	ScreenshotData []byte
	// ScreenshotErr fails Screenshot if set
	ScreenshotErr error
	// FindErr fails element lookups if set
	FindErr error
	// MaximizeErr fails MaximizeWindow if set
	MaximizeErr error
	// QuitErr fails Quit if set
	QuitErr error
	// MouseErr fails pointer button commands if set
	MouseErr error
	// W3C makes the driver reject the legacy mouse commands
	// (moveto, click, doubleclick, buttondown, buttonup) like geckodriver does
	W3C bool
	// OnScript handles scripts the driver does not know about
	OnScript func(script string, args []interface{}) (interface{}, error)

	mu           sync.Mutex
	elements     []*Element
	windows      []*Window
	current      int
	alert        *string
	frame        interface{}
	hovered      *Element
	mouse        []string
	scripts      []string
	quits        int
	implicitWait time.Duration
	switches     []string
}

// Window is a browser window
type Window struct {
	Handle string
	Title  string
	URL    string
}

// Add registers elements with the driver
func (d *Driver) Add(elements ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, el := range elements {
		el.attach(d)
		d.elements = append(d.elements, el)
	}
}

// Remove detaches the element from the document.
// Further use of existing handles fails with a stale element error
func (d *Driver) Remove(el *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.elements {
		if existing == el {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			break
		}
	}
	el.detached = true
}

// AddWindow opens another window
func (d *Driver) AddWindow(w Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows = append(d.windows, &w)
}

// SetTitle sets the title of the current window
func (d *Driver) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows[d.current].Title = title
}

// ShowAlert opens a native dialog with the given text
func (d *Driver) ShowAlert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alert = &text
}

// AlertOpen returns true if a dialog is pending
func (d *Driver) AlertOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alert != nil
}

// CurrentWindow returns the window the driver is switched into
func (d *Driver) CurrentWindow() Window {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.windows[d.current]
}

// Frame returns the frame the driver is switched into, nil for the top-level document
func (d *Driver) Frame() interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// Mouse returns the recorded pointer commands
func (d *Driver) Mouse() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.mouse...)
}

// Scripts returns the recorded scripts
func (d *Driver) Scripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.scripts...)
}

// WindowSwitches returns the handles of all windows switched into
func (d *Driver) WindowSwitches() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.switches...)
}

// Quits returns the number of times the session was terminated
func (d *Driver) Quits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quits
}

// ImplicitWait returns the configured implicit wait timeout
func (d *Driver) ImplicitWait() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.implicitWait
}

func (d *Driver) SetImplicitWaitTimeout(timeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.implicitWait = timeout
	return nil
}

func (d *Driver) Get(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows[d.current].URL = url
	return nil
}

func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windows[d.current].URL, nil
}

func (d *Driver) Title() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windows[d.current].Title, nil
}

func (d *Driver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var handles []string
	for _, w := range d.windows {
		handles = append(handles, w.Handle)
	}
	return handles, nil
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windows[d.current].Handle, nil
}

func (d *Driver) SwitchWindow(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range d.windows {
		if w.Handle == name {
			d.current = i
			d.switches = append(d.switches, name)
			return nil
		}
	}
	return &selenium.Error{Err: "no such window", Message: name}
}

func (d *Driver) SwitchFrame(frame interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = frame
	return nil
}

func (d *Driver) MaximizeWindow(name string) error {
	return d.MaximizeErr
}

// Close closes the current window
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.windows) == 0 {
		return &selenium.Error{Err: "no such window"}
	}
	d.windows = append(d.windows[:d.current], d.windows[d.current+1:]...)
	d.current = 0
	return nil
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quits++
	return d.QuitErr
}

func (d *Driver) AcceptAlert() error {
	return d.resolveAlert()
}

func (d *Driver) DismissAlert() error {
	return d.resolveAlert()
}

func (d *Driver) AlertText() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.alert == nil {
		return "", errNoAlert
	}
	return *d.alert, nil
}

func (d *Driver) resolveAlert() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.alert == nil {
		return errNoAlert
	}
	d.alert = nil
	return nil
}

func (d *Driver) Screenshot() ([]byte, error) {
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	return d.ScreenshotData, nil
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	elements, err := d.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, &selenium.Error{Err: "no such element", Message: fmt.Sprintf("%v=%v", by, value)}
	}
	return elements[0], nil
}

func (d *Driver) FindElements(by, value string) ([]selenium.WebElement, error) {
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var found []selenium.WebElement
	for _, el := range d.elements {
		if el.matches(by, value) {
			found = append(found, el)
		}
	}
	return found, nil
}

func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.mu.Lock()
	d.scripts = append(d.scripts, script)
	readyState := d.ReadyState
	d.mu.Unlock()

	switch strings.TrimSpace(script) {
	case "return document.readyState":
		return readyState, nil
	case "arguments[0].click();":
		el, err := elementArg(args)
		if err != nil {
			return nil, err
		}
		return nil, el.scriptClick()
	case "arguments[0].scrollIntoView(true);":
		el, err := elementArg(args)
		if err != nil {
			return nil, err
		}
		el.mu().Lock()
		el.ScrolledIntoView = true
		el.mu().Unlock()
		return nil, nil
	}
	if d.OnScript != nil {
		return d.OnScript(script, args)
	}
	return nil, nil
}

func (d *Driver) Click(button int) error {
	return d.recordMouse(fmt.Sprintf("click:%v", button))
}

func (d *Driver) DoubleClick() error {
	return d.recordMouse("doubleclick")
}

func (d *Driver) ButtonDown() error {
	return d.recordMouse("down")
}

func (d *Driver) ButtonUp() error {
	return d.recordMouse("up")
}

func (d *Driver) recordMouse(action string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.W3C {
		return errUnknownCommand
	}
	if d.MouseErr != nil {
		return d.MouseErr
	}
	if d.hovered == nil {
		return &selenium.Error{Err: "move target out of bounds"}
	}
	d.mouse = append(d.mouse, fmt.Sprintf("%v@%v", action, d.hovered.ID))
	return nil
}

func elementArg(args []interface{}) (*Element, error) {
	if len(args) == 0 {
		return nil, &selenium.Error{Err: "javascript error", Message: "arguments[0] is undefined"}
	}
	el, ok := args[0].(*Element)
	if !ok {
		return nil, &selenium.Error{Err: "javascript error", Message: "arguments[0] is not an element"}
	}
	return el, nil
}

var (
	errNoAlert        = &selenium.Error{Err: "no such alert"}
	errUnknownCommand = &selenium.Error{Err: "unknown command", Message: "unknown command", HTTPCode: 404}
)
