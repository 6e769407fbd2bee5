package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gravitational/uitest/lib/constants"
	"github.com/gravitational/uitest/lib/wait"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// Click waits for the element to become clickable and clicks it
func (p *Page) Click(loc Locator) error {
	el, err := p.WaitForClickable(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(el.Click(), "clicking %v", loc)
}

// SafeClick clicks the element natively and falls back to a scripted click
// once if the native click fails
func (p *Page) SafeClick(loc Locator) error {
	err := p.Click(loc)
	if err == nil {
		return nil
	}
	if wait.IsInterrupted(err) {
		return trace.Wrap(err)
	}
	p.log.WithError(err).Debugf("Native click on %v failed, falling back to scripted click.", loc)
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = p.wd.ExecuteScript(scriptClick, []interface{}{el})
	return trace.Wrap(err, "clicking %v", loc)
}

// RetryingClick attempts to click the element up to attempts times sleeping
// interval between failed attempts. Returns true if any attempt succeeded
func (p *Page) RetryingClick(loc Locator, attempts int, interval time.Duration) bool {
	retryer := wait.Retryer{
		Delay:       interval,
		Attempts:    attempts,
		FieldLogger: p.log.WithField(constants.FieldLocator, loc.String()),
	}
	err := retryer.Do(p.ctx, func() error {
		return p.Click(loc)
	})
	if err != nil {
		p.log.WithError(err).Warnf("Failed to click %v.", loc)
		return false
	}
	return true
}

// Type replaces the contents of the input element with text
func (p *Page) Type(loc Locator, text string) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := el.Clear(); err != nil {
		return trace.Wrap(err, "clearing %v", loc)
	}
	return trace.Wrap(el.SendKeys(text), "typing into %v", loc)
}

// Clear clears the contents of the input element
func (p *Page) Clear(loc Locator) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(el.Clear(), "clearing %v", loc)
}

// Submit submits the form the element belongs to
func (p *Page) Submit(loc Locator) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(el.Submit(), "submitting %v", loc)
}

// Text returns the visible text of the element
func (p *Page) Text(loc Locator) (string, error) {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return "", trace.Wrap(err)
	}
	text, err := el.Text()
	return text, trace.Wrap(err)
}

// Attribute returns the value of the named attribute of the element
func (p *Page) Attribute(loc Locator, name string) (string, error) {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return "", trace.Wrap(err)
	}
	value, err := el.GetAttribute(name)
	return value, trace.Wrap(err)
}

// IsDisplayed returns true if the element becomes visible within the timeout
func (p *Page) IsDisplayed(loc Locator) bool {
	return p.state(loc, func(el selenium.WebElement) (bool, error) {
		return el.IsDisplayed()
	})
}

// IsEnabled returns true if the element is visible and enabled
func (p *Page) IsEnabled(loc Locator) bool {
	return p.state(loc, func(el selenium.WebElement) (bool, error) {
		return el.IsEnabled()
	})
}

// IsSelected returns true if the element is visible and selected
func (p *Page) IsSelected(loc Locator) bool {
	return p.state(loc, func(el selenium.WebElement) (bool, error) {
		return el.IsSelected()
	})
}

// IsElementPresent returns true if at least one element matches the locator.
// Does not wait
func (p *Page) IsElementPresent(loc Locator) bool {
	elements, err := p.wd.FindElements(loc.By, loc.Value)
	if err != nil {
		return false
	}
	return len(elements) > 0
}

func (p *Page) state(loc Locator, check func(selenium.WebElement) (bool, error)) bool {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return false
	}
	ok, err := check(el)
	if err != nil {
		return false
	}
	return ok
}

// Hover moves the pointer over the element.
// Drivers without legacy mouse commands get the mouse events dispatched by script
func (p *Page) Hover(loc Locator) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	err = p.gesture(func() error {
		return el.MoveTo(0, 0)
	}, scriptHover, el)
	return trace.Wrap(err, "hovering over %v", loc)
}

// DoubleClick double-clicks the element
func (p *Page) DoubleClick(loc Locator) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	err = p.gesture(func() error {
		if err := el.MoveTo(0, 0); err != nil {
			return err
		}
		return p.wd.DoubleClick()
	}, scriptDoubleClick, el)
	return trace.Wrap(err, "double-clicking %v", loc)
}

// RightClick opens the context menu of the element
func (p *Page) RightClick(loc Locator) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	err = p.gesture(func() error {
		if err := el.MoveTo(0, 0); err != nil {
			return err
		}
		return p.wd.Click(selenium.RightButton)
	}, scriptContextMenu, el)
	return trace.Wrap(err, "right-clicking %v", loc)
}

// DragAndDrop drags the source element onto the target element
func (p *Page) DragAndDrop(source, target Locator) error {
	from, err := p.WaitForVisibility(source)
	if err != nil {
		return trace.Wrap(err)
	}
	to, err := p.WaitForVisibility(target)
	if err != nil {
		return trace.Wrap(err)
	}
	err = p.gesture(func() error {
		if err := from.MoveTo(0, 0); err != nil {
			return err
		}
		if err := p.wd.ButtonDown(); err != nil {
			return err
		}
		if err := to.MoveTo(0, 0); err != nil {
			return err
		}
		return p.wd.ButtonUp()
	}, scriptDragAndDrop, from, to)
	return trace.Wrap(err, "dropping %v onto %v", source, target)
}

// gesture runs the pointer gesture with legacy mouse commands and replays it
// with script when the driver does not implement them.
// W3C-only drivers (geckodriver, chromedriver in W3C mode) answer the legacy
// endpoints with "unknown command"
func (p *Page) gesture(mouse func() error, script string, args ...interface{}) error {
	err := mouse()
	if !isUnknownCommand(err) {
		return trace.Wrap(err)
	}
	p.log.WithError(err).Debug("Legacy mouse commands not supported, dispatching events by script.")
	_, err = p.wd.ExecuteScript(script, args)
	return trace.Wrap(err)
}

func isUnknownCommand(err error) bool {
	if err == nil {
		return false
	}
	var driverErr *selenium.Error
	if errors.As(trace.Unwrap(err), &driverErr) {
		switch driverErr.Err {
		case "unknown command", "unknown method":
			return true
		}
	}
	return strings.Contains(err.Error(), "unknown command")
}

// SelectByVisibleText selects the options of a select element whose text matches text
func (p *Page) SelectByVisibleText(loc Locator, text string) error {
	return p.selectOption(loc, "with text "+text, func(_ int, option selenium.WebElement) (bool, error) {
		optionText, err := option.Text()
		return strings.TrimSpace(optionText) == text, err
	})
}

// SelectByValue selects the options of a select element whose value matches value
func (p *Page) SelectByValue(loc Locator, value string) error {
	return p.selectOption(loc, "with value "+value, func(_ int, option selenium.WebElement) (bool, error) {
		optionValue, err := option.GetAttribute("value")
		return optionValue == value, err
	})
}

// SelectByIndex selects the option at the given zero-based position
func (p *Page) SelectByIndex(loc Locator, index int) error {
	return p.selectOption(loc, "at index "+strconv.Itoa(index), func(i int, _ selenium.WebElement) (bool, error) {
		return i == index, nil
	})
}

// SelectedOption returns the text of the first selected option
func (p *Page) SelectedOption(loc Locator) (string, error) {
	options, err := p.options(loc)
	if err != nil {
		return "", trace.Wrap(err)
	}
	for _, option := range options {
		selected, err := option.IsSelected()
		if err != nil {
			return "", trace.Wrap(err)
		}
		if selected {
			text, err := option.Text()
			return strings.TrimSpace(text), trace.Wrap(err)
		}
	}
	return "", trace.NotFound("no option selected in %v", loc)
}

// selectOption selects the first matching option, or every matching option
// of a multiple select
func (p *Page) selectOption(loc Locator, desc string, match func(int, selenium.WebElement) (bool, error)) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	multiple, err := el.GetAttribute("multiple")
	if err != nil {
		return trace.Wrap(err)
	}
	options, err := el.FindElements(selenium.ByTagName, "option")
	if err != nil {
		return trace.Wrap(err)
	}
	var matched bool
	for i, option := range options {
		ok, err := match(i, option)
		if err != nil {
			return trace.Wrap(err)
		}
		if !ok {
			continue
		}
		matched = true
		selected, err := option.IsSelected()
		if err != nil {
			return trace.Wrap(err)
		}
		if !selected {
			if err := option.Click(); err != nil {
				return trace.Wrap(err, "selecting option %v in %v", desc, loc)
			}
		}
		if multiple == "" {
			return nil
		}
	}
	if !matched {
		return trace.NotFound("no option %v in %v", desc, loc)
	}
	return nil
}

func (p *Page) options(loc Locator) ([]selenium.WebElement, error) {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	options, err := el.FindElements(selenium.ByTagName, "option")
	return options, trace.Wrap(err)
}

const (
	scriptClick = "arguments[0].click();"

	scriptHover = `var el = arguments[0];
["mouseover", "mouseenter", "mousemove"].forEach(function(type) {
  el.dispatchEvent(new MouseEvent(type, {bubbles: type !== "mouseenter", cancelable: true, view: window}));
});`

	scriptDoubleClick = `var el = arguments[0];
[["mousedown", 1], ["mouseup", 1], ["click", 1], ["mousedown", 2], ["mouseup", 2], ["click", 2], ["dblclick", 2]].forEach(function(e) {
  el.dispatchEvent(new MouseEvent(e[0], {bubbles: true, cancelable: true, view: window, detail: e[1]}));
});`

	scriptContextMenu = `var el = arguments[0];
["mousedown", "mouseup", "contextmenu"].forEach(function(type) {
  el.dispatchEvent(new MouseEvent(type, {bubbles: true, cancelable: true, view: window, button: 2, buttons: 2}));
});`

	scriptDragAndDrop = `var source = arguments[0], target = arguments[1];
var data = new DataTransfer();
function mouse(el, type) {
  el.dispatchEvent(new MouseEvent(type, {bubbles: true, cancelable: true, view: window}));
}
function drag(el, type) {
  el.dispatchEvent(new DragEvent(type, {bubbles: true, cancelable: true, dataTransfer: data}));
}
mouse(source, "mousedown");
drag(source, "dragstart");
drag(target, "dragenter");
drag(target, "dragover");
drag(target, "drop");
drag(source, "dragend");
mouse(target, "mouseup");`
)
