package ui

import (
	"time"

	"github.com/gravitational/uitest/lib/wait"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// WaitForVisibility waits for the element to be present and displayed
func (p *Page) WaitForVisibility(loc Locator) (selenium.WebElement, error) {
	return p.WaitForVisibilityTimeout(loc, p.timeout)
}

// WaitForVisibilityTimeout waits up to timeout for the element to be present and displayed
func (p *Page) WaitForVisibilityTimeout(loc Locator, timeout time.Duration) (selenium.WebElement, error) {
	return p.waitForElement(loc, timeout, "visible", func(el selenium.WebElement) (bool, error) {
		return el.IsDisplayed()
	})
}

// WaitForClickable waits for the element to be displayed and enabled
func (p *Page) WaitForClickable(loc Locator) (selenium.WebElement, error) {
	return p.WaitForClickableTimeout(loc, p.timeout)
}

// WaitForClickableTimeout waits up to timeout for the element to be displayed and enabled
func (p *Page) WaitForClickableTimeout(loc Locator, timeout time.Duration) (selenium.WebElement, error) {
	return p.waitForElement(loc, timeout, "clickable", func(el selenium.WebElement) (bool, error) {
		displayed, err := el.IsDisplayed()
		if err != nil || !displayed {
			return false, err
		}
		return el.IsEnabled()
	})
}

// WaitForPresence waits for the element to be attached to the document
func (p *Page) WaitForPresence(loc Locator) (selenium.WebElement, error) {
	return p.WaitForPresenceTimeout(loc, p.timeout)
}

// WaitForPresenceTimeout waits up to timeout for the element to be attached to the document
func (p *Page) WaitForPresenceTimeout(loc Locator, timeout time.Duration) (selenium.WebElement, error) {
	return p.waitForElement(loc, timeout, "present", func(selenium.WebElement) (bool, error) {
		return true, nil
	})
}

// WaitForInvisibility waits up to timeout for the element to be either
// absent or hidden
func (p *Page) WaitForInvisibility(loc Locator, timeout time.Duration) error {
	err := wait.Until(p.ctx, timeout, p.interval, func() (bool, error) {
		elements, err := p.wd.FindElements(loc.By, loc.Value)
		if err != nil {
			return false, err
		}
		if len(elements) == 0 {
			return true, nil
		}
		displayed, err := elements[0].IsDisplayed()
		if err != nil {
			// stale element is no longer displayed
			return true, nil
		}
		return !displayed, nil
	})
	return trace.Wrap(err, "waiting for %v to become invisible", loc)
}

// FluentWait waits up to timeout for a custom condition polling every poll interval
func (p *Page) FluentWait(condition selenium.Condition, timeout, poll time.Duration) error {
	return wait.Until(p.ctx, timeout, poll, func() (bool, error) {
		return condition(p.wd)
	})
}

func (p *Page) waitForElement(loc Locator, timeout time.Duration, state string, check func(selenium.WebElement) (bool, error)) (selenium.WebElement, error) {
	var found selenium.WebElement
	err := wait.Until(p.ctx, timeout, p.interval, func() (bool, error) {
		el, err := p.wd.FindElement(loc.By, loc.Value)
		if err != nil {
			return false, err
		}
		ok, err := check(el)
		if err != nil || !ok {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, trace.Wrap(err, "waiting for %v to be %v", loc, state)
	}
	return found, nil
}
