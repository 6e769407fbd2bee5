package ui

import (
	"time"

	"github.com/gravitational/uitest/lib/constants"
	"github.com/gravitational/uitest/lib/system"
	"github.com/gravitational/uitest/lib/wait"

	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
)

// ExecuteScript runs script in the context of the current document.
// Elements are passed to the script as selenium.WebElement values
func (p *Page) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	if args == nil {
		args = []interface{}{}
	}
	result, err := p.wd.ExecuteScript(script, args)
	return result, trace.Wrap(err)
}

// ScrollIntoView scrolls the document so that the element is at the top of the viewport
func (p *Page) ScrollIntoView(loc Locator) error {
	el, err := p.WaitForVisibility(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = p.wd.ExecuteScript(scriptScrollIntoView, []interface{}{el})
	return trace.Wrap(err, "scrolling %v into view", loc)
}

// WaitForPageLoad waits up to timeout for document.readyState to become complete.
// Returns false if the document did not finish loading in time
func (p *Page) WaitForPageLoad(timeout time.Duration) bool {
	err := wait.Until(p.ctx, timeout, p.interval, func() (bool, error) {
		state, err := p.wd.ExecuteScript(scriptReadyState, []interface{}{})
		if err != nil {
			return false, err
		}
		return state == "complete", nil
	})
	if err != nil {
		p.log.WithError(err).Debug("Page did not finish loading.")
		return false
	}
	return true
}

// TakeScreenshot captures the current viewport as PNG and writes it to path.
// Missing parent directories are created
func (p *Page) TakeScreenshot(path string) error {
	data, err := p.wd.Screenshot()
	if err != nil {
		return trace.Wrap(err, "capturing screenshot")
	}
	if err := system.WriteFile(path, data); err != nil {
		return trace.Wrap(err)
	}
	p.log.WithField(constants.FieldPath, path).Infof("Saved screenshot (%v).", humanize.Bytes(uint64(len(data))))
	return nil
}

const (
	scriptReadyState     = "return document.readyState"
	scriptScrollIntoView = "arguments[0].scrollIntoView(true);"
)
