package ui

import (
	"time"

	"github.com/gravitational/uitest/lib/wait"

	"github.com/gravitational/trace"
)

// SwitchToFrame switches into the frame element
func (p *Page) SwitchToFrame(loc Locator) error {
	el, err := p.WaitForPresence(loc)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.wd.SwitchFrame(el), "switching to frame %v", loc)
}

// SwitchToFrameIndex switches into the frame at the given position
func (p *Page) SwitchToFrameIndex(index int) error {
	return trace.Wrap(p.wd.SwitchFrame(index), "switching to frame %v", index)
}

// SwitchToDefaultContent switches back to the top-level document
func (p *Page) SwitchToDefaultContent() error {
	return trace.Wrap(p.wd.SwitchFrame(nil))
}

// AcceptAlert waits for a native dialog and accepts it
func (p *Page) AcceptAlert() error {
	if err := p.waitForAlert(); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.wd.AcceptAlert())
}

// DismissAlert waits for a native dialog and dismisses it
func (p *Page) DismissAlert() error {
	if err := p.waitForAlert(); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.wd.DismissAlert())
}

// AlertText waits for a native dialog and returns its text
func (p *Page) AlertText() (string, error) {
	var text string
	err := wait.Until(p.ctx, p.timeout, p.interval, func() (bool, error) {
		var err error
		text, err = p.wd.AlertText()
		return err == nil, nil
	})
	if err != nil {
		return "", trace.Wrap(err, "waiting for alert")
	}
	return text, nil
}

func (p *Page) waitForAlert() error {
	_, err := p.AlertText()
	return trace.Wrap(err)
}

// WindowHandles returns the handles of all open windows
func (p *Page) WindowHandles() ([]string, error) {
	handles, err := p.wd.WindowHandles()
	return handles, trace.Wrap(err)
}

// SwitchToWindowByTitle polls open windows until one with the given title is found
// and switches into it. Returns false if no such window appeared within timeout;
// the session is then left switched into the last window inspected
func (p *Page) SwitchToWindowByTitle(title string, timeout time.Duration) bool {
	err := wait.Until(p.ctx, timeout, p.interval, func() (bool, error) {
		handles, err := p.wd.WindowHandles()
		if err != nil {
			return false, nil
		}
		for _, handle := range handles {
			if err := p.wd.SwitchWindow(handle); err != nil {
				// window closed in the meantime
				continue
			}
			current, err := p.wd.Title()
			if err == nil && current == title {
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		p.log.WithError(err).Debugf("No window titled %q.", title)
		return false
	}
	return true
}
