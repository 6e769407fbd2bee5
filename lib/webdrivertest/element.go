package webdrivertest

import (
	"strings"
	"sync"

	"github.com/tebeka/selenium"
)

// Element is a fake selenium.WebElement
type Element struct {
	selenium.WebElement

	ID      string
	Name    string
	Tag     string
	Classes []string
	// Selectors lists additional CSS selectors and XPath expressions matching the element
	Selectors []string
	InnerText string
	Value     string
	// Attributes holds attributes other than value
	Attributes map[string]string
	Hidden     bool
	Disabled   bool
	Selected   bool
	// Options lists the options of a select element
	Options []*Element
	// ClickErr fails native clicks if set
	ClickErr error
	// OnClick is invoked on successful native and scripted clicks
	OnClick func()

	NativeClicks     int
	ScriptClicks     int
	Submits          int
	ScrolledIntoView bool

	driver   *Driver
	parent   *Element
	detached bool
	local    sync.Mutex
}

func (e *Element) attach(d *Driver) {
	e.driver = d
	for _, option := range e.Options {
		option.parent = e
		option.attach(d)
	}
}

func (e *Element) mu() *sync.Mutex {
	if e.driver != nil {
		return &e.driver.mu
	}
	return &e.local
}

func (e *Element) stale() error {
	if e.detached || (e.parent != nil && e.parent.detached) {
		return &selenium.Error{Err: "stale element reference", Message: e.ID}
	}
	return nil
}

func (e *Element) Click() error {
	e.mu().Lock()
	if err := e.stale(); err != nil {
		e.mu().Unlock()
		return err
	}
	e.NativeClicks++
	if e.ClickErr != nil {
		err := e.ClickErr
		e.mu().Unlock()
		return err
	}
	e.selectLocked()
	onClick := e.OnClick
	e.mu().Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

func (e *Element) scriptClick() error {
	e.mu().Lock()
	if err := e.stale(); err != nil {
		e.mu().Unlock()
		return err
	}
	e.ScriptClicks++
	e.selectLocked()
	onClick := e.OnClick
	e.mu().Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

// selectLocked marks an option of a select element as the selected one
func (e *Element) selectLocked() {
	if e.parent == nil || e.Tag != "option" {
		return
	}
	for _, option := range e.parent.Options {
		option.Selected = option == e
	}
}

func (e *Element) Clear() error {
	e.mu().Lock()
	defer e.mu().Unlock()
	if err := e.stale(); err != nil {
		return err
	}
	e.Value = ""
	return nil
}

func (e *Element) SendKeys(keys string) error {
	e.mu().Lock()
	defer e.mu().Unlock()
	if err := e.stale(); err != nil {
		return err
	}
	e.Value += keys
	return nil
}

func (e *Element) Submit() error {
	e.mu().Lock()
	defer e.mu().Unlock()
	if err := e.stale(); err != nil {
		return err
	}
	e.Submits++
	return nil
}

func (e *Element) MoveTo(xOffset, yOffset int) error {
	e.mu().Lock()
	defer e.mu().Unlock()
	if err := e.stale(); err != nil {
		return err
	}
	if e.driver != nil && e.driver.W3C {
		return errUnknownCommand
	}
	if e.driver != nil {
		e.driver.hovered = e
		e.driver.mouse = append(e.driver.mouse, "move@"+e.ID)
	}
	return nil
}

func (e *Element) TagName() (string, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	return e.Tag, e.stale()
}

func (e *Element) Text() (string, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	return e.InnerText, e.stale()
}

func (e *Element) GetAttribute(name string) (string, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	if err := e.stale(); err != nil {
		return "", err
	}
	switch name {
	case "value":
		return e.Value, nil
	case "id":
		return e.ID, nil
	case "name":
		return e.Name, nil
	}
	return e.Attributes[name], nil
}

func (e *Element) IsDisplayed() (bool, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	return !e.Hidden, e.stale()
}

func (e *Element) IsEnabled() (bool, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	return !e.Disabled, e.stale()
}

func (e *Element) IsSelected() (bool, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	return e.Selected, e.stale()
}

func (e *Element) FindElements(by, value string) ([]selenium.WebElement, error) {
	e.mu().Lock()
	defer e.mu().Unlock()
	if err := e.stale(); err != nil {
		return nil, err
	}
	var found []selenium.WebElement
	for _, option := range e.Options {
		if option.matches(by, value) {
			found = append(found, option)
		}
	}
	return found, nil
}

// Set updates the element state under the driver lock
func (e *Element) Set(fn func(*Element)) {
	e.mu().Lock()
	defer e.mu().Unlock()
	fn(e)
}

// Get reads the element state under the driver lock
func (e *Element) Get(fn func(*Element)) {
	e.mu().Lock()
	defer e.mu().Unlock()
	fn(e)
}

func (e *Element) matches(by, value string) bool {
	switch by {
	case selenium.ByID:
		return e.ID != "" && e.ID == value
	case selenium.ByName:
		return e.Name != "" && e.Name == value
	case selenium.ByTagName:
		return e.Tag == value
	case selenium.ByClassName:
		return e.hasClass(value)
	case selenium.ByLinkText:
		return e.Tag == "a" && e.InnerText == value
	case selenium.ByPartialLinkText:
		return e.Tag == "a" && strings.Contains(e.InnerText, value)
	case selenium.ByCSSSelector:
		switch {
		case e.ID != "" && value == "#"+e.ID:
			return true
		case strings.HasPrefix(value, ".") && e.hasClass(value[1:]):
			return true
		case e.Tag != "" && value == e.Tag:
			return true
		}
		return e.hasSelector(value)
	case selenium.ByXPATH:
		if text, ok := parseTextXPath(value); ok {
			return strings.TrimSpace(e.InnerText) == text
		}
		return e.hasSelector(value)
	}
	return false
}

func (e *Element) hasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) hasSelector(selector string) bool {
	for _, s := range e.Selectors {
		if s == selector {
			return true
		}
	}
	return false
}

// parseTextXPath recognizes the exact-text expression //*[normalize-space(.)='text']
func parseTextXPath(expr string) (string, bool) {
	const prefix, suffix = "//*[normalize-space(.)=", "]"
	if !strings.HasPrefix(expr, prefix) || !strings.HasSuffix(expr, suffix) {
		return "", false
	}
	literal := expr[len(prefix) : len(expr)-len(suffix)]
	if len(literal) < 2 {
		return "", false
	}
	quote := literal[0]
	if (quote != '\'' && quote != '"') || literal[len(literal)-1] != quote {
		return "", false
	}
	return literal[1 : len(literal)-1], true
}
