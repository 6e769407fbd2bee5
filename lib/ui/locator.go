package ui

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
)

// Locator identifies zero or more elements on a page with a lookup strategy and a value
type Locator struct {
	// By names the lookup strategy
	By string
	// Value is the strategy-specific expression
	Value string
}

func (r Locator) String() string {
	return fmt.Sprintf("%v=%v", r.By, r.Value)
}

// ByID locates elements by id attribute
func ByID(id string) Locator {
	return Locator{By: selenium.ByID, Value: id}
}

// ByName locates elements by name attribute
func ByName(name string) Locator {
	return Locator{By: selenium.ByName, Value: name}
}

// ByCSS locates elements with a CSS selector
func ByCSS(selector string) Locator {
	return Locator{By: selenium.ByCSSSelector, Value: selector}
}

// ByXPath locates elements with an XPath expression
func ByXPath(expr string) Locator {
	return Locator{By: selenium.ByXPATH, Value: expr}
}

// ByClassName locates elements by a single class name
func ByClassName(class string) Locator {
	return Locator{By: selenium.ByClassName, Value: class}
}

// ByTagName locates elements by tag name
func ByTagName(tag string) Locator {
	return Locator{By: selenium.ByTagName, Value: tag}
}

// ByLinkText locates anchors by their exact text
func ByLinkText(text string) Locator {
	return Locator{By: selenium.ByLinkText, Value: text}
}

// ByPartialLinkText locates anchors whose text contains the given text
func ByPartialLinkText(text string) Locator {
	return Locator{By: selenium.ByPartialLinkText, Value: text}
}

// ByText locates elements whose whitespace-normalized text equals text
func ByText(text string) Locator {
	return ByXPath(fmt.Sprintf("//*[normalize-space(.)=%v]", xpathLiteral(text)))
}

// xpathLiteral quotes s as an XPath string literal.
// XPath 1.0 has no escapes so strings with both quote kinds are built with concat()
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ",") + ")"
}
