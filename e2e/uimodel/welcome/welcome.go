// Package welcome models the landing page of the GitHub users search application
package welcome

import (
	"strings"

	"github.com/gravitational/uitest/lib/ui"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// DefaultURL is the address of the landing page
const DefaultURL = "https://gh-users-search.netlify.app/"

var (
	// SearchInput is the user search field
	SearchInput = ui.ByCSS("form input[type='text']")
	// SearchButton submits the search form
	SearchButton = ui.ByCSS("form button[type='submit']")
	// Requests displays the remaining GitHub API requests
	Requests = ui.ByCSS("section.search h3")
	// Error is shown when the searched user does not exist
	Error = ui.ByCSS("section.search .error")
)

// Page is the landing page
type Page struct {
	*ui.Page
	url string
}

// New returns the landing page at DefaultURL
func New(page *ui.Page) *Page {
	return NewWithURL(page, DefaultURL)
}

// NewWithURL returns the landing page served at url
func NewWithURL(page *ui.Page, url string) *Page {
	return &Page{Page: page, url: url}
}

// URL returns the expected address of the page
func (p *Page) URL() string {
	return p.url
}

// Open navigates to the page
func (p *Page) Open() error {
	log.Infof("Opening welcome page at %v.", p.url)
	return trace.Wrap(p.Page.Open(p.url))
}

// IsAt returns true if the browser is at the page, i.e.
// the current URL starts with the page URL
func (p *Page) IsAt() bool {
	current, err := p.CurrentURL()
	if err != nil {
		log.WithError(err).Warn("Failed to read current URL.")
		return false
	}
	return strings.HasPrefix(current, p.url)
}

// Search looks up the GitHub user with the given login
func (p *Page) Search(user string) error {
	if err := p.Type(SearchInput, user); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(p.SafeClick(SearchButton))
}

// SearchError returns the error displayed for the last search
func (p *Page) SearchError() (string, error) {
	text, err := p.Text(Error)
	return strings.TrimSpace(text), trace.Wrap(err)
}

// RemainingRequests returns the text of the API request counter
func (p *Page) RemainingRequests() (string, error) {
	text, err := p.Text(Requests)
	return strings.TrimSpace(text), trace.Wrap(err)
}
