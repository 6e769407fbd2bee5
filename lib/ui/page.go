// Package ui implements a facade over a browser session exposing
// element wait and interaction helpers for page models.
//
// Every interaction follows the same shape: locate the element, wait for
// it to reach the required state, then act on it. Element handles are
// never cached between calls.
package ui

import (
	"context"
	"time"

	"github.com/gravitational/uitest/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
)

// Page drives a browser session
type Page struct {
	wd       selenium.WebDriver
	ctx      context.Context
	timeout  time.Duration
	interval time.Duration
	log      logrus.FieldLogger
}

// Option customizes a Page
type Option func(*Page)

// WithTimeout sets the default timeout for wait operations.
// Defaults to defaults.ElementTimeout
func WithTimeout(timeout time.Duration) Option {
	return func(p *Page) {
		p.timeout = timeout
	}
}

// WithPollInterval sets the frequency of polling in wait operations.
// Defaults to defaults.PollInterval
func WithPollInterval(interval time.Duration) Option {
	return func(p *Page) {
		p.interval = interval
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Page) {
		p.log = log
	}
}

// New returns a page driving the given session
func New(wd selenium.WebDriver, opts ...Option) *Page {
	p := &Page{
		wd:       wd,
		ctx:      context.Background(),
		timeout:  defaults.ElementTimeout,
		interval: defaults.PollInterval,
		log:      logrus.WithField(trace.Component, "ui"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithContext returns a copy of the page whose wait operations are interrupted
// when ctx is done
func (p *Page) WithContext(ctx context.Context) *Page {
	clone := *p
	clone.ctx = ctx
	return &clone
}

// Driver returns the underlying session
func (p *Page) Driver() selenium.WebDriver {
	return p.wd
}

// Timeout returns the default timeout of wait operations
func (p *Page) Timeout() time.Duration {
	return p.timeout
}

// Open loads url in the current window
func (p *Page) Open(url string) error {
	p.log.Debugf("opening %v", url)
	return trace.Wrap(p.wd.Get(url))
}

// NavigateTo loads url in the current window
func (p *Page) NavigateTo(url string) error {
	return p.Open(url)
}

// CurrentURL returns the URL of the current document
func (p *Page) CurrentURL() (string, error) {
	url, err := p.wd.CurrentURL()
	return url, trace.Wrap(err)
}

// Title returns the title of the current document
func (p *Page) Title() (string, error) {
	title, err := p.wd.Title()
	return title, trace.Wrap(err)
}

// Close closes the current window
func (p *Page) Close() error {
	return trace.Wrap(p.wd.Close())
}

// Quit terminates the session
func (p *Page) Quit() error {
	return trace.Wrap(p.wd.Quit())
}
