// Package driver owns the lifecycle of the browser session shared by a test process
package driver

import (
	"os"
	"sync"

	"github.com/gravitational/uitest/driver/selenium"

	"github.com/gravitational/configure/cstrings"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Starter creates a new browser session
type Starter func(selenium.Config) (*selenium.Session, error)

// Resolver returns the browser configuration to use when a session
// is requested before it has been explicitly initialized
type Resolver func() (*selenium.Config, error)

// NewFactory returns a factory creating sessions with start
// and resolving implicit configuration with resolve
func NewFactory(start Starter, resolve Resolver) *Factory {
	return &Factory{
		start:       start,
		resolve:     resolve,
		FieldLogger: logrus.WithField(trace.Component, "driver"),
	}
}

// Factory holds at most one active browser session
type Factory struct {
	logrus.FieldLogger
	start   Starter
	resolve Resolver

	mu      sync.Mutex
	session *selenium.Session
}

// Init creates a new session unless one already exists in which case
// the existing session is returned unaltered.
// The new session window is maximized on a best-effort basis
func (r *Factory) Init(config selenium.Config) (*selenium.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initLocked(config)
}

// Get returns the current session, creating one with the resolved
// configuration if necessary
func (r *Factory) Get() (*selenium.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return r.session, nil
	}
	config, err := r.resolve()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return r.initLocked(*config)
}

// Quit terminates the current session if there is one.
// The factory is left without a session even if closing it fails,
// the error is returned so the caller can log it
func (r *Factory) Quit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil
	}
	session := r.session
	r.session = nil
	err := session.Quit()
	if err != nil {
		r.WithError(err).Warn("Failed to close browser session.")
	}
	return trace.Wrap(err)
}

// Active returns true if the factory holds a session
func (r *Factory) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

func (r *Factory) initLocked(config selenium.Config) (*selenium.Session, error) {
	if r.session != nil {
		return r.session, nil
	}
	session, err := r.start(config)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if err := session.Maximize(); err != nil {
		r.WithError(err).Warn("Failed to maximize browser window.")
	}
	r.session = session
	return session, nil
}

var defaultFactory = NewFactory(selenium.New, ResolveFromArgs)

// ResolveFromArgs resolves the browser configuration from the process
// arguments following "--", then from the environment
func ResolveFromArgs() (*selenium.Config, error) {
	return selenium.ParseArgs(CommandLineArgs())
}

// CommandLineArgs returns the process arguments following "--".
// Test binaries receive custom flags this way: go test ./e2e -- --browser=firefox
func CommandLineArgs() []string {
	_, args := cstrings.SplitAt(os.Args, "--")
	if len(args) != 0 && args[0] == "--" {
		args = args[1:]
	}
	return args
}

// Init creates the process-wide session unless it already exists
func Init(config selenium.Config) (*selenium.Session, error) {
	return defaultFactory.Init(config)
}

// Get returns the process-wide session, creating it if necessary
func Get() (*selenium.Session, error) {
	return defaultFactory.Get()
}

// Quit terminates the process-wide session
func Quit() error {
	return defaultFactory.Quit()
}
