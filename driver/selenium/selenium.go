package selenium

import (
	"fmt"

	"github.com/gravitational/uitest/lib/constants"
	"github.com/gravitational/uitest/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/sclevine/agouti"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// New creates a new browser session as specified with config.
// If config does not name a remote WebDriver server, a local chromedriver or
// geckodriver is started and stopped together with the session
func New(config Config) (*Session, error) {
	err := config.CheckAndSetDefaults()
	if err != nil {
		return nil, trace.Wrap(err)
	}

	logger := log.WithFields(log.Fields{
		trace.Component:        "selenium",
		constants.FieldBrowser: config.Browser,
	})
	session := &Session{Config: config}
	url := config.RemoteURL
	if url == "" {
		service := newService(config.Browser)
		if err := service.Start(); err != nil {
			return nil, trace.Wrap(err, "failed to start %v driver", config.Browser)
		}
		session.service = service
		url = service.URL()
		logger.Debugf("started local driver at %v", url)
	}

	remote, err := selenium.NewRemote(capabilities(config), url)
	if err != nil {
		session.stopService()
		return nil, trace.Wrap(err)
	}
	session.WebDriver = remote

	err = remote.SetImplicitWaitTimeout(config.ImplicitWait.Duration)
	if err != nil {
		session.Quit()
		return nil, trace.Wrap(err)
	}

	logger.WithField("headless", config.Headless).Info("browser session started")
	return session, nil
}

// Maximize maximizes the current browser window.
// Some headless environments cannot maximize, callers should treat the error as non-fatal
func (r *Session) Maximize() error {
	return trace.Wrap(r.WebDriver.MaximizeWindow(""))
}

// Quit terminates the browser session and stops the local driver service if one was started
func (r *Session) Quit() error {
	var errors []error
	if r.WebDriver != nil {
		if err := r.WebDriver.Quit(); err != nil {
			errors = append(errors, trace.Wrap(err))
		}
	}
	if err := r.stopService(); err != nil {
		errors = append(errors, err)
	}
	return trace.NewAggregate(errors...)
}

func (r *Session) stopService() error {
	if r.service == nil {
		return nil
	}
	err := r.service.Stop()
	r.service = nil
	return trace.Wrap(err)
}

// Session is a live browser session
type Session struct {
	selenium.WebDriver
	Config
	service service
}

// service manages a local WebDriver server process
type service interface {
	Start() error
	Stop() error
	URL() string
}

func newService(browser string) service {
	timeout := agouti.Timeout(int(defaults.DriverStartTimeout.Seconds()))
	if browser == Firefox {
		return agouti.GeckoDriver(timeout)
	}
	return agouti.ChromeDriver(timeout)
}

func capabilities(config Config) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": config.Browser}
	switch config.Browser {
	case Firefox:
		var args []string
		if config.Headless {
			args = append(args, "--headless")
		}
		args = append(args,
			fmt.Sprintf("--width=%v", defaults.WindowWidth),
			fmt.Sprintf("--height=%v", defaults.WindowHeight))
		caps.AddFirefox(firefox.Capabilities{Args: args})
	default:
		var args []string
		if config.Headless {
			args = append(args, "--headless=new")
		}
		args = append(args, "--disable-gpu",
			fmt.Sprintf("--window-size=%v,%v", defaults.WindowWidth, defaults.WindowHeight))
		caps.AddChrome(chrome.Capabilities{Args: args})
	}
	return caps
}
