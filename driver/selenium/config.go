package selenium

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gravitational/uitest/lib/config"
	"github.com/gravitational/uitest/lib/defaults"

	"github.com/gravitational/trace"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/go-playground/validator.v9"
)

const (
	// Chrome is the primary browser engine
	Chrome = "chrome"
	// Firefox is the secondary browser engine
	Firefox = "firefox"
)

// Config defines the browser session configuration
type Config struct {
	// Browser defines the browser engine to use: chrome or firefox
	Browser string `json:"browser" yaml:"browser" env:"BROWSER" validate:"omitempty,oneof=chrome firefox"`
	// Headless defines whether the browser runs without a visible window
	Headless bool `json:"headless" yaml:"headless" env:"HEADLESS"`
	// RemoteURL defines the address of a running WebDriver server.
	// A local driver service is started if unspecified
	RemoteURL string `json:"remote_url" yaml:"remote_url" env:"SELENIUM_URL" validate:"omitempty,url"`
	// ImplicitWait defines how long element lookups wait for elements to appear
	ImplicitWait config.Timeout `json:"implicit_wait" yaml:"implicit_wait"`
}

// CheckAndSetDefaults normalizes the browser name, validates the configuration
// and fills in default values
func (r *Config) CheckAndSetDefaults() error {
	r.Browser = normalizeBrowser(r.Browser)
	if err := validate(r); err != nil {
		return trace.Wrap(err)
	}
	if r.ImplicitWait.Duration == 0 {
		r.ImplicitWait.Duration = defaults.ImplicitWait
	}
	return nil
}

// ParseArgs resolves the configuration from command line flags first,
// then from the environment, then from the defaults
func ParseArgs(args []string) (*Config, error) {
	return ParseArgsWithBase(args, Config{})
}

// ParseArgsWithBase resolves the configuration from command line flags first,
// then from the environment. Values set in base take precedence over the defaults
func ParseArgsWithBase(args []string, base Config) (*Config, error) {
	config := base
	browser := base.Browser
	if browser == "" {
		browser = defaults.Browser
	}
	app := kingpin.New("browser", "Browser session configuration")
	app.Flag("browser", "browser engine: chrome or firefox").
		Envar("BROWSER").Default(browser).StringVar(&config.Browser)
	app.Flag("headless", "run the browser without a visible window").
		Envar("HEADLESS").Default(strconv.FormatBool(base.Headless)).BoolVar(&config.Headless)
	remoteURL := app.Flag("selenium-url", "address of a running WebDriver server").
		Envar("SELENIUM_URL")
	if base.RemoteURL != "" {
		remoteURL = remoteURL.Default(base.RemoteURL)
	}
	remoteURL.StringVar(&config.RemoteURL)
	if _, err := app.Parse(args); err != nil {
		return nil, trace.BadParameter("invalid browser configuration: %v", err)
	}
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &config, nil
}

func normalizeBrowser(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return defaults.Browser
	case "ff":
		return Firefox
	}
	return name
}

func validate(config *Config) error {
	err := validator.New().Struct(config)
	if err == nil {
		return nil
	}

	var errs []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errs = append(errs, fmt.Sprintf(`%s="%v" fails "%s"`,
				fieldError.Field(), fieldError.Value(), fieldError.Tag()))
		}
		return trace.BadParameter("invalid browser configuration: %v", strings.Join(errs, ", "))
	}
	return trace.BadParameter("invalid browser configuration: %v", err)
}
