package framework

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitational/uitest/driver/selenium"
	"github.com/gravitational/uitest/e2e/framework/defaults"
	"github.com/gravitational/uitest/lib/config"
	"github.com/gravitational/uitest/lib/db"

	"github.com/gravitational/configure"
	"github.com/gravitational/trace"
	"gopkg.in/yaml.v2"
)

// ConfigFileEnv names the environment variable with the path to the
// optional JSON or YAML configuration file
const ConfigFileEnv = "ROBO_CONFIG_FILE"

// TestContext is the configuration of the running suite
var TestContext = &TestContextType{}

// TestContextType defines the suite configuration.
// Values from the configuration file are overridden by the environment
type TestContextType struct {
	// StartURL defines the address of the landing page.
	// Defaults to the public application if unspecified
	StartURL string `json:"start_url" yaml:"start_url" env:"ROBO_START_URL"`
	// ReportDir defines the directory for failure screenshots
	ReportDir string `json:"report_dir" yaml:"report_dir" env:"ROBO_REPORT_DIR"`
	// CleanReportDir removes screenshots of the previous run before the suite starts
	CleanReportDir bool `json:"clean_report_dir" yaml:"clean_report_dir" env:"ROBO_CLEAN_REPORT_DIR"`
	// ElementTimeout defines the default timeout of element waits
	ElementTimeout config.Timeout `json:"element_timeout" yaml:"element_timeout" env:"ROBO_ELEMENT_TIMEOUT"`
	// Browser defines the browser session configuration
	Browser selenium.Config `json:"browser" yaml:"browser"`
	// Database defines the optional database for cross-checking persisted state
	Database db.Config `json:"database" yaml:"database"`
}

// InitContext loads TestContext from the file named by ROBO_CONFIG_FILE
// and the environment
func InitContext() error {
	ctx, err := LoadContext(os.Getenv(ConfigFileEnv))
	if err != nil {
		return trace.Wrap(err)
	}
	TestContext = ctx
	return nil
}

// LoadContext reads the configuration from the file at path, if specified,
// and applies overrides from the environment
func LoadContext(path string) (*TestContextType, error) {
	var ctx TestContextType
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		if err := decode(path, data, &ctx); err != nil {
			return nil, trace.Wrap(err, "failed to read config file %v", path)
		}
	}
	if err := configure.ParseEnv(&ctx); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := ctx.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &ctx, nil
}

// CheckAndSetDefaults validates the configuration and fills in the defaults
func (r *TestContextType) CheckAndSetDefaults() error {
	if err := r.Browser.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	if r.ReportDir == "" {
		r.ReportDir = filepath.Join(os.TempDir(), defaults.ReportDir)
	}
	return nil
}

// HasDatabase returns true if a database is configured
func (r TestContextType) HasDatabase() bool {
	return r.Database.URL != ""
}

func decode(path string, data []byte, ctx *TestContextType) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return trace.Wrap(yaml.Unmarshal(data, ctx))
	default:
		return trace.Wrap(json.Unmarshal(data, ctx))
	}
}
