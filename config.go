package main

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/gravitational/uitest/driver/selenium"
	"github.com/gravitational/uitest/lib/db"

	"github.com/gravitational/configure"
	"github.com/gravitational/trace"
	"gopkg.in/yaml.v2"
)

// newFileConfig reads the configuration from the JSON or YAML file at path.
// An empty path yields configuration from the environment only
func newFileConfig(path string) (*fileConfig, error) {
	var config fileConfig
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &config)
		default:
			err = json.Unmarshal(data, &config)
		}
		if err != nil {
			return nil, trace.BadParameter("failed to parse %v: %v", path, err)
		}
	}

	err := configure.ParseEnv(&config)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	err = config.Validate()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &config, nil
}

// Validate validates the browser configuration and, if configured, the database
func (r *fileConfig) Validate() error {
	var errors []error
	err := r.Browser.CheckAndSetDefaults()
	if err != nil {
		errors = append(errors, err)
	}
	if r.Database.URL != "" {
		if _, _, err := r.Database.DriverAndDSN(); err != nil {
			errors = append(errors, err)
		}
	}
	return trace.NewAggregate(errors...)
}

type fileConfig struct {
	Browser  selenium.Config `json:"browser" yaml:"browser"`
	Database db.Config       `json:"database" yaml:"database"`
}
