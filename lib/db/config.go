package db

import (
	"net/url"
	"strings"

	"github.com/gravitational/configure"
	"github.com/gravitational/trace"
)

const (
	// Postgres names the lib/pq driver
	Postgres = "postgres"
	// SQLite names the modernc.org/sqlite driver
	SQLite = "sqlite"
)

// Config describes a database connection
type Config struct {
	// URL is the connection URL. JDBC-style jdbc: prefixes are accepted,
	// e.g. jdbc:postgresql://localhost:5432/app or jdbc:sqlite:/tmp/app.db
	URL string `json:"url" yaml:"url" env:"DB_URL"`
	// User is the database user
	User string `json:"user" yaml:"user" env:"DB_USER"`
	// Password is the password of the database user
	Password string `json:"password" yaml:"password" env:"DB_PASS"`
}

// ConfigFromEnv reads the connection configuration from DB_URL, DB_USER and DB_PASS
func ConfigFromEnv() (*Config, error) {
	var config Config
	if err := configure.ParseEnv(&config); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := config.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &config, nil
}

// Check makes sure the configuration names a database
func (r Config) Check() error {
	if strings.TrimSpace(r.URL) == "" {
		return trace.BadParameter("database URL is required (set DB_URL)")
	}
	return nil
}

// DriverAndDSN returns the name of the database/sql driver and the data source name
// for this configuration
func (r Config) DriverAndDSN() (driver, dsn string, err error) {
	if err := r.Check(); err != nil {
		return "", "", trace.Wrap(err)
	}
	dsn = strings.TrimPrefix(strings.TrimSpace(r.URL), "jdbc:")
	scheme, rest := splitScheme(dsn)
	switch scheme {
	case "postgres", "postgresql":
		dsn, err = r.withCredentials(dsn)
		if err != nil {
			return "", "", trace.Wrap(err)
		}
		return Postgres, dsn, nil
	case "sqlite", "sqlite3":
		return SQLite, strings.TrimPrefix(rest, "//"), nil
	case "file":
		return SQLite, dsn, nil
	}
	return "", "", trace.BadParameter("unsupported database URL %q", r.URL)
}

// withCredentials injects user and password into the URL unless it already carries them
func (r Config) withCredentials(dsn string) (string, error) {
	if r.User == "" {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", trace.BadParameter("invalid database URL: %v", err)
	}
	if u.User != nil {
		return dsn, nil
	}
	if r.Password != "" {
		u.User = url.UserPassword(r.User, r.Password)
	} else {
		u.User = url.User(r.User)
	}
	return u.String(), nil
}

func splitScheme(dsn string) (scheme, rest string) {
	i := strings.Index(dsn, ":")
	if i <= 0 {
		return "", dsn
	}
	return strings.ToLower(dsn[:i]), dsn[i+1:]
}
