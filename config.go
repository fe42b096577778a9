package blogapp

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// DBSettings describes the database the service connects to. DB is
// the database name, taken from the path component of the connection
// string when not set explicitly.
type DBSettings struct {
	Url string `json:"url"`
	DB  string `json:"db"`
}

type APISettings struct {
	Port int `json:"port"`
}

// Settings holds the full configuration for the service.
type Settings struct {
	Api      APISettings `json:"api"`
	Database DBSettings  `json:"database"`
}

// NewSettings builds the service configuration from the environment,
// falling back to the documented defaults for anything unset.
func NewSettings() (*Settings, error) {
	s := &Settings{
		Api:      APISettings{Port: DefaultPort},
		Database: DBSettings{Url: DefaultDatabaseURL},
	}

	if port := os.Getenv(PortEnvVar); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing port '%s'", port)
		}
		s.Api.Port = p
	}

	if dbURL := os.Getenv(DatabaseURLEnvVar); dbURL != "" {
		s.Database.Url = dbURL
	}

	name, err := dbNameFromURL(s.Database.Url)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing database URL '%s'", s.Database.Url)
	}
	s.Database.DB = name

	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	return s, nil
}

// TestSettings builds the configuration pointed at the isolated test
// database so that tests never touch production data.
func TestSettings() (*Settings, error) {
	dbURL := os.Getenv(TestDatabaseURLEnvVar)
	if dbURL == "" {
		dbURL = DefaultTestDatabaseURL
	}

	name, err := dbNameFromURL(dbURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing test database URL '%s'", dbURL)
	}

	s := &Settings{
		Api:      APISettings{Port: DefaultPort},
		Database: DBSettings{Url: dbURL, DB: name},
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid test settings")
	}

	return s, nil
}

func (s *Settings) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(s.Database.Url == "", "database URL must be set")
	catcher.NewWhen(!strings.HasPrefix(s.Database.Url, "mongodb://") && !strings.HasPrefix(s.Database.Url, "mongodb+srv://"),
		"database URL must be a mongodb connection string")
	catcher.NewWhen(s.Database.DB == "", "database name must be set")
	catcher.ErrorfWhen(s.Api.Port <= 0 || s.Api.Port > 65535, "%d is not a valid port", s.Api.Port)
	return catcher.Resolve()
}

func dbNameFromURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", errors.WithStack(err)
	}

	name := strings.Trim(parsed.Path, "/")
	if name == "" {
		return "", errors.New("connection string does not name a database")
	}

	return name, nil
}
