package blogapp

import (
	"context"
	"sync"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	globalEnv     Environment
	globalEnvLock sync.RWMutex
)

// Environment is the application-level handle on configuration and
// the database connection. Configure it once per process and pass it
// through the application; package db reaches for the global instance
// the way legacy model code does.
type Environment interface {
	Settings() *Settings
	Client() *mongo.Client
	DB() *mongo.Database
	Close(context.Context) error
}

// GetEnvironment returns the global application environment. It must
// be configured with SetEnvironment before use.
func GetEnvironment() Environment {
	globalEnvLock.RLock()
	defer globalEnvLock.RUnlock()

	return globalEnv
}

func SetEnvironment(env Environment) {
	globalEnvLock.Lock()
	defer globalEnvLock.Unlock()

	globalEnv = env
}

// NewEnvironment constructs an Environment connected to the database
// named by the settings, verifying the connection with a ping before
// returning.
func NewEnvironment(ctx context.Context, settings *Settings) (Environment, error) {
	if settings == nil {
		return nil, errors.New("cannot construct an environment without settings")
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	e := &envState{settings: settings}
	if err := e.initDB(ctx, settings.Database); err != nil {
		return nil, errors.Wrap(err, "configuring db")
	}

	return e, nil
}

type envState struct {
	settings *Settings
	client   *mongo.Client
	mu       sync.RWMutex
}

func (e *envState) initDB(ctx context.Context, settings DBSettings) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(settings.Url))
	if err != nil {
		return errors.Wrap(err, "constructing database client")
	}

	if err := client.Ping(ctx, nil); err != nil {
		grip.Error(message.WrapError(client.Disconnect(ctx), message.Fields{
			"message": "disconnecting client after failed ping",
			"db":      settings.DB,
		}))
		return errors.Wrap(err, "pinging the database")
	}

	e.client = client

	return nil
}

func (e *envState) Settings() *Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

func (e *envState) Client() *mongo.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client
}

func (e *envState) DB() *mongo.Database {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}

	err := e.client.Disconnect(ctx)
	e.client = nil

	return errors.Wrap(err, "disconnecting from the database")
}
