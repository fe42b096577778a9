package testutil

import (
	"context"
	"os"
	"strconv"
	"sync/atomic"
	"testing"

	blogapp "github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

var port int32 = 8180

// NextPort returns a fresh local port for a test server. Ports are
// handed out sequentially so parallel suites in the same process never
// collide.
func NextPort() int {
	return int(atomic.AddInt32(&port, 1))
}

// ConfigureIntegrationTest skips tests that need a running database
// when SKIP_INTEGRATION_TESTS is set.
func ConfigureIntegrationTest(t *testing.T) {
	if skip, _ := strconv.ParseBool(os.Getenv("SKIP_INTEGRATION_TESTS")); skip {
		t.Skip("SKIP_INTEGRATION_TESTS is set, skipping integration test")
	}
}

// TestConfig creates settings pointing at the test database.
func TestConfig() *blogapp.Settings {
	settings, err := blogapp.TestSettings()
	if err != nil {
		panic(err)
	}

	if err = settings.Validate(); err != nil {
		panic(err)
	}

	return settings
}

// Setup initializes the global environment against the test database
// if it is not initialized yet.
func Setup() {
	if blogapp.GetEnvironment() == nil {
		ctx := context.Background()

		env, err := blogapp.NewEnvironment(ctx, TestConfig())
		grip.EmergencyPanic(message.WrapError(err, message.Fields{
			"message": "could not initialize test environment",
		}))

		blogapp.SetEnvironment(env)
	}
}
