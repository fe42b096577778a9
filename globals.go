package blogapp

const (
	// PortEnvVar is the environment variable that sets the HTTP listen
	// port for the API service.
	PortEnvVar = "PORT"
	// DatabaseURLEnvVar is the environment variable that sets the
	// mongodb connection string for the service database.
	DatabaseURLEnvVar = "DATABASE_URL"
	// TestDatabaseURLEnvVar is the environment variable that sets the
	// mongodb connection string for the isolated test database.
	TestDatabaseURLEnvVar = "TEST_DATABASE_URL"

	DefaultPort            = 8080
	DefaultDatabaseURL     = "mongodb://localhost/blogpost-app"
	DefaultTestDatabaseURL = "mongodb://localhost/blogpost-app-test"
)
