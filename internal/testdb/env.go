package testdb

import (
	"net/url"
	"os"
)

// DatabaseURLEnv names the variable holding the integration test database URL.
const DatabaseURLEnv = "FLASHLEARN_TEST_DATABASE_URL"

// DatabaseURL returns the test database URL, or "" when none is configured.
func DatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// ShouldSkipDatabaseTest reports whether database tests should be skipped.
func ShouldSkipDatabaseTest() bool {
	return DatabaseURL() == ""
}

// maskDatabaseURL replaces the password of a database URL with "xxxxx" for logging.
func maskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return parsed.Redacted()
}
