//go:build integration

package testdb

import "os"

// Environment variables checked, in order, for a test database URL.
const (
	EnvDatabaseURL       = "DATABASE_URL"
	EnvPantryTestDBURL   = "PANTRY_TEST_DB_URL"
	EnvPantryDatabaseURL = "PANTRY_DATABASE_URL"
)

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "" when none is set.
func GetTestDatabaseURL() string {
	for _, envVar := range []string{EnvDatabaseURL, EnvPantryTestDBURL, EnvPantryDatabaseURL} {
		if url := os.Getenv(envVar); url != "" {
			return url
		}
	}
	return ""
}

// ShouldSkipDatabaseTest returns true if no database URL is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// isCIEnvironment returns true if running in any type of CI environment.
func isCIEnvironment() bool {
	ciVars := []string{
		"CI",             // Generic
		"GITHUB_ACTIONS", // GitHub Actions
		"GITLAB_CI",      // GitLab CI
		"JENKINS_URL",    // Jenkins
	}

	for _, envVar := range ciVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}
