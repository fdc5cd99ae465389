//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "user-api"
	ConsumerName = "user-portal"

	StateUsersBaseline = "users baseline"
	StateUserExists    = "user with id 101 exists"
	StateUserMissing   = "no user with id 404"
)

const (
	ExistingUserID int64 = 101
	MissingUserID  int64 = 404

	ExampleEmail     = "pact.user@example.com"
	ExamplePhone     = "+380123456789"
	ExampleBirthDate = "1990-01-01"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the user portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload provides stable test data for pact interactions.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"email":     ExampleEmail,
		"firstName": "Pact",
		"lastName":  "User",
		"birthDate": ExampleBirthDate,
		"address":   "Khreshchatyk 1, Kyiv",
		"phone":     ExamplePhone,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
