package core

// TestReporter is the minimal interface subst needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// CleanupRegistrar is satisfied by *testing.T and *testing.B.
type CleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
