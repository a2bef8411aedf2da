// Package testutil provides project fixtures for agentlink tests.
//
// A TestEnvironment is a project root holding a source file, either in a
// real temporary directory (EnvIsolated) or in memory (EnvMemoryOnly). The
// in-memory filesystem refuses symlinks, which makes it the natural place to
// test the managed-copy fallback.
package testutil
