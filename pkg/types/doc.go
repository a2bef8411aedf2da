// Package types holds the interfaces shared across agentlink packages.
package types
