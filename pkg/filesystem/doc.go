// Package filesystem provides filesystem implementations for agentlink.
//
// NewOS is the real filesystem used by every command. NewAferoFS adapts an
// afero.Fs; its in-memory form has no symlink support, which is how tests
// exercise the managed-copy fallback.
package filesystem
