// Package reconcile keeps target paths in agreement with a canonical source
// file.
//
// Every target ends up as either a symbolic link to the source or a managed
// copy (see package marker). The Reconciler never overwrites or deletes a
// path that is not one of those two things: anything else is foreign and is
// reported, not touched.
//
// Operations work on a single target and return a Result rather than an
// error. Per-target failures, including the fallback from a refused symlink
// to a managed copy, are values; package executor runs operations over a
// whole target list.
//
//	Materialize  create the target (symlink, falling back to a copy)
//	Sync         rewrite managed copies from the current source
//	Remove       delete symlinks and managed copies
//	Check        report state without changing anything
package reconcile
