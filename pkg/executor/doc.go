// Package executor runs one reconcile operation over a batch of targets.
//
// Targets are processed on a bounded worker pool. Each target runs inside
// its own recover boundary, so a failure or panic on one target becomes a
// Failed result for that target and never stops the rest. Results are
// reported in the order the targets were given.
package executor
