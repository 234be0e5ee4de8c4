// Package daemon coordinates the long-running vidfetch process.
//
// It wires configuration, the job service, and the HTTP API into a single
// lifecycle with flock-based locking to prevent multiple instances. The
// daemon owns the listener, the optional stale-job sweep ticker, and
// startup/shutdown ordering.
//
// Keep orchestration logic here: download and sweep semantics live in the
// jobs package while the daemon focuses on lifecycle and transport.
package daemon
