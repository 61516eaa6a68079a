// Package shipment implements the shipment aggregate: a single trackable
// package with its lifecycle status, append-only status history, delivery
// receipt, and retry accounting.
//
// A shipment belongs to at most one active (non-closed) manifest at a time;
// that exclusivity invariant is enforced by the manifest confirmation use case,
// not by this package. What this package does enforce is the status state
// machine and the history invariant: every transition appends exactly one
// history entry in the same operation that writes the status.
package shipment
