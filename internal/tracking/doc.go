// Package tracking implements open and click tracking. Outgoing messages get
// a 1x1 pixel and rewritten links pointing back at the tracking endpoints;
// hits update the per-recipient delivery log and the campaign counters.
//
// Counter updates are first-event-only per recipient: a reader opening the
// same email five times counts as one open.
package tracking
