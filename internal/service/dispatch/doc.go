// Package dispatch runs bulk campaign sends: it resolves the recipient set,
// personalizes and builds each message, delivers it over SMTP, and records a
// per-recipient delivery log entry for every attempt.
//
// Dispatch is exclusive per campaign. A distributed lock guarantees at most
// one dispatch is in flight for a campaign at a time, and a campaign that has
// already been sent is rejected permanently.
package dispatch
