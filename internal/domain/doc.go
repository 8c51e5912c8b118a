// Package domain holds the core business entities shared across services:
// campaigns, contacts, and per-recipient email log entries.
//
// The types here are storage-agnostic. Repositories in
// internal/repository/postgres map them to tables; services own all
// behavior beyond the small invariant helpers defined alongside each type.
package domain
