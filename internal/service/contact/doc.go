// Package contact manages the recipient directory: validated contact
// creation, subscription state, and bulk CSV import.
package contact
