// Package mail owns everything between "personalized HTML for one
// recipient" and "bytes accepted by the relay": MIME message construction,
// liquid-based personalization, and the authenticated SMTP session.
package mail
