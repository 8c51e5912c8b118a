// Package campaign implements campaign lifecycle management: creation,
// scheduling, content updates and counter persistence. Dispatching a
// campaign lives in the dispatch package; this package never talks to the
// mail transport.
package campaign
