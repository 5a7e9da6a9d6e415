// Package storage archives generated day schedules so the booking and
// display collaborators can read them after the fact.
//
// It currently supports:
//   - file: one JSON document per day under a directory
//   - sqlite: a single database file (days + showings tables)
package storage
