// Package synclog keeps a history of catalog synchronization runs in a
// relational database.
//
// Every sync attempt, including failed ones, is recorded with its mode,
// counters, outcome, and duration. Recording is best-effort by contract:
// a database hiccup is logged and swallowed, it never affects the sync
// itself. The feature is optional and stays disabled when no database is
// configured.
package synclog
