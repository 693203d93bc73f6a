// Package entry maintains the table of named entries stored in a
// vault file.
//
// Each entry maps user-chosen property names to string values and
// must carry a "password" property. The store manages two builtin
// timestamp fields per entry, last_modified and last_revealed, which
// user properties may not shadow. Any operation that exposes a
// plaintext password counts as a reveal and updates last_revealed.
//
// The table is held in memory between Load and Save. Save encrypts
// the table into the vault file and discards it, so every batch of
// mutations starts with a fresh Load.
//
// The payload encoding is a JSON object mapping entry id to a flat
// object of properties plus the builtin timestamps (epoch seconds,
// last_revealed null until the first reveal).
package entry
