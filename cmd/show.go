package cmd

import (
	"fmt"
	"sort"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/entry"
)

// Show displays a single entry. Passwords are masked unless reveal is
// set; revealing records the access in the entry's last_revealed
// timestamp and persists it.
func Show(path, id string, reveal, useKeyring bool) {
	password, err := MasterPassword(path, useKeyring)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	store, err := OpenStore(path, password)
	if err != nil {
		HandleError(err)
	}
	if err := store.Load(); err != nil {
		HandleError(err)
	}

	rec, err := store.GetEntry(id, reveal)
	if err != nil {
		HandleError(err)
	}

	if reveal {
		// Persist the updated last_revealed timestamp.
		if err := store.Save(); err != nil {
			HandleError(err)
		}
	}

	printRecord(id, rec)
}

func printRecord(id string, rec entry.Record) {
	fmt.Printf("%s:\n", id)

	names := make([]string, 0, len(rec.Properties))
	for name := range rec.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, rec.Properties[name])
	}

	fmt.Printf("  %s: %s\n", entry.FieldLastModified, entry.FormatTimestamp(&rec.LastModified))
	fmt.Printf("  %s: %s\n", entry.FieldLastRevealed, entry.FormatTimestamp(rec.LastRevealed))
}
