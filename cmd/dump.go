package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
)

// Dump prints a summary of every entry. With onlyBuiltins just the
// builtin timestamps are shown. Showing passwords unmasked counts as
// a reveal for every entry and persists the updated timestamps.
func Dump(path string, onlyBuiltins, showPasswords, useKeyring bool) {
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

	ids, err := store.ListEntries()
	if err != nil {
		HandleError(err)
	}

	summary, err := store.Summary(onlyBuiltins, !showPasswords)
	if err != nil {
		HandleError(err)
	}

	if !onlyBuiltins && showPasswords {
		// Every entry was revealed; persist the timestamps.
		if err := store.Save(); err != nil {
			HandleError(err)
		}
	}

	if len(ids) == 0 {
		fmt.Println("Vault is empty")
		return
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		printRecord(id, summary[id])
	}
}
