package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/entry"
)

// Edit overwrites an entry's properties wholesale, previewing the
// change as a masked diff before asking for confirmation. With
// confirmed set the prompt is skipped.
func Edit(path, id string, props map[string]string, confirmed, promptPassword, useKeyring bool) {
	if promptPassword {
		entryPassword, err := ReadPassword("Entry password: ")
		if err != nil {
			HandleError(err)
		}
		props[entry.FieldPassword] = string(entryPassword)
		crypto.ClearBytes(entryPassword)
	}

	password, err := MasterPassword(path, useKeyring)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	declined := false
	confirm := func(message string) bool {
		if YesNoPrompt(message) {
			return true
		}
		declined = true
		return false
	}

	store, err := OpenStoreWith(path, password, confirm)
	if err != nil {
		HandleError(err)
	}
	if err := store.Load(); err != nil {
		HandleError(err)
	}

	// Show what would change, with passwords masked on both sides.
	old, err := store.GetEntry(id, false)
	if err != nil {
		HandleError(err)
	}
	if diff := entry.DiffRecords(id, old, entry.Record{Properties: props}); diff != "" {
		fmt.Print(diff)
	}

	if err := store.EditEntry(id, props, confirmed); err != nil {
		HandleError(err)
	}
	if declined {
		return
	}
	if err := store.Save(); err != nil {
		HandleError(err)
	}

	fmt.Printf("Updated entry %q\n", id)
}
