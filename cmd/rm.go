package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
)

// Remove deletes an entry from the vault, asking for confirmation
// unless confirmed is set.
func Remove(path, id string, confirmed, useKeyring bool) {
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
	if err := store.DeleteEntry(id, confirmed); err != nil {
		HandleError(err)
	}
	if declined {
		return
	}
	if err := store.Save(); err != nil {
		HandleError(err)
	}

	fmt.Printf("Removed entry %q\n", id)
}
