package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
)

// Password prints the raw password of an entry. Always counts as a
// reveal and persists the updated last_revealed timestamp.
func Password(path, id string, useKeyring bool) {
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

	entryPassword, err := store.GetPassword(id)
	if err != nil {
		HandleError(err)
	}
	if err := store.Save(); err != nil {
		HandleError(err)
	}

	fmt.Println(entryPassword)
}
