package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
)

// List prints the ids of all entries in the vault.
func List(path string, useKeyring bool) {
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

	if len(ids) == 0 {
		fmt.Println("Vault is empty")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}
