package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/entry"
)

// Add adds an entry to the vault. With promptPassword the entry's
// password property is read from the terminal instead of the
// command line, keeping it out of shell history.
func Add(path, id string, props map[string]string, promptPassword, useKeyring bool) {
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

	store, err := OpenStore(path, password)
	if err != nil {
		HandleError(err)
	}
	if err := store.Load(); err != nil {
		HandleError(err)
	}
	if err := store.AddEntry(id, props); err != nil {
		HandleError(err)
	}
	if err := store.Save(); err != nil {
		HandleError(err)
	}

	if useKeyring {
		CachePassword(path, password)
	}

	fmt.Printf("Added entry %q\n", id)
}
