package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/vault"
)

// New creates a new vault file at path.
func New(path string, useKeyring bool) {
	password, err := ReadPasswordConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	file, err := vault.New(path, password)
	if err != nil {
		HandleError(err)
	}
	if err := file.Create(); err != nil {
		HandleError(err)
	}

	if useKeyring {
		CachePassword(path, password)
	}

	fmt.Printf("Created vault %s\n", path)
	fmt.Println("The master password is not stored anywhere - losing it means losing the vault.")
}
