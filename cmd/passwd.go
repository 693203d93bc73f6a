package cmd

import (
	"fmt"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/vault"
)

// Passwd changes the vault's master password, re-encrypting the whole
// vault under the new one.
func Passwd(path string, useKeyring bool) {
	current, err := ReadPassword("Current master password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(current)

	fmt.Println("New master password:")
	newPassword, err := ReadPasswordConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(newPassword)

	file, err := vault.New(path, current)
	if err != nil {
		HandleError(err)
	}
	if err := file.ChangePassword(newPassword); err != nil {
		HandleError(err)
	}

	if useKeyring {
		CachePassword(path, newPassword)
	}

	fmt.Println("Master password changed")
}
