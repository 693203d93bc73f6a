package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/w0rmh013/PassVault/internal/keyring"
)

// Forget removes the cached master password for a vault from the OS
// keyring.
func Forget(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		HandleError(err)
	}

	if !keyring.HasPassword(abs) {
		fmt.Println("No cached password for this vault")
		return
	}
	if err := keyring.DeletePassword(abs); err != nil {
		HandleError(err)
	}

	fmt.Println("Removed cached password from keyring")
}
