// Package keyring caches the master password in the OS keyring so
// repeated vault operations do not have to prompt for it. Entries are
// keyed by the vault file's absolute path.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "passvault"

// SavePassword stores the master password for a vault path.
func SavePassword(vaultPath string, password string) error {
	return keyring.Set(serviceName, vaultPath, password)
}

// GetPassword retrieves the cached master password for a vault path.
func GetPassword(vaultPath string) (string, error) {
	return keyring.Get(serviceName, vaultPath)
}

// DeletePassword removes the cached master password for a vault path.
func DeletePassword(vaultPath string) error {
	return keyring.Delete(serviceName, vaultPath)
}

// HasPassword checks if a password is cached for a vault path.
func HasPassword(vaultPath string) bool {
	_, err := keyring.Get(serviceName, vaultPath)
	return err == nil
}
