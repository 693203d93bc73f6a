package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/entry"
	"github.com/w0rmh013/PassVault/internal/keyring"
	"github.com/w0rmh013/PassVault/internal/vault"
)

// VaultFileEnvVar names the environment variable consulted when no
// explicit vault path is given.
const VaultFileEnvVar = "PVLTFILE"

// ResolveVaultPath resolves the vault file path: the explicit flag
// wins, then the PVLTFILE environment variable. Environment access
// stays in the command layer; the core only ever sees the resolved
// path.
func ResolveVaultPath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv(VaultFileEnvVar); env != "" {
		return env, nil
	}
	return "", vault.ErrNoVaultFile
}

// ReadPassword reads a password from the terminal without echoing.
// The caller is responsible for calling crypto.ClearBytes on the
// returned password.
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures both match.
func ReadPasswordConfirm() ([]byte, error) {
	password1, err := ReadPassword("Master password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, fmt.Errorf("passwords do not match")
	}

	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// YesNoPrompt asks a yes/no question on the terminal. Wired into the
// entry store as the confirmation collaborator for destructive
// operations.
func YesNoPrompt(message string) bool {
	fmt.Printf("%s [y/N]: ", message)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// MasterPassword obtains the master password for a vault: the OS
// keyring first when enabled, then a terminal prompt.
func MasterPassword(vaultPath string, useKeyring bool) ([]byte, error) {
	if useKeyring {
		if abs, err := filepath.Abs(vaultPath); err == nil {
			if cached, err := keyring.GetPassword(abs); err == nil {
				return []byte(cached), nil
			}
		}
	}
	return ReadPassword("Master password: ")
}

// CachePassword stores the master password in the OS keyring.
// Best effort: a keyring failure is a warning, not a fatal error.
func CachePassword(vaultPath string, password []byte) {
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return
	}
	if err := keyring.SavePassword(abs, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cache password in keyring: %s\n", err)
	}
}

// OpenStore builds an entry store bound to the vault path with the
// terminal yes/no prompt wired in.
func OpenStore(path string, password []byte) (*entry.Store, error) {
	return OpenStoreWith(path, password, YesNoPrompt)
}

// OpenStoreWith builds an entry store with a custom confirmation
// collaborator.
func OpenStoreWith(path string, password []byte, confirm entry.Confirm) (*entry.Store, error) {
	file, err := vault.New(path, password)
	if err != nil {
		return nil, err
	}
	return entry.NewStore(file, nil, confirm), nil
}

// ParseProperties parses name=value arguments into a property map.
func ParseProperties(args []string) (map[string]string, error) {
	props := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid property %q, expected name=value", arg)
		}
		props[name] = value
	}
	return props, nil
}

// HandleError prints a user-facing message for err and exits.
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrNoVaultFile):
		fmt.Fprintf(os.Stderr, "Error: no vault file provided\n")
		fmt.Fprintf(os.Stderr, "Pass -f <file> or set the %s environment variable\n", VaultFileEnvVar)
	case errors.Is(err, vault.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: vault file does not exist\n")
		fmt.Fprintf(os.Stderr, "Run 'passvault new' to create one\n")
	case errors.Is(err, vault.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: vault file already exists\n")
	case errors.Is(err, vault.ErrInvalidFormat):
		fmt.Fprintf(os.Stderr, "Error: not a vault file\n")
	case errors.Is(err, vault.ErrWrongPassword):
		fmt.Fprintf(os.Stderr, "Error: incorrect master password\n")
	case errors.Is(err, vault.ErrCorrupted):
		fmt.Fprintf(os.Stderr, "Error: vault is corrupted\n")
	case errors.Is(err, entry.ErrEntryExists):
		fmt.Fprintf(os.Stderr, "Error: entry already exists\n")
	case errors.Is(err, entry.ErrEntryNotFound):
		fmt.Fprintf(os.Stderr, "Error: entry does not exist\n")
	case errors.Is(err, entry.ErrBuiltinKey):
		fmt.Fprintf(os.Stderr, "Error: property name collides with a builtin field (%s, %s)\n",
			entry.FieldLastModified, entry.FieldLastRevealed)
	case errors.Is(err, entry.ErrMissingPassword):
		fmt.Fprintf(os.Stderr, "Error: entry needs a %q property\n", entry.FieldPassword)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
