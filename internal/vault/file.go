package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/w0rmh013/PassVault/internal/crypto"
)

const (
	Magic     = "PVLT"
	MagicSize = len(Magic)

	HeaderSize = MagicSize + crypto.SaltSize + crypto.IVSize

	// Smallest well-formed file: header, one ciphertext block, both tags.
	minFileSize = HeaderSize + crypto.IVSize + 2*crypto.TagSize

	FilePermSecure = 0600 // File: owner rw only
)

var (
	ErrNoVaultFile   = errors.New("no vault file provided")
	ErrNotFound      = errors.New("vault file does not exist")
	ErrAlreadyExists = errors.New("vault file already exists")
	ErrInvalidFormat = errors.New("invalid vault file format")
	ErrWrongPassword = errors.New("incorrect master password")
	ErrCorrupted     = errors.New("corrupted vault")
)

// File is an encrypted vault artifact on disk, bound to a master
// password. The password itself is never persisted; only the salt used
// to derive a key from it is.
type File struct {
	path           string
	masterPassword []byte
}

// New creates a vault file handle. The path must already be resolved
// by the caller; the vault core never reads the process environment.
func New(path string, masterPassword []byte) (*File, error) {
	if path == "" {
		return nil, ErrNoVaultFile
	}
	return &File{path: path, masterPassword: masterPassword}, nil
}

// Path returns the vault file path.
func (f *File) Path() string {
	return f.path
}

// Create writes a new vault holding an empty payload. Fails if the
// path is already occupied.
func (f *File) Create() error {
	if fileExists(f.path) {
		return ErrAlreadyExists
	}
	return f.writeVault(nil)
}

// Read decrypts and returns the vault payload. On success the whole
// file is rewritten under a brand-new salt/IV before returning, so the
// on-disk salt and IV change on every read.
func (f *File) Read() ([]byte, error) {
	if err := f.checkFile(); err != nil {
		return nil, err
	}

	data, err := f.readVault()
	if err != nil {
		return nil, err
	}

	if err := f.writeVault(data); err != nil {
		crypto.ClearBytes(data)
		return nil, fmt.Errorf("failed to rewrite vault: %w", err)
	}

	return data, nil
}

// Write replaces the vault payload, re-encrypting under a fresh
// salt/IV. The vault file must already exist and carry the magic.
func (f *File) Write(data []byte) error {
	if err := f.checkFile(); err != nil {
		return err
	}
	return f.writeVault(data)
}

// ChangePassword re-encrypts the vault under a key derived from
// newPassword. The current payload is read (and thus authenticated)
// with the password the handle was opened with.
func (f *File) ChangePassword(newPassword []byte) error {
	data, err := f.Read()
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(data)

	f.masterPassword = newPassword
	return f.writeVault(data)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// checkFile verifies the vault file exists and starts with the magic.
func (f *File) checkFile() error {
	if !fileExists(f.path) {
		return ErrNotFound
	}

	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open vault file: %w", err)
	}
	defer file.Close()

	magic := make([]byte, MagicSize)
	if _, err := io.ReadFull(file, magic); err != nil {
		return ErrInvalidFormat
	}
	if string(magic) != Magic {
		return ErrInvalidFormat
	}
	return nil
}

// readVault reads the file, derives a key from the stored salt and
// decrypts. The decrypted tag must match the stored plaintext tag;
// a mismatch means a wrong master password or a tampered file, which
// the format cannot tell apart.
func (f *File) readVault() ([]byte, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	if len(raw) < minFileSize {
		return nil, ErrCorrupted
	}

	salt := raw[MagicSize : MagicSize+crypto.SaltSize]
	iv := raw[HeaderSize-crypto.IVSize : HeaderSize]
	body := raw[HeaderSize:]

	plainTag := body[len(body)-crypto.TagSize:]
	blob := body[:len(body)-crypto.TagSize]

	key := crypto.DeriveKey(f.masterPassword, salt)
	defer crypto.ClearBytes(key)

	c, err := crypto.NewCipher(key, iv)
	if err != nil {
		return nil, err
	}

	plaintext, decryptedTag, err := c.Decrypt(blob)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidCiphertext) {
			return nil, ErrCorrupted
		}
		return nil, err
	}

	if !crypto.ConstantTimeCompare(decryptedTag, plainTag) {
		crypto.ClearBytes(plaintext)
		return nil, ErrWrongPassword
	}

	return plaintext, nil
}

// writeVault encrypts data under a fresh salt/IV and writes the full
// layout durably.
func (f *File) writeVault(data []byte) error {
	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return err
	}
	iv, err := crypto.RandomBytes(crypto.IVSize)
	if err != nil {
		return err
	}

	key := crypto.DeriveKey(f.masterPassword, salt)
	defer crypto.ClearBytes(key)

	c, err := crypto.NewCipher(key, iv)
	if err != nil {
		return err
	}
	ciphertext, encryptedTag, plainTag, err := c.Encrypt(data)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, HeaderSize+len(ciphertext)+2*crypto.TagSize)
	buf = append(buf, Magic...)
	buf = append(buf, salt...)
	buf = append(buf, iv...)
	buf = append(buf, ciphertext...)
	buf = append(buf, encryptedTag...)
	buf = append(buf, plainTag...)

	return writeFileAtomic(f.path, buf, FilePermSecure)
}

// writeFileAtomic writes via a temp file in the same directory and
// renames it over the target, so an interrupted write cannot leave a
// half-written vault behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pvlt-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set temp file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace vault file: %w", err)
	}
	return nil
}
