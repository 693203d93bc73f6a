package crypto

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize      = 8    // 64-bit KDF salt
	IVSize        = 16   // AES block size
	KeySize       = 32   // AES-256 key size
	TagSize       = 64   // SHA-512 digest size
	KDFIterations = 2000 // PBKDF2 iteration count
)

// DeriveKey derives an AES-256 key from the master password and salt.
// Iteration count and key size are fixed constants of the vault
// format. The PRF is HMAC-SHA1, which existing vault files were
// written with.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, KDFIterations, KeySize, sha1.New)
}

// HashData returns the SHA-512 digest of data.
func HashData(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

// RandomBytes generates n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// Pad applies PKCS#7 padding. Padding is always present: input already
// aligned to blockSize grows by a full block.
func Pad(data []byte, blockSize int) []byte {
	p := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+p)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(p)
	}
	return padded
}

// Unpad strips PKCS#7 padding by trusting the trailing byte. There is
// no independent padding validation; the vault tag comparison is the
// only safeguard against garbage produced by a wrong key. Out-of-range
// padding values yield an empty result instead of panicking.
func Unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	p := int(data[len(data)-1])
	if p <= 0 || p > len(data) {
		return nil
	}
	return data[:len(data)-p]
}

// ClearBytes zeroes a byte slice holding sensitive data.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte
// slices.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
