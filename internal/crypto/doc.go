// Package crypto provides the cryptographic primitives for the vault
// file format.
//
// Encryption uses AES-256-CBC with:
//   - 32-byte key derived from the master password via PBKDF2
//   - 16-byte random IV per write
//   - PKCS#7 padding, always present (full block when aligned)
//
// Key derivation uses PBKDF2-HMAC-SHA1 with:
//   - 8-byte random salt, regenerated on every write
//   - 2000 iterations
//
// Integrity is a bespoke tag scheme, not a standard authenticated
// mode: the SHA-512 digest of the ciphertext is encrypted on the same
// CBC chain as the payload and stored next to a plaintext copy of the
// digest. Comparing the decrypted tag against the stored plaintext tag
// is the only authentication check in the format. Note that the
// plaintext copy discloses SHA-512(ciphertext) to anyone holding the
// file; a future format revision should move to a standard AEAD.
//
// All parameters are fixed constants of the format, not tunable.
package crypto
