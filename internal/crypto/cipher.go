package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Cipher implements the vault encryption protocol over a single
// key/IV pair. Each Cipher is good for one encrypt or one decrypt; the
// vault never reuses a salt/IV pair across writes.
type Cipher struct {
	key []byte
	iv  []byte
}

// NewCipher creates a cipher for the given key and IV.
func NewCipher(key, iv []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size %d, want %d", len(key), KeySize)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("invalid IV size %d, want %d", len(iv), IVSize)
	}
	return &Cipher{key: key, iv: iv}, nil
}

// Encrypt pads and encrypts plaintext with AES-256-CBC. plainTag is
// the SHA-512 digest of the ciphertext; encryptedTag is that digest
// encrypted as a continuation of the same CBC chain, as if it were the
// next blocks of the stream.
func (c *Cipher) Encrypt(plaintext []byte) (ciphertext, encryptedTag, plainTag []byte, err error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	mode := cipher.NewCBCEncrypter(block, c.iv)

	padded := Pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	mode.CryptBlocks(ciphertext, padded)

	plainTag = HashData(ciphertext)

	encryptedTag = make([]byte, TagSize)
	mode.CryptBlocks(encryptedTag, plainTag)

	return ciphertext, encryptedTag, plainTag, nil
}

// Decrypt decrypts a combined ciphertext++encryptedTag blob. The last
// TagSize decrypted bytes are returned as decryptedTag, the unpadded
// remainder as plaintext. Decryption succeeds structurally even under
// a wrong key, producing garbage rather than an error; callers must
// compare decryptedTag against the stored plaintext tag themselves.
// The only structural failure is a blob too short or not aligned to
// the block size, which CBC cannot process at all.
func (c *Cipher) Decrypt(blob []byte) (plaintext, decryptedTag []byte, err error) {
	if len(blob) < aes.BlockSize+TagSize || len(blob)%aes.BlockSize != 0 {
		return nil, nil, ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	mode := cipher.NewCBCDecrypter(block, c.iv)

	decrypted := make([]byte, len(blob))
	mode.CryptBlocks(decrypted, blob)

	decryptedTag = decrypted[len(decrypted)-TagSize:]
	plaintext = Unpad(decrypted[:len(decrypted)-TagSize])

	return plaintext, decryptedTag, nil
}
