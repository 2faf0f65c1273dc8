package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for both the password verifier and the per-record
// encryption key. The two derivations always use independent salts so the
// stored verifier hash never doubles as an encryption key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32

	saltLen  = 16
	nonceLen = 12 // AES-GCM standard nonce size
)

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}
	return salt, nil
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// hashVerifier derives the salted password verifier. Same KDF as the
// encryption key but over its own salt.
func hashVerifier(password string, salt []byte) string {
	hash := deriveKey(password, salt)
	defer zero(hash)
	return base64.StdEncoding.EncodeToString(hash)
}

func (f *vaultFile) verifyMasterPassword(password string) bool {
	salt, err := base64.StdEncoding.DecodeString(f.VerifierSalt)
	if err != nil {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(f.VerifierHash)
	if err != nil {
		return false
	}

	actual := deriveKey(password, salt)
	defer zero(actual)

	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// encryptSecret seals the secret with AES-256-GCM under a key freshly
// derived from the master password with its own salt and nonce.
func encryptSecret(secret []byte, password string) (salt, nonce, ciphertext []byte, err error) {
	salt, err = newSalt()
	if err != nil {
		return nil, nil, nil, err
	}

	nonce = make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to generate nonce")
	}

	key := deriveKey(password, salt)
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to create cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to create GCM")
	}

	return salt, nonce, aead.Seal(nil, nonce, secret, nil), nil
}

// decryptSecret opens the ciphertext. A tag mismatch means tampered or
// corrupt data and surfaces as ErrDecryptionFailed.
func decryptSecret(salt, nonce, ciphertext []byte, password string) ([]byte, error) {
	key := deriveKey(password, salt)
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
