package vault

import (
	"time"

	"github.com/pkg/errors"
)

const (
	vaultVersion = 1

	cipherAES256GCM = "aes-256-gcm"
	kdfArgon2id     = "argon2id"
)

var (
	// ErrWrongPassword indicates the master password verifier did not match.
	// It is returned before any wallet-name lookup so a wrong password never
	// reveals whether a wallet exists.
	ErrWrongPassword = errors.New("invalid master password")

	// ErrDuplicateWallet indicates the wallet name is already taken.
	// Existing records are never overwritten.
	ErrDuplicateWallet = errors.New("wallet name already exists")

	// ErrWalletNotFound indicates no record under the given wallet name.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrDecryptionFailed indicates an AEAD tag mismatch: the record was
	// tampered with or corrupted. Fatal for that record, never defaulted.
	ErrDecryptionFailed = errors.New("decryption failed: ciphertext integrity check failed")

	// ErrStorageIO indicates the vault file could not be durably read or
	// written. The operation failed even if the in-memory mutation happened.
	ErrStorageIO = errors.New("vault storage failure")
)

// Record is one named, encrypted wallet secret. Salt, nonce and ciphertext
// (which carries the GCM tag) are stored base64-encoded.
type Record struct {
	ID            string    `json:"id"`
	WalletName    string    `json:"wallet_name"`
	PublicAddress string    `json:"public_address"`
	Cipher        string    `json:"cipher"`
	KDF           string    `json:"kdf"`
	KDFSalt       string    `json:"kdf_salt"`
	Nonce         string    `json:"nonce"`
	Ciphertext    string    `json:"ciphertext"`
	CreatedAt     time.Time `json:"created_at"`
}

// vaultFile is the persisted vault layout: the password verifier plus the
// wallet-name keyed records. One file per deployment, rewritten atomically
// after every mutation.
type vaultFile struct {
	Version      int                `json:"version"`
	VerifierSalt string             `json:"verifier_salt"`
	VerifierHash string             `json:"verifier_hash"`
	Wallets      map[string]*Record `json:"wallets"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Entry is the secret-free listing view of a record.
type Entry struct {
	WalletName    string    `json:"wallet_name"`
	PublicAddress string    `json:"public_address"`
	CreatedAt     time.Time `json:"created_at"`
}
