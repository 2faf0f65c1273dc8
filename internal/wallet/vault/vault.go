package vault

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/seimcp/go-wallet/internal/util"
)

// Vault is a named, password-protected store of wallet secrets persisted as
// a single JSON file. The file is loaded fully on each access and rewritten
// atomically after every mutation, so no partial-write state is ever
// observable on disk. Mutations hold an exclusive lock; listing shares a
// read lock.
type Vault struct {
	mu   sync.RWMutex
	path string
}

// New creates a Vault handle for the given file path. The file itself is
// created lazily by the first operation that knows the master password.
func New(path string) *Vault {
	return &Vault{path: path}
}

// Path returns the vault file location.
func (v *Vault) Path() string {
	return v.path
}

// Init creates the vault file with a fresh password verifier if it does not
// exist, or verifies the master password against an existing file.
func (v *Vault) Init(ctx context.Context, masterPassword string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, err := v.loadOrCreate(ctx, masterPassword)
	return err
}

// AddWallet encrypts secret under a key derived from the master password and
// stores it as a new record. Wallet name collisions are rejected.
func (v *Vault) AddWallet(ctx context.Context, walletName string, secret []byte, publicAddress, masterPassword string) error {
	log := util.LogFromContext(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	file, err := v.loadOrCreate(ctx, masterPassword)
	if err != nil {
		return err
	}

	if _, exists := file.Wallets[walletName]; exists {
		return errors.Wrapf(ErrDuplicateWallet, "%q", walletName)
	}

	salt, nonce, ciphertext, err := encryptSecret(secret, masterPassword)
	if err != nil {
		return errors.Wrap(err, "failed to encrypt wallet secret")
	}

	file.Wallets[walletName] = &Record{
		ID:            uuid.New().String(),
		WalletName:    walletName,
		PublicAddress: publicAddress,
		Cipher:        cipherAES256GCM,
		KDF:           kdfArgon2id,
		KDFSalt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:         base64.StdEncoding.EncodeToString(nonce),
		Ciphertext:    base64.StdEncoding.EncodeToString(ciphertext),
		CreatedAt:     time.Now().UTC(),
	}
	file.UpdatedAt = time.Now().UTC()

	if err := v.persist(file); err != nil {
		return err
	}

	log.Info().Str("wallet_name", walletName).Str("address", publicAddress).Msg("Wallet registered in vault")

	return nil
}

// GetSecret decrypts and returns the secret for a wallet. The password is
// verified before the name is looked up, so a wrong password never reveals
// whether the wallet exists. The caller owns the returned bytes and must
// scrub them after use.
func (v *Vault) GetSecret(ctx context.Context, walletName, masterPassword string) ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	file, err := v.load(masterPassword)
	if err != nil {
		if errors.Is(err, errVaultMissing) {
			return nil, errors.Wrapf(ErrWalletNotFound, "%q", walletName)
		}
		return nil, err
	}

	record, ok := file.Wallets[walletName]
	if !ok {
		return nil, errors.Wrapf(ErrWalletNotFound, "%q", walletName)
	}

	salt, err := base64.StdEncoding.DecodeString(record.KDFSalt)
	if err != nil {
		return nil, errors.Wrap(ErrDecryptionFailed, "malformed salt")
	}
	nonce, err := base64.StdEncoding.DecodeString(record.Nonce)
	if err != nil {
		return nil, errors.Wrap(ErrDecryptionFailed, "malformed nonce")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(record.Ciphertext)
	if err != nil {
		return nil, errors.Wrap(ErrDecryptionFailed, "malformed ciphertext")
	}

	return decryptSecret(salt, nonce, ciphertext, masterPassword)
}

// List returns the secret-free view of all records, sorted by wallet name.
func (v *Vault) List(ctx context.Context, masterPassword string) ([]Entry, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	file, err := v.load(masterPassword)
	if err != nil {
		if errors.Is(err, errVaultMissing) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(file.Wallets))
	for _, record := range file.Wallets {
		entries = append(entries, Entry{
			WalletName:    record.WalletName,
			PublicAddress: record.PublicAddress,
			CreatedAt:     record.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].WalletName < entries[j].WalletName })

	return entries, nil
}

// Remove deletes a record. Returns false without error when the wallet name
// is absent.
func (v *Vault) Remove(ctx context.Context, walletName, masterPassword string) (bool, error) {
	log := util.LogFromContext(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	file, err := v.load(masterPassword)
	if err != nil {
		if errors.Is(err, errVaultMissing) {
			return false, nil
		}
		return false, err
	}

	if _, ok := file.Wallets[walletName]; !ok {
		return false, nil
	}

	delete(file.Wallets, walletName)
	file.UpdatedAt = time.Now().UTC()

	if err := v.persist(file); err != nil {
		return false, err
	}

	log.Info().Str("wallet_name", walletName).Msg("Wallet removed from vault")

	return true, nil
}

// errVaultMissing signals that no vault file has been created yet. Read
// paths treat this as an empty store rather than an I/O failure; only a
// mutation that knows the master password materializes the file.
var errVaultMissing = errors.New("vault file does not exist")

// load reads and parses the vault file and verifies the master password.
func (v *Vault) load(masterPassword string) (*vaultFile, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errVaultMissing
		}
		return nil, errors.Wrapf(ErrStorageIO, "failed to read vault file: %v", err)
	}

	var file vaultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(ErrStorageIO, "failed to parse vault file: %v", err)
	}
	if file.Wallets == nil {
		file.Wallets = map[string]*Record{}
	}

	if !file.verifyMasterPassword(masterPassword) {
		return nil, ErrWrongPassword
	}

	return &file, nil
}

// loadOrCreate is load, except a missing file initializes a fresh vault
// keyed to the given master password.
func (v *Vault) loadOrCreate(ctx context.Context, masterPassword string) (*vaultFile, error) {
	log := util.LogFromContext(ctx)

	if _, err := os.Stat(v.path); os.IsNotExist(err) {
		salt, err := newSalt()
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		file := &vaultFile{
			Version:      vaultVersion,
			VerifierSalt: base64.StdEncoding.EncodeToString(salt),
			VerifierHash: hashVerifier(masterPassword, salt),
			Wallets:      map[string]*Record{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := v.persist(file); err != nil {
			return nil, err
		}

		log.Info().Str("path", v.path).Msg("Created new wallet vault")

		return file, nil
	}

	return v.load(masterPassword)
}

// persist rewrites the whole vault file atomically. The caller's in-memory
// view only becomes authoritative once this succeeds; on failure the next
// operation re-reads the previous on-disk state.
func (v *Vault) persist(file *vaultFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to marshal vault: %v", err)
	}

	if err := util.WriteFileAtomic(v.path, data, 0o600); err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to write vault file: %v", err)
	}

	return nil
}
