package vault_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/seimcp/go-wallet/internal/wallet/vault"
)

const (
	testPassword = "correct horse battery staple"
	testAddress  = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"
)

func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	return vault.New(filepath.Join(t.TempDir(), "wallets.json"))
}

func TestAddAndGetSecretRoundTrip(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	secret := []byte("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	require.NoError(t, v.AddWallet(ctx, "w1", secret, testAddress, testPassword))

	got, err := v.GetSecret(ctx, "w1", testPassword)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestGetSecretWrongPassword(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	require.NoError(t, v.AddWallet(ctx, "w1", []byte("secret"), testAddress, testPassword))

	_, err := v.GetSecret(ctx, "w1", "not the password")
	require.ErrorIs(t, err, vault.ErrWrongPassword)

	// A wrong password on a missing wallet reports the same failure, so the
	// response does not reveal whether the name exists.
	_, err = v.GetSecret(ctx, "no-such-wallet", "not the password")
	require.ErrorIs(t, err, vault.ErrWrongPassword)
}

func TestGetSecretWalletNotFound(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	require.NoError(t, v.Init(ctx, testPassword))

	_, err := v.GetSecret(ctx, "missing", testPassword)
	require.ErrorIs(t, err, vault.ErrWalletNotFound)
}

func TestAddWalletDuplicateName(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	require.NoError(t, v.AddWallet(ctx, "w1", []byte("first"), testAddress, testPassword))

	err := v.AddWallet(ctx, "w1", []byte("second"), testAddress, testPassword)
	require.ErrorIs(t, err, vault.ErrDuplicateWallet)

	// The original record survives.
	got, err := v.GetSecret(ctx, "w1", testPassword)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestListNeverReturnsSecrets(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	require.NoError(t, v.AddWallet(ctx, "w1", []byte("super-secret"), testAddress, testPassword))

	entries, err := v.List(ctx, testPassword)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "w1", entries[0].WalletName)
	assert.Equal(t, testAddress, entries[0].PublicAddress)

	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret")
	assert.NotContains(t, string(raw), "ciphertext")
}

func TestRemoveWallet(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	require.NoError(t, v.AddWallet(ctx, "w1", []byte("secret"), testAddress, testPassword))

	removed, err := v.Remove(ctx, "w1", testPassword)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = v.Remove(ctx, "w1", testPassword)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = v.GetSecret(ctx, "w1", testPassword)
	require.ErrorIs(t, err, vault.ErrWalletNotFound)
}

func TestMissingVaultFileBehavesAsEmptyStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallets.json")
	v := vault.New(path)

	entries, err := v.List(ctx, testPassword)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = v.GetSecret(ctx, "w1", testPassword)
	require.ErrorIs(t, err, vault.ErrWalletNotFound)

	removed, err := v.Remove(ctx, "w1", testPassword)
	require.NoError(t, err)
	assert.False(t, removed)

	// Read paths never materialize the file; only a mutation that knows the
	// master password does.
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, v.AddWallet(ctx, "w1", []byte("secret"), testAddress, testPassword))
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestPersistedVaultReloads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallets.json")

	v := vault.New(path)
	require.NoError(t, v.AddWallet(ctx, "w1", []byte("secret-one"), testAddress, testPassword))
	require.NoError(t, v.AddWallet(ctx, "w2", []byte("secret-two"), testAddress, testPassword))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// A fresh handle over the same file sees identical records.
	reopened := vault.New(path)
	got, err := reopened.GetSecret(ctx, "w1", testPassword)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret-one"), got)

	entries, err := reopened.List(ctx, testPassword)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Read-only access does not rewrite the file.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTamperedCiphertextFailsClosed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallets.json")

	v := vault.New(path)
	require.NoError(t, v.AddWallet(ctx, "w1", []byte("secret"), testAddress, testPassword))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var file map[string]any
	require.NoError(t, json.Unmarshal(data, &file))
	wallets := file["wallets"].(map[string]any)
	record := wallets["w1"].(map[string]any)
	record["ciphertext"] = "dGFtcGVyZWQtY2lwaGVydGV4dC1ieXRlcw=="

	tampered, err := json.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, tampered, 0o600))

	_, err = v.GetSecret(ctx, "w1", testPassword)
	require.ErrorIs(t, err, vault.ErrDecryptionFailed)
}

func TestInitVerifiesExistingPassword(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallets.json")

	v := vault.New(path)
	require.NoError(t, v.Init(ctx, testPassword))
	require.NoError(t, v.Init(ctx, testPassword))
	require.ErrorIs(t, v.Init(ctx, "different"), vault.ErrWrongPassword)
}
