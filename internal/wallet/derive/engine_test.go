package derive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveFromMnemonicNetworkAddresses(t *testing.T) {
	engine := derive.NewEngine("sei")

	evmKey, evmAddr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkEVM)
	require.NoError(t, err)
	defer evmKey.Zero()

	nativeKey, nativeAddr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkNative)
	require.NoError(t, err)
	defer nativeKey.Zero()

	assert.True(t, strings.HasPrefix(evmAddr, "0x"), "evm address should start with 0x: %s", evmAddr)
	assert.Len(t, evmAddr, 42)

	assert.True(t, strings.HasPrefix(nativeAddr, "sei1"), "native address should start with sei1: %s", nativeAddr)
	assert.GreaterOrEqual(t, len(nativeAddr), 39)

	// Distinct coin types must yield distinct keys from one phrase.
	assert.NotEqual(t, evmKey.PrivateKeyHex(), nativeKey.PrivateKeyHex())
	assert.NotEqual(t, evmAddr, nativeAddr)
}

func TestDeriveFromMnemonicDeterministic(t *testing.T) {
	engine := derive.NewEngine("sei")

	first, firstAddr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkEVM)
	require.NoError(t, err)
	defer first.Zero()

	second, secondAddr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkEVM)
	require.NoError(t, err)
	defer second.Zero()

	assert.Equal(t, firstAddr, secondAddr)
	assert.Equal(t, first.PrivateKeyHex(), second.PrivateKeyHex())
}

func TestDeriveFromMnemonicInvalidChecksum(t *testing.T) {
	engine := derive.NewEngine("sei")

	// Last word changed, checksum no longer matches.
	_, _, err := engine.DeriveFromMnemonic(strings.Replace(testMnemonic, "about", "abandon", 1), derive.NetworkEVM)
	require.ErrorIs(t, err, derive.ErrInvalidSeed)
}

func TestFromPrivateKeyHexRoundTrip(t *testing.T) {
	engine := derive.NewEngine("sei")

	kp, addr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkEVM)
	require.NoError(t, err)
	privHex := kp.PrivateKeyHex()

	imported, importedAddr, err := engine.FromPrivateKeyHex(privHex, derive.NetworkEVM)
	require.NoError(t, err)
	defer imported.Zero()
	defer kp.Zero()

	assert.Equal(t, addr, importedAddr)
}

func TestFromPrivateKeyLengthValidation(t *testing.T) {
	engine := derive.NewEngine("sei")

	tests := []struct {
		name string
		priv []byte
	}{
		{"too short", make([]byte, 31)},
		{"too long", make([]byte, 33)},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := engine.FromPrivateKey(tt.priv, derive.NetworkEVM)
			require.ErrorIs(t, err, derive.ErrInvalidKeyLength)
		})
	}
}

func TestFromPrivateKeyHexRejectsGarbage(t *testing.T) {
	engine := derive.NewEngine("sei")

	_, _, err := engine.FromPrivateKeyHex("0xnothex", derive.NetworkNative)
	require.ErrorIs(t, err, derive.ErrInvalidKeyLength)
}

func TestGenerateMnemonicIsValidAndUnique(t *testing.T) {
	engine := derive.NewEngine("sei")

	first, err := engine.GenerateMnemonic()
	require.NoError(t, err)
	second, err := engine.GenerateMnemonic()
	require.NoError(t, err)

	assert.Len(t, strings.Fields(first), 24)
	assert.NotEqual(t, first, second)

	_, _, err = engine.DeriveFromMnemonic(first, derive.NetworkNative)
	require.NoError(t, err)
}

func TestParseNetwork(t *testing.T) {
	_, err := derive.ParseNetwork("evm")
	require.NoError(t, err)
	_, err = derive.ParseNetwork("native")
	require.NoError(t, err)
	_, err = derive.ParseNetwork("solana")
	require.ErrorIs(t, err, derive.ErrUnknownNetwork)
}

func TestValidateAddress(t *testing.T) {
	engine := derive.NewEngine("sei")

	kp, nativeAddr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkNative)
	require.NoError(t, err)
	kp.Zero()
	kp, evmAddr, err := engine.DeriveFromMnemonic(testMnemonic, derive.NetworkEVM)
	require.NoError(t, err)
	kp.Zero()

	require.NoError(t, engine.ValidateAddress(evmAddr, derive.NetworkEVM))
	require.NoError(t, engine.ValidateAddress(nativeAddr, derive.NetworkNative))

	// wrong network for the address form
	require.ErrorIs(t, engine.ValidateAddress(nativeAddr, derive.NetworkEVM), derive.ErrInvalidAddress)
	require.ErrorIs(t, engine.ValidateAddress(evmAddr, derive.NetworkNative), derive.ErrInvalidAddress)

	// foreign bech32 prefix
	cosmos := derive.NewEngine("cosmos")
	require.ErrorIs(t, cosmos.ValidateAddress(nativeAddr, derive.NetworkNative), derive.ErrInvalidAddress)

	require.ErrorIs(t, engine.ValidateAddress("0x1234", derive.NetworkEVM), derive.ErrInvalidAddress)
	require.ErrorIs(t, engine.ValidateAddress(evmAddr, derive.Network("solana")), derive.ErrUnknownNetwork)
}
