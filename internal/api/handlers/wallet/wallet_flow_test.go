package wallet_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/test"
)

const (
	flowPrivateKey = "0x8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f"
	flowPassword   = "flow test password"
)

func registerWallet(t *testing.T, s *api.Server, name string) {
	t.Helper()
	res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/register", test.GenericPayload{
		"wallet_name":     name,
		"private_key":     flowPrivateKey,
		"master_password": flowPassword,
	}, nil)
	require.Equal(t, http.StatusOK, res.Result().StatusCode)
}

func TestWalletRegisterListRemoveFlow(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		registerWallet(t, s, "treasury")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/list", test.GenericPayload{
			"master_password": flowPassword,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var listed struct {
			Wallets []struct {
				WalletName    string `json:"wallet_name"`
				PublicAddress string `json:"public_address"`
			} `json:"wallets"`
		}
		test.ParseResponseBody(t, res, &listed)
		require.Len(t, listed.Wallets, 1)
		assert.Equal(t, "treasury", listed.Wallets[0].WalletName)
		assert.NotEmpty(t, listed.Wallets[0].PublicAddress)
		assert.NotContains(t, res.Body.String(), flowPrivateKey[2:])

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/remove", test.GenericPayload{
			"wallet_name":     "treasury",
			"master_password": flowPassword,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var removed struct {
			Removed bool `json:"removed"`
		}
		test.ParseResponseBody(t, res, &removed)
		assert.True(t, removed.Removed)
	})
}

func TestWalletListOnFreshDeployment(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		// No vault file exists yet; listing reports an empty store.
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/list", test.GenericPayload{
			"master_password": flowPassword,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var listed struct {
			Wallets []struct {
				WalletName string `json:"wallet_name"`
			} `json:"wallets"`
		}
		test.ParseResponseBody(t, res, &listed)
		assert.Empty(t, listed.Wallets)
	})
}

func TestWalletListWrongPassword(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		registerWallet(t, s, "treasury")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/list", test.GenericPayload{
			"master_password": "nope",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}

func TestWalletRegisterDuplicate(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		registerWallet(t, s, "treasury")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/register", test.GenericPayload{
			"wallet_name":     "treasury",
			"private_key":     flowPrivateKey,
			"master_password": flowPassword,
		}, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)
	})
}

func TestWalletSendFromRegisteredWallet(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		registerWallet(t, s, "treasury")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/send", test.GenericPayload{
			"network":         "evm",
			"wallet_name":     "treasury",
			"master_password": flowPassword,
			"to":              "0x00000000000000000000000000000000000000aa",
			"amount":          "1000",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var sent struct {
			TxHash string `json:"tx_hash"`
			From   string `json:"from"`
			Nonce  uint64 `json:"nonce"`
		}
		test.ParseResponseBody(t, res, &sent)
		assert.NotEmpty(t, sent.TxHash)
		assert.NotEmpty(t, sent.From)
		assert.Equal(t, uint64(3), sent.Nonce)
	})
}

func TestWalletSendRejectsBadAmount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/send", test.GenericPayload{
			"network":     "evm",
			"private_key": flowPrivateKey,
			"to":          "0x00000000000000000000000000000000000000aa",
			"amount":      "-5",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestWalletGetBalance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/balance/evm/0x00000000000000000000000000000000000000aa", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var balance struct {
			Balance string `json:"balance"`
		}
		test.ParseResponseBody(t, res, &balance)
		assert.Equal(t, "1000000000", balance.Balance)
	})
}

func TestWalletFaucetRateLimited(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		drip := func() int {
			res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/faucet", test.GenericPayload{
				"network": "evm",
				"address": "0x00000000000000000000000000000000000000aa",
			}, nil)
			return res.Result().StatusCode
		}

		require.Equal(t, http.StatusOK, drip())
		require.Equal(t, http.StatusTooManyRequests, drip())
	})
}

func TestWalletFaucetDisabledNetwork(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/faucet", test.GenericPayload{
			"network": "native",
			"address": "sei1v9skzctpv9skzctpv9skzctpv9skzctpvtwn9s",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
