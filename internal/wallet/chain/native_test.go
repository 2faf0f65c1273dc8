package chain_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/seimcp/go-wallet/internal/wallet/chain"
)

func TestNativeSubmitTxPostsAminoEnvelopeToLegacyEndpoint(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Tx   json.RawMessage `json:"tx"`
		Mode string          `json:"mode"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"txhash": "9F2C71A0",
			"code":   0,
		})
	}))
	defer srv.Close()

	client := chain.NewNativeClient(srv.URL, "usei")

	stdTx := []byte(`{"fee":{"amount":[{"amount":"20000","denom":"usei"}],"gas":"200000"},"memo":"","msg":[{"type":"cosmos-sdk/MsgSend","value":{"amount":[{"amount":"1","denom":"usei"}],"from_address":"sei1a","to_address":"sei1b"}}],"signatures":[]}`)
	hash, err := client.SubmitTx(context.Background(), stdTx)
	require.NoError(t, err)

	assert.Equal(t, "9F2C71A0", hash)
	assert.Equal(t, "/txs", gotPath)
	assert.Equal(t, "sync", gotBody.Mode)
	// The StdTx rides as-is under "tx"; the signer already produced JSON.
	assert.JSONEq(t, string(stdTx), string(gotBody.Tx))
}

func TestNativeSubmitTxNonZeroCodeIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"txhash":  "",
			"code":    4,
			"raw_log": "signature verification failed",
		})
	}))
	defer srv.Close()

	client := chain.NewNativeClient(srv.URL, "usei")

	_, err := client.SubmitTx(context.Background(), []byte(`{"msg":[]}`))
	require.ErrorIs(t, err, chain.ErrSubmissionRejected)
	assert.Contains(t, err.Error(), "signature verification failed")
}

func TestNativeAccountInfoUnwrapsBaseAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"account": map[string]any{
				"base_account": map[string]any{
					"account_number": "42",
					"sequence":       "7",
				},
			},
		})
	}))
	defer srv.Close()

	client := chain.NewNativeClient(srv.URL, "usei")

	accountNumber, sequence, err := client.AccountInfo(context.Background(), "sei1a")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accountNumber)
	assert.Equal(t, uint64(7), sequence)
}
