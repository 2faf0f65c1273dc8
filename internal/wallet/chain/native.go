package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const nativeRequestTimeout = 15 * time.Second

// NativeClient talks to the Cosmos-style LCD endpoint of the native chain.
type NativeClient struct {
	baseURL    string
	denom      string
	httpClient *http.Client
}

// NewNativeClient creates a client for the native chain's REST API.
// denom is the base unit queried for balances (e.g. "usei").
func NewNativeClient(baseURL, denom string) *NativeClient {
	return &NativeClient{
		baseURL: baseURL,
		denom:   denom,
		httpClient: &http.Client{
			Timeout: nativeRequestTimeout,
		},
	}
}

type nativeAccount struct {
	AccountNumber string         `json:"account_number"`
	Sequence      string         `json:"sequence"`
	BaseAccount   *nativeAccount `json:"base_account"`
}

type nativeAccountResponse struct {
	Account nativeAccount `json:"account"`
}

// AccountInfo returns the account number and current sequence for an
// address, the two values a native sign doc needs.
func (c *NativeClient) AccountInfo(ctx context.Context, address string) (accountNumber, sequence uint64, err error) {
	var res nativeAccountResponse
	url := fmt.Sprintf("%s/cosmos/auth/v1beta1/accounts/%s", c.baseURL, address)
	if err := c.getJSON(ctx, url, &res); err != nil {
		return 0, 0, errors.Wrap(err, "failed to fetch account")
	}

	account := res.Account
	if account.BaseAccount != nil {
		account = *account.BaseAccount
	}

	accountNumber, err = strconv.ParseUint(account.AccountNumber, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to parse account number")
	}

	sequence, err = strconv.ParseUint(account.Sequence, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to parse account sequence")
	}

	return accountNumber, sequence, nil
}

// GetNonce returns the account sequence, the native equivalent of the
// transaction nonce.
func (c *NativeClient) GetNonce(ctx context.Context, address string) (uint64, error) {
	_, sequence, err := c.AccountInfo(ctx, address)
	return sequence, err
}

// GetBalance returns the balance of the configured base denom.
func (c *NativeClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	var res struct {
		Balance struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"balance"`
	}

	url := fmt.Sprintf("%s/cosmos/bank/v1beta1/balances/%s/by_denom?denom=%s", c.baseURL, address, c.denom)
	if err := c.getJSON(ctx, url, &res); err != nil {
		return nil, errors.Wrap(err, "failed to fetch balance")
	}

	amount, ok := new(big.Int).SetString(res.Balance.Amount, 10)
	if !ok {
		// An absent balance comes back as an empty amount.
		if res.Balance.Amount == "" {
			return big.NewInt(0), nil
		}
		return nil, errors.Errorf("invalid balance amount %q", res.Balance.Amount)
	}

	return amount, nil
}

// SubmitTx broadcasts a signed amino transaction in sync mode via the
// legacy LCD broadcast endpoint and returns its hash. rawTx is the StdTx
// JSON produced by the signer. A non-zero broadcast code is a node-side
// rejection.
func (c *NativeClient) SubmitTx(ctx context.Context, rawTx []byte) (string, error) {
	payload, err := json.Marshal(struct {
		Tx   json.RawMessage `json:"tx"`
		Mode string          `json:"mode"`
	}{
		Tx:   rawTx,
		Mode: "sync",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal broadcast request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/txs", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to build broadcast request")
	}
	req.Header.Set("Content-Type", "application/json")

	httpRes, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "broadcast request failed")
	}
	defer func() { _ = httpRes.Body.Close() }()

	var res struct {
		TxHash string `json:"txhash"`
		Code   int    `json:"code"`
		RawLog string `json:"raw_log"`
	}
	if err := json.NewDecoder(httpRes.Body).Decode(&res); err != nil {
		return "", errors.Wrap(err, "failed to decode broadcast response")
	}

	if res.Code != 0 {
		return "", errors.Wrapf(ErrSubmissionRejected, "code %d: %s", res.Code, res.RawLog)
	}

	log.Debug().Str("tx_hash", res.TxHash).Msg("Native transaction broadcast")

	return res.TxHash, nil
}

func (c *NativeClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d from %s", res.StatusCode, url)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
