package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// EVMClient talks to the EVM-compatible RPC endpoint.
type EVMClient struct {
	client *ethclient.Client
	url    string
}

// NewEVMClient connects to the EVM RPC node.
func NewEVMClient(url string) (*EVMClient, error) {
	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to EVM RPC node %s", url)
	}

	return &EVMClient{client: client, url: url}, nil
}

// GetNonce returns the pending transaction count, so queued transactions
// from this process are accounted for.
func (c *EVMClient) GetNonce(ctx context.Context, address string) (uint64, error) {
	nonce, err := c.client.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, errors.Wrap(err, "failed to fetch pending nonce")
	}

	return nonce, nil
}

// GetBalance returns the latest balance in wei.
func (c *EVMClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	balance, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch balance")
	}

	return balance, nil
}

// SubmitTx broadcasts an RLP-encoded signed transaction.
func (c *EVMClient) SubmitTx(ctx context.Context, rawTx []byte) (string, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(rawTx); err != nil {
		return "", errors.Wrap(err, "failed to decode signed transaction")
	}

	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return "", errors.Wrap(ErrSubmissionRejected, err.Error())
	}

	log.Debug().Str("tx_hash", tx.Hash().Hex()).Msg("EVM transaction broadcast")

	return tx.Hash().Hex(), nil
}

// ChainID queries the node's chain id.
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chain id")
	}

	return chainID, nil
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.client.Close()
}
