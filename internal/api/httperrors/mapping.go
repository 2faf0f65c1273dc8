package httperrors

import (
	"net/http"

	"github.com/pkg/errors"

	"github/seimcp/go-wallet/internal/wallet"
	"github/seimcp/go-wallet/internal/wallet/derive"
	"github/seimcp/go-wallet/internal/wallet/dispatch"
	"github/seimcp/go-wallet/internal/wallet/vault"
)

// FromDomain translates a wallet domain error into its public HTTP error.
// Unrecognized errors map to a generic 500 so internals never leak.
func FromDomain(err error) *HTTPError {
	switch {
	case errors.Is(err, vault.ErrWrongPassword):
		return ErrUnauthorizedWrongPassword
	case errors.Is(err, vault.ErrWalletNotFound):
		return ErrNotFoundWallet
	case errors.Is(err, vault.ErrDuplicateWallet):
		return ErrConflictWalletExists
	case errors.Is(err, wallet.ErrRateLimited):
		return ErrTooManyRequests
	case errors.Is(err, dispatch.ErrNonceConflict):
		return ErrConflictNonce
	case errors.Is(err, dispatch.ErrSubmissionFailed):
		return ErrBadGatewayChain
	case errors.Is(err, wallet.ErrFaucetDisabled),
		errors.Is(err, wallet.ErrMissingCredentials),
		errors.Is(err, derive.ErrInvalidAddress),
		errors.Is(err, derive.ErrInvalidSeed),
		errors.Is(err, derive.ErrInvalidKeyLength),
		errors.Is(err, derive.ErrUnknownNetwork):
		return NewHTTPErrorWithDetail(http.StatusBadRequest, HTTPErrorTypeGeneric, "Invalid request.", err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, HTTPErrorTypeGeneric, "Internal server error.")
	}
}
