package wallet

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	"github/seimcp/go-wallet/internal/api/httperrors"
)

// bindBody decodes the JSON request payload, mapping decode failures to a
// public 400.
func bindBody(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return httperrors.ErrBadRequestMalformedPayload
	}
	return nil
}

// parseAmount parses a positive base-unit amount given as a decimal string.
func parseAmount(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, httperrors.NewHTTPErrorWithDetail(
			http.StatusBadRequest,
			httperrors.HTTPErrorTypeGeneric,
			"Invalid amount.",
			"amount must be a positive base-unit integer",
		)
	}
	return amount, nil
}
