package httperrors

import (
	"fmt"
	"net/http"
)

const (
	HTTPErrorTypeGeneric = "generic"
)

// HTTPError is the public error payload returned by the API.
type HTTPError struct {
	Code   int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// NewHTTPError builds a public HTTP error.
func NewHTTPError(code int, errorType, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

// NewHTTPErrorWithDetail builds a public HTTP error carrying extra detail.
func NewHTTPErrorWithDetail(code int, errorType, title, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	}
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

var (
	ErrBadRequestMalformedPayload = NewHTTPError(http.StatusBadRequest, HTTPErrorTypeGeneric, "Malformed request payload.")
	ErrNotFoundWallet             = NewHTTPError(http.StatusNotFound, HTTPErrorTypeGeneric, "Wallet not found.")
	ErrConflictWalletExists       = NewHTTPError(http.StatusConflict, HTTPErrorTypeGeneric, "A wallet with this name already exists.")
	ErrUnauthorizedWrongPassword  = NewHTTPError(http.StatusUnauthorized, HTTPErrorTypeGeneric, "Master password verification failed.")
	ErrTooManyRequests            = NewHTTPError(http.StatusTooManyRequests, HTTPErrorTypeGeneric, "Rate limit exceeded, try again later.")
	ErrConflictNonce              = NewHTTPError(http.StatusConflict, HTTPErrorTypeGeneric, "Transaction nonce conflict, please retry.")
	ErrBadGatewayChain            = NewHTTPError(http.StatusBadGateway, HTTPErrorTypeGeneric, "Chain endpoint rejected the transaction.")
)
