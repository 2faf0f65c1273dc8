package wallet

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/seimcp/go-wallet/internal/api"
	"github/seimcp/go-wallet/internal/wallet"
	"github/seimcp/go-wallet/internal/wallet/derive"
)

type PostSendPayload struct {
	Network        string `json:"network"`
	WalletName     string `json:"wallet_name,omitempty"`
	MasterPassword string `json:"master_password,omitempty"`
	PrivateKey     string `json:"private_key,omitempty"`
	To             string `json:"to"`
	Amount         string `json:"amount"` // base units as a decimal string
	GasLimit       uint64 `json:"gas_limit,omitempty"`
	GasPrice       string `json:"gas_price,omitempty"`
	Memo           string `json:"memo,omitempty"`
}

func PostSendRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/send", postSendHandler(s))
}

func postSendHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostSendPayload
		if err := bindBody(c, &body); err != nil {
			return err
		}

		network, err := derive.ParseNetwork(body.Network)
		if err != nil {
			return err
		}

		amount, err := parseAmount(body.Amount)
		if err != nil {
			return err
		}

		var gasPrice *big.Int
		if body.GasPrice != "" {
			if gasPrice, err = parseAmount(body.GasPrice); err != nil {
				return err
			}
		}

		result, err := s.Wallet.SendFrom(ctx, &wallet.SendRequest{
			Network:        network,
			Caller:         c.RealIP(),
			WalletName:     body.WalletName,
			MasterPassword: body.MasterPassword,
			PrivateKey:     body.PrivateKey,
			To:             body.To,
			Amount:         amount,
			GasLimit:       body.GasLimit,
			GasPrice:       gasPrice,
			Memo:           body.Memo,
		})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, result)
	}
}
