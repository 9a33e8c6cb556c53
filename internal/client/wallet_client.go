package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	walletRequest "github.com/LavaJover/shvark-refund-service/internal/delivery/http/dto/wallet/request"
	walletResponse "github.com/LavaJover/shvark-refund-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/shvark-refund-service/internal/domain"
)

// HTTPWalletClient credits refunds to buyer wallets through the wallet service.
type HTTPWalletClient struct {
	Address string
	client  *http.Client
}

func NewHTTPWalletClient(address string) *HTTPWalletClient {
	return &HTTPWalletClient{
		Address: address,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPWalletClient) CreditRefund(ctx context.Context, credit domain.WalletCredit) error {
	requestBodyBytes, err := json.Marshal(walletRequest.CreditRequest{
		UserID:    credit.UserID,
		RefundID:  credit.RefundID,
		OrderID:   credit.OrderID,
		Amount:    credit.Amount.StringFixed(2),
		Reference: credit.Reference,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/wallets/credit", c.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", credit.Reference)

	response, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWalletCredit, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errorResponse walletResponse.ErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil || errorResponse.Error == "" {
		return fmt.Errorf("%w: wallet service responded %d", domain.ErrWalletCredit, response.StatusCode)
	}
	return fmt.Errorf("%w: %w", domain.ErrWalletCredit, errors.New(errorResponse.Error))
}
