package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/darklakefi/gateway-wallet/internal/metrics"
)

// Operation names, matching the gateway's RPC surface.
const (
	OpCreateUnsignedTransaction = "CreateUnsignedTransaction"
	OpSendSignedTransaction     = "SendSignedTransaction"
	OpCheckTradeStatus          = "CheckTradeStatus"
	OpGetTradesListByUser       = "GetTradesListByUser"
)

var opPaths = map[string]string{
	OpCreateUnsignedTransaction: "/v1/create-unsigned-transaction",
	OpSendSignedTransaction:     "/v1/send-signed-transaction",
	OpCheckTradeStatus:          "/v1/check-trade-status",
	OpGetTradesListByUser:       "/v1/trades-list-by-user",
}

// GatewayError wraps any failure of a single gateway call: transport error,
// non-OK status, or a malformed response body.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("gateway %s: %v", e.Op, e.Err) }

func (e *GatewayError) Unwrap() error { return e.Err }

// Client speaks the gateway's four unary operations over HTTP JSON.
// Each method is one request/one response; no retry or timeout lives here —
// retry policy belongs to the caller.
type Client struct {
	Base string
	Http *http.Client
	log  zerolog.Logger
}

// NewClient builds a client for the gateway at base. A nil httpClient falls
// back to a fresh client with no timeout.
func NewClient(base string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{Base: base, Http: httpClient, log: log}
}

// Swap asks the gateway to build an unsigned transaction for the request.
func (c *Client) Swap(ctx context.Context, req SwapRequest) (*SwapResponse, error) {
	var out SwapResponse
	if err := c.call(ctx, OpCreateUnsignedTransaction, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitSignedTransaction sends the signed payload back for settlement.
func (c *Client) SubmitSignedTransaction(ctx context.Context, req SignedTransactionRequest) (*SignedTransactionResponse, error) {
	var out SignedTransactionResponse
	if err := c.call(ctx, OpSendSignedTransaction, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckTradeStatus fetches the current status of one trade.
func (c *Client) CheckTradeStatus(ctx context.Context, req CheckTradeStatusRequest) (*CheckTradeStatusResponse, error) {
	var out CheckTradeStatusResponse
	if err := c.call(ctx, OpCheckTradeStatus, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTradesListByUser pages through the trades recorded for a wallet address.
func (c *Client) GetTradesListByUser(ctx context.Context, req TradesListRequest) (*TradesListResponse, error) {
	var out TradesListResponse
	if err := c.call(ctx, OpGetTradesListByUser, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) call(ctx context.Context, op string, in, out any) error {
	err := c.do(ctx, op, in, out)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GatewayRequests.WithLabelValues(op, outcome).Inc()
	return err
}

func (c *Client) do(ctx context.Context, op string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &GatewayError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+opPaths[op], bytes.NewReader(body))
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("op", op).Msg("gateway call")
	resp, err := c.Http.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &GatewayError{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
