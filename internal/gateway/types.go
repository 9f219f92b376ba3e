// Package gateway is the client adapter for the swap gateway's unary RPC surface.
package gateway

import "strings"

// Network selects which Solana cluster the gateway should build transactions for.
type Network string

const (
	NetworkMainnetBeta Network = "mainnet-beta"
	NetworkTestnet     Network = "testnet"
	NetworkDevnet      Network = "devnet"
)

// ParseNetwork maps a configured network name to its enum value. Unknown or
// empty names fall back to devnet.
func ParseNetwork(name string) Network {
	switch strings.ToLower(name) {
	case string(NetworkMainnetBeta), "mainnet":
		return NetworkMainnetBeta
	case string(NetworkTestnet):
		return NetworkTestnet
	default:
		return NetworkDevnet
	}
}

// TradeStatus enumerates the gateway-side lifecycle of a trade.
type TradeStatus string

const (
	StatusUnsigned  TradeStatus = "UNSIGNED"
	StatusSigned    TradeStatus = "SIGNED"
	StatusConfirmed TradeStatus = "CONFIRMED"
	StatusSettled   TradeStatus = "SETTLED"
	StatusSlashed   TradeStatus = "SLASHED"
	StatusCancelled TradeStatus = "CANCELLED"
)

// Terminal reports whether no further status transition can occur.
func (s TradeStatus) Terminal() bool {
	switch s {
	case StatusSettled, StatusSlashed, StatusCancelled:
		return true
	}
	return false
}

// SwapRequest asks the gateway to build an unsigned swap transaction.
// Constructed once per run and never mutated afterwards.
type SwapRequest struct {
	UserAddress string  `json:"userAddress"`
	TokenMintX  string  `json:"tokenMintX"`
	TokenMintY  string  `json:"tokenMintY"`
	AmountIn    uint64  `json:"amountIn"`
	MinOut      uint64  `json:"minOut"`
	IsSwapXToY  bool    `json:"isSwapXToY"`
	Network     Network `json:"network"`
	TrackingID  string  `json:"trackingId"`
	RefCode     string  `json:"refCode,omitempty"`
	Label       string  `json:"label,omitempty"`
}

// SwapResponse carries the base64 unsigned transaction payload. The binary
// shape of the payload is not guaranteed; see the txcodec package.
type SwapResponse struct {
	UnsignedTransaction string `json:"unsignedTransaction"`
	TradeID             string `json:"tradeId"`
}

// SignedTransactionRequest submits the locally signed payload back to the gateway.
type SignedTransactionRequest struct {
	SignedTransaction string `json:"signedTransaction"`
	TradeID           string `json:"tradeId"`
	TrackingID        string `json:"trackingId"`
}

// SignedTransactionResponse reports whether the gateway accepted the submission.
type SignedTransactionResponse struct {
	Success   bool     `json:"success"`
	ErrorLogs []string `json:"errorLogs,omitempty"`
}

// CheckTradeStatusRequest looks up the current status of one trade.
type CheckTradeStatusRequest struct {
	TradeID    string `json:"tradeId"`
	TrackingID string `json:"trackingId"`
}

// CheckTradeStatusResponse is the gateway's answer to a status check.
type CheckTradeStatusResponse struct {
	TradeID string      `json:"tradeId"`
	Status  TradeStatus `json:"status"`
}

// TradesListRequest pages through the trades recorded for one wallet.
type TradesListRequest struct {
	UserAddress string `json:"userAddress"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

// TradesListResponse holds the gateway's read-only trade records.
type TradesListResponse struct {
	Trades []Trade `json:"trades"`
	Total  int     `json:"total"`
}

// TokenMetadata describes one side of a trade's token pair.
type TokenMetadata struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Trade is the gateway's record of one swap lifecycle. Display-only; never
// mutated locally.
type Trade struct {
	TradeID     string        `json:"tradeId"`
	UserAddress string        `json:"userAddress"`
	TokenX      TokenMetadata `json:"tokenX"`
	TokenY      TokenMetadata `json:"tokenY"`
	AmountIn    uint64        `json:"amountIn"`
	MinOut      uint64        `json:"minOut"`
	IsSwapXToY  bool          `json:"isSwapXToY"`
	Status      TradeStatus   `json:"status"`
	CreatedAt   int64         `json:"createdAt"`
	UpdatedAt   int64         `json:"updatedAt"`
}
