// Package workflow sequences one swap run: build request, fetch the unsigned
// transaction, decode, sign, submit, poll to a terminal status.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	solana "github.com/gagliardetto/solana-go"

	"github.com/darklakefi/gateway-wallet/internal/config"
	"github.com/darklakefi/gateway-wallet/internal/gateway"
	"github.com/darklakefi/gateway-wallet/internal/metrics"
	"github.com/darklakefi/gateway-wallet/internal/txcodec"
	"github.com/darklakefi/gateway-wallet/internal/wallet"
)

// ErrStatusUnresolved is returned when the retry budget runs out without a
// terminal trade status.
var ErrStatusUnresolved = errors.New("no terminal trade status within retry budget")

// SubmissionError means the gateway reported failure for the signed
// submission. The run still polls afterwards; the error only decides the
// outcome when no terminal status shows up.
type SubmissionError struct {
	TradeID string
	Logs    []string
}

func (e *SubmissionError) Error() string {
	if len(e.Logs) == 0 {
		return fmt.Sprintf("gateway rejected submission for trade %s", e.TradeID)
	}
	return fmt.Sprintf("gateway rejected submission for trade %s: %s", e.TradeID, strings.Join(e.Logs, "; "))
}

// Gateway is the slice of the client the orchestrator drives.
type Gateway interface {
	Swap(ctx context.Context, req gateway.SwapRequest) (*gateway.SwapResponse, error)
	SubmitSignedTransaction(ctx context.Context, req gateway.SignedTransactionRequest) (*gateway.SignedTransactionResponse, error)
	CheckTradeStatus(ctx context.Context, req gateway.CheckTradeStatusRequest) (*gateway.CheckTradeStatusResponse, error)
}

// Result is the terminal outcome of one run. StatusKnown is false when
// polling exhausted its budget without a terminal status.
type Result struct {
	TradeID     string
	TrackingID  string
	Status      gateway.TradeStatus
	StatusKnown bool
}

// Runner wires the collaborators for one swap run. One Runner, one run.
type Runner struct {
	Gateway Gateway
	Wallet  *wallet.Wallet
	Config  *config.Config
	Events  Events
}

// BuildSwapRequest assembles the immutable swap request from configuration
// and the wallet address. Pure: cfg is only read.
func BuildSwapRequest(cfg *config.Config, user solana.PublicKey) gateway.SwapRequest {
	return gateway.SwapRequest{
		UserAddress: user.String(),
		TokenMintX:  cfg.TokenMintX,
		TokenMintY:  cfg.TokenMintY,
		AmountIn:    cfg.AmountIn,
		MinOut:      cfg.MinOut,
		IsSwapXToY:  cfg.IsSwapXToY,
		Network:     gateway.ParseNetwork(cfg.Network),
		TrackingID:  cfg.TrackingID,
		RefCode:     cfg.RefCode,
		Label:       cfg.Label,
	}
}

// Run executes the whole workflow. Steps are strictly sequential; the first
// failing step aborts the run, except that a submission the gateway reports
// as failed still gets its status polled before the run settles.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	events := r.Events
	if events == nil {
		events = NopEvents{}
	}

	user := r.Wallet.PublicKey()
	events.WalletLoaded(user)

	req := BuildSwapRequest(r.Config, user)
	swapResp, err := r.Gateway.Swap(ctx, req)
	if err != nil {
		return nil, err
	}
	events.RequestSent(req.TrackingID, swapResp.TradeID)

	tx, variant, err := txcodec.DecodeBase64(swapResp.UnsignedTransaction)
	if err != nil {
		return nil, err
	}
	events.Decoded(string(variant), int(tx.Message.Header.NumRequiredSignatures))

	signed, err := r.Wallet.SignTransaction(tx)
	if err != nil {
		return nil, err
	}
	if signed {
		events.Signed(user)
	} else {
		events.SigningSkipped()
	}

	encoded, err := txcodec.EncodeBase64(tx)
	if err != nil {
		return nil, err
	}

	subResp, err := r.Gateway.SubmitSignedTransaction(ctx, gateway.SignedTransactionRequest{
		SignedTransaction: encoded,
		TradeID:           swapResp.TradeID,
		TrackingID:        req.TrackingID,
	})
	if err != nil {
		return nil, err
	}
	var subErr error
	if !subResp.Success {
		subErr = &SubmissionError{TradeID: swapResp.TradeID, Logs: subResp.ErrorLogs}
	}
	events.Submitted(subResp.Success, subResp.ErrorLogs)

	status, known := PollStatus(ctx, r.Gateway, gateway.CheckTradeStatusRequest{
		TradeID:    swapResp.TradeID,
		TrackingID: req.TrackingID,
	}, r.Config.StatusRetries, r.Config.StatusDelay(), func(attempt int, st gateway.TradeStatus, err error) {
		metrics.StatusPolls.WithLabelValues(pollResult(st, err)).Inc()
		events.StatusPolled(attempt, st, err)
	})

	res := &Result{
		TradeID:     swapResp.TradeID,
		TrackingID:  req.TrackingID,
		Status:      status,
		StatusKnown: known,
	}
	if !known {
		if subErr != nil {
			return res, subErr
		}
		return res, ErrStatusUnresolved
	}
	events.Done(res)
	return res, nil
}

func pollResult(status gateway.TradeStatus, err error) string {
	switch {
	case err != nil:
		return "error"
	case status.Terminal():
		return "terminal"
	default:
		return "pending"
	}
}
