package workflow

import (
	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/darklakefi/gateway-wallet/internal/gateway"
)

// Events receives workflow progress notifications. The orchestrator never
// writes to the console itself; output formatting belongs to the reporter.
type Events interface {
	WalletLoaded(user solana.PublicKey)
	RequestSent(trackingID, tradeID string)
	Decoded(variant string, requiredSigners int)
	Signed(signer solana.PublicKey)
	SigningSkipped()
	Submitted(success bool, errorLogs []string)
	StatusPolled(attempt int, status gateway.TradeStatus, err error)
	Done(res *Result)
}

// NopEvents discards every notification.
type NopEvents struct{}

func (NopEvents) WalletLoaded(solana.PublicKey)                {}
func (NopEvents) RequestSent(string, string)                   {}
func (NopEvents) Decoded(string, int)                          {}
func (NopEvents) Signed(solana.PublicKey)                      {}
func (NopEvents) SigningSkipped()                              {}
func (NopEvents) Submitted(bool, []string)                     {}
func (NopEvents) StatusPolled(int, gateway.TradeStatus, error) {}
func (NopEvents) Done(*Result)                                 {}

// LogEvents reports progress through a zerolog logger.
func LogEvents(log zerolog.Logger) Events { return &logEvents{log: log} }

type logEvents struct {
	log zerolog.Logger
}

func (l *logEvents) WalletLoaded(user solana.PublicKey) {
	l.log.Info().Str("user", user.String()).Msg("wallet loaded")
}

func (l *logEvents) RequestSent(trackingID, tradeID string) {
	l.log.Info().Str("tracking", trackingID).Str("trade", tradeID).Msg("unsigned transaction received")
}

func (l *logEvents) Decoded(variant string, requiredSigners int) {
	l.log.Info().Str("variant", variant).Int("required_signers", requiredSigners).Msg("transaction decoded")
}

func (l *logEvents) Signed(signer solana.PublicKey) {
	l.log.Info().Str("signer", signer.String()).Msg("transaction signed")
}

func (l *logEvents) SigningSkipped() {
	l.log.Info().Msg("message requires no signatures, skipping signing")
}

func (l *logEvents) Submitted(success bool, errorLogs []string) {
	if success {
		l.log.Info().Msg("signed transaction accepted")
		return
	}
	l.log.Warn().Strs("error_logs", errorLogs).Msg("gateway rejected submission, polling status anyway")
}

func (l *logEvents) StatusPolled(attempt int, status gateway.TradeStatus, err error) {
	if err != nil {
		l.log.Warn().Int("attempt", attempt).Err(err).Msg("status check failed")
		return
	}
	l.log.Info().Int("attempt", attempt).Str("status", string(status)).Msg("trade status")
}

func (l *logEvents) Done(res *Result) {
	ev := l.log.Info().Str("trade", res.TradeID).Str("tracking", res.TrackingID)
	if res.StatusKnown {
		ev.Str("status", string(res.Status))
	}
	ev.Msg("workflow finished")
}
