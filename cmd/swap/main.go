// Binary swap runs one full swap against the gateway: request an unsigned
// transaction, sign it with the local wallet, submit, and poll the trade to a
// terminal status. Exits 0 only on a terminal status.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/darklakefi/gateway-wallet/internal/config"
	"github.com/darklakefi/gateway-wallet/internal/gateway"
	"github.com/darklakefi/gateway-wallet/internal/metrics"
	"github.com/darklakefi/gateway-wallet/internal/util"
	"github.com/darklakefi/gateway-wallet/internal/wallet"
	"github.com/darklakefi/gateway-wallet/internal/workflow"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := util.NewLogger("swap", cfg.LogLevel)

	if cfg.MetricsAddr != "" {
		srv := metrics.Serve(cfg.MetricsAddr)
		defer srv.Close()
	}

	w, err := wallet.Load(cfg)
	if err != nil {
		log.Fatalf("wallet: %v", err)
	}

	runner := &workflow.Runner{
		Gateway: gateway.NewClient(cfg.GatewayURL(), &http.Client{}, logger),
		Wallet:  w,
		Config:  cfg,
		Events:  workflow.LogEvents(logger),
	}

	res, err := runner.Run(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("swap workflow failed")
		os.Exit(1)
	}
	logger.Info().
		Str("trade", res.TradeID).
		Str("tracking", res.TrackingID).
		Str("status", string(res.Status)).
		Msg("swap complete")
}
