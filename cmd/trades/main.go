// Binary trades lists the gateway's trade records for the configured wallet.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/darklakefi/gateway-wallet/internal/config"
	"github.com/darklakefi/gateway-wallet/internal/gateway"
	"github.com/darklakefi/gateway-wallet/internal/util"
	"github.com/darklakefi/gateway-wallet/internal/wallet"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := util.NewLogger("trades", cfg.LogLevel)

	w, err := wallet.Load(cfg)
	if err != nil {
		log.Fatalf("wallet: %v", err)
	}

	client := gateway.NewClient(cfg.GatewayURL(), &http.Client{}, logger)
	resp, err := client.GetTradesListByUser(context.Background(), gateway.TradesListRequest{
		UserAddress: w.PublicKey().String(),
		Limit:       50,
	})
	if err != nil {
		logger.Error().Err(err).Msg("list trades failed")
		os.Exit(1)
	}

	logger.Info().Int("total", resp.Total).Int("returned", len(resp.Trades)).Msg("trades for wallet")
	for _, trade := range resp.Trades {
		logger.Info().
			Str("trade", trade.TradeID).
			Str("pair", trade.TokenX.Symbol+"/"+trade.TokenY.Symbol).
			Uint64("amount_in", trade.AmountIn).
			Uint64("min_out", trade.MinOut).
			Str("status", string(trade.Status)).
			Msg("trade")
	}
}
