// Package wallet holds the run's keypair and applies it to decoded
// transactions.
package wallet

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"

	"github.com/darklakefi/gateway-wallet/internal/config"
)

// NotRequiredSignerError means the transaction demands signatures but the
// local key is not among the required signers, so this wallet cannot make it
// valid.
type NotRequiredSignerError struct {
	Signer   solana.PublicKey
	Required int
}

func (e *NotRequiredSignerError) Error() string {
	return fmt.Sprintf("%s is not among the %d required signers", e.Signer, e.Required)
}

// Wallet wraps the private key for the run's lifetime. The key is never
// persisted or logged.
type Wallet struct {
	priv solana.PrivateKey
}

// FromBase58 derives the keypair from base58 key material.
func FromBase58(key string) (*Wallet, error) {
	priv, err := solana.PrivateKeyFromBase58(key)
	if err != nil {
		return nil, &config.ConfigError{Field: "private_key", Err: err}
	}
	return &Wallet{priv: priv}, nil
}

// Load derives the keypair from the configured key material.
func Load(cfg *config.Config) (*Wallet, error) { return FromBase58(cfg.PrivateKey) }

// PublicKey is the wallet's address.
func (w *Wallet) PublicKey() solana.PublicKey { return w.priv.PublicKey() }

// SignTransaction signs tx in place with the local key. It returns false with
// no error when the message requires no signatures at all, and fails with
// NotRequiredSignerError when signatures are required but the local key is
// not a required signer. Signatures already present for other signers are
// preserved.
func (w *Wallet) SignTransaction(tx *solana.Transaction) (bool, error) {
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 {
		return false, nil
	}
	pub := w.priv.PublicKey()
	if !tx.Message.IsSigner(pub) {
		return false, &NotRequiredSignerError{Signer: pub, Required: required}
	}
	_, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(pub) {
			return &w.priv
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("sign transaction: %w", err)
	}
	return true, nil
}
