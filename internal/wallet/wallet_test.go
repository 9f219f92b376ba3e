package wallet

import (
	"errors"
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"github.com/darklakefi/gateway-wallet/internal/config"
)

var systemProgram = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

func unsignedTx(signer solana.PublicKey, requiredSignatures uint8) *solana.Transaction {
	return &solana.Transaction{
		Signatures: make([]solana.Signature, requiredSignatures),
		Message: solana.Message{
			Header: solana.MessageHeader{
				NumRequiredSignatures:       requiredSignatures,
				NumReadonlyUnsignedAccounts: 1,
			},
			AccountKeys:     []solana.PublicKey{signer, systemProgram},
			RecentBlockhash: solana.Hash{},
			Instructions: []solana.CompiledInstruction{
				{ProgramIDIndex: 1, Accounts: []uint16{0}, Data: solana.Base58{1}},
			},
		},
	}
}

func TestFromBase58(t *testing.T) {
	fixture := solana.NewWallet()
	w, err := FromBase58(fixture.PrivateKey.String())
	if err != nil {
		t.Fatalf("FromBase58 returned error: %v", err)
	}
	if !w.PublicKey().Equals(fixture.PublicKey()) {
		t.Fatalf("expected public key %s, got %s", fixture.PublicKey(), w.PublicKey())
	}
}

func TestFromBase58Malformed(t *testing.T) {
	_, err := FromBase58("definitely-not-a-key")
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestSignTransactionRequiredSigner(t *testing.T) {
	fixture := solana.NewWallet()
	w, err := FromBase58(fixture.PrivateKey.String())
	if err != nil {
		t.Fatalf("FromBase58 returned error: %v", err)
	}

	tx := unsignedTx(fixture.PublicKey(), 1)
	signed, err := w.SignTransaction(tx)
	if err != nil {
		t.Fatalf("SignTransaction returned error: %v", err)
	}
	if !signed {
		t.Fatalf("expected transaction to be signed")
	}
	if len(tx.Signatures) != 1 || tx.Signatures[0].IsZero() {
		t.Fatalf("expected a real signature, got %+v", tx.Signatures)
	}
}

func TestSignTransactionNotRequiredSigner(t *testing.T) {
	fixture := solana.NewWallet()
	other := solana.NewWallet()
	w, err := FromBase58(fixture.PrivateKey.String())
	if err != nil {
		t.Fatalf("FromBase58 returned error: %v", err)
	}

	tx := unsignedTx(other.PublicKey(), 1)
	_, err = w.SignTransaction(tx)
	var signerErr *NotRequiredSignerError
	if !errors.As(err, &signerErr) {
		t.Fatalf("expected NotRequiredSignerError, got %v", err)
	}
	if signerErr.Required != 1 {
		t.Fatalf("expected 1 required signer in error, got %d", signerErr.Required)
	}
}

func TestSignTransactionNoSignersNeeded(t *testing.T) {
	fixture := solana.NewWallet()
	w, err := FromBase58(fixture.PrivateKey.String())
	if err != nil {
		t.Fatalf("FromBase58 returned error: %v", err)
	}

	tx := unsignedTx(fixture.PublicKey(), 0)
	signed, err := w.SignTransaction(tx)
	if err != nil {
		t.Fatalf("SignTransaction returned error: %v", err)
	}
	if signed {
		t.Fatalf("expected signing to be skipped")
	}
}
