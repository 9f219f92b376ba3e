package txcodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	solana "github.com/gagliardetto/solana-go"
)

var systemProgram = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

func testMessage(signer solana.PublicKey) solana.Message {
	return solana.Message{
		Header: solana.MessageHeader{
			NumRequiredSignatures:       1,
			NumReadonlyUnsignedAccounts: 1,
		},
		AccountKeys:     []solana.PublicKey{signer, systemProgram},
		RecentBlockhash: solana.Hash{},
		Instructions: []solana.CompiledInstruction{
			{ProgramIDIndex: 1, Accounts: []uint16{0}, Data: solana.Base58{1, 2, 3}},
		},
	}
}

func TestDecodeCompleteTransaction(t *testing.T) {
	wallet := solana.NewWallet()
	tx := &solana.Transaction{
		Signatures: make([]solana.Signature, 1),
		Message:    testMessage(wallet.PublicKey()),
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	decoded, variant, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if variant != VariantTransaction {
		t.Fatalf("expected transaction variant, got %s", variant)
	}
	if len(decoded.Signatures) != 1 {
		t.Fatalf("expected 1 signature slot, got %d", len(decoded.Signatures))
	}
	if !decoded.Message.AccountKeys[0].Equals(wallet.PublicKey()) {
		t.Fatalf("account keys not preserved")
	}
}

func TestDecodeBareMessage(t *testing.T) {
	wallet := solana.NewWallet()
	msg := testMessage(wallet.PublicKey())
	raw, err := msg.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	decoded, variant, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if variant != VariantMessage {
		t.Fatalf("expected message variant, got %s", variant)
	}
	if len(decoded.Signatures) != 1 {
		t.Fatalf("expected synthesized signature slot, got %d", len(decoded.Signatures))
	}
	if !decoded.Signatures[0].IsZero() {
		t.Fatalf("synthesized signature should be a placeholder")
	}
}

func TestDecodeFramedMessage(t *testing.T) {
	wallet := solana.NewWallet()
	msg := testMessage(wallet.PublicKey())
	raw, err := msg.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	framed := append([]byte{0x00}, raw...)

	decoded, variant, err := Decode(framed)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if variant != VariantFramedMessage {
		t.Fatalf("expected framed-message variant, got %s", variant)
	}
	if len(decoded.Signatures) != 1 {
		t.Fatalf("expected synthesized signature slot, got %d", len(decoded.Signatures))
	}
}

func TestRoundTripSignedTransaction(t *testing.T) {
	wallet := solana.NewWallet()
	tx := &solana.Transaction{
		Signatures: make([]solana.Signature, 1),
		Message:    testMessage(wallet.PublicKey()),
	}
	if _, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(wallet.PublicKey()) {
			return &wallet.PrivateKey
		}
		return nil
	}); err != nil {
		t.Fatalf("sign fixture: %v", err)
	}

	encoded, err := EncodeBase64(tx)
	if err != nil {
		t.Fatalf("EncodeBase64 returned error: %v", err)
	}
	decoded, variant, err := DecodeBase64(encoded)
	if err != nil {
		t.Fatalf("DecodeBase64 returned error: %v", err)
	}
	if variant != VariantTransaction {
		t.Fatalf("expected transaction variant, got %s", variant)
	}

	// Idempotent: a second encode of the decoded structure is byte-identical.
	again, err := EncodeBase64(decoded)
	if err != nil {
		t.Fatalf("re-encode returned error: %v", err)
	}
	if encoded != again {
		t.Fatalf("round-trip not lossless")
	}

	want, _ := tx.MarshalBinary()
	got, _ := decoded.MarshalBinary()
	if !bytes.Equal(want, got) {
		t.Fatalf("decoded transaction differs from original")
	}
}

func TestDecodeGarbageFailsAllVariants(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0xfd, 0xfc}
	_, _, err := Decode(raw)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Len != len(raw) {
		t.Fatalf("expected payload length %d in error, got %d", len(raw), decodeErr.Len)
	}
	if len(decodeErr.Attempts) != 3 {
		t.Fatalf("expected one diagnostic per strategy, got %+v", decodeErr.Attempts)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	_, _, err := Decode(nil)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Len != 0 {
		t.Fatalf("expected zero length, got %d", decodeErr.Len)
	}
}

func TestDecodeBase64Invalid(t *testing.T) {
	_, _, err := DecodeBase64("not base64!!!")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	// Len counts decoded bytes, and the diagnostic says what was measured.
	if decodeErr.Len >= len("not base64!!!") {
		t.Fatalf("expected decoded byte count, got %d", decodeErr.Len)
	}
	if len(decodeErr.Attempts) != 1 || !strings.Contains(decodeErr.Attempts[0], "chars") {
		t.Fatalf("expected unit-qualified base64 diagnostic, got %+v", decodeErr.Attempts)
	}
}
