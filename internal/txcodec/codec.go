// Package txcodec turns the gateway's opaque base64 payload into a
// transaction ready for signing, and a signed transaction back into the
// base64 form the gateway expects on submission.
//
// The gateway has produced several payload shapes over time: a complete
// serialized transaction, a bare serialized message, and a message with one
// leading framing byte. Decoding tries a fixed, ordered list of strategies
// and stops at the first that fully consumes the payload and passes the
// structural checks.
package txcodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// Variant names the wire shape a payload decoded as. The encoder uses it to
// report which shape the gateway produced; submissions always carry the full
// signed transaction.
type Variant string

const (
	VariantTransaction   Variant = "transaction"
	VariantMessage       Variant = "message"
	VariantFramedMessage Variant = "framed-message"
)

// DecodeError reports that every decode strategy was exhausted. It carries
// the payload length and one diagnostic line per attempted strategy.
type DecodeError struct {
	Len      int
	Attempts []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("transaction decode failed (%d bytes): %s", e.Len, strings.Join(e.Attempts, "; "))
}

type strategy struct {
	variant Variant
	decode  func(raw []byte) (*solana.Transaction, error)
}

// Priority order is fixed: a complete transaction wins over a bare message,
// which wins over a framed message.
var strategies = []strategy{
	{VariantTransaction, decodeTransaction},
	{VariantMessage, decodeMessage},
	{VariantFramedMessage, decodeFramedMessage},
}

// Decode parses raw into a transaction via the strategy table. The returned
// transaction always carries a signature slot per required signer, so every
// variant converges on the same signing and submission path.
func Decode(raw []byte) (*solana.Transaction, Variant, error) {
	if len(raw) == 0 {
		return nil, "", &DecodeError{Len: 0, Attempts: []string{"empty payload"}}
	}
	attempts := make([]string, 0, len(strategies))
	for _, s := range strategies {
		tx, err := s.decode(raw)
		if err == nil {
			return tx, s.variant, nil
		}
		attempts = append(attempts, fmt.Sprintf("%s: %v", s.variant, err))
	}
	return nil, "", &DecodeError{Len: len(raw), Attempts: attempts}
}

// DecodeBase64 base64-decodes the gateway payload and then decodes it. On a
// base64 failure Len counts the bytes decoded before the malformed input.
func DecodeBase64(payload string) (*solana.Transaction, Variant, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", &DecodeError{
			Len:      len(raw),
			Attempts: []string{fmt.Sprintf("base64 payload of %d chars: %v", len(payload), err)},
		}
	}
	return Decode(raw)
}

// EncodeBase64 serializes the signed transaction and base64-encodes it for
// submission. The encoding is lossless: decoding the result yields an
// equivalent transaction.
func EncodeBase64(tx *solana.Transaction) (string, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("marshal transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeTransaction(raw []byte) (*solana.Transaction, error) {
	dec := bin.NewBinDecoder(raw)
	tx, err := solana.TransactionFromDecoder(dec)
	if err != nil {
		return nil, err
	}
	if dec.Remaining() > 0 {
		return nil, fmt.Errorf("%d trailing bytes", dec.Remaining())
	}
	if err := checkMessage(&tx.Message); err != nil {
		return nil, err
	}
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf("signature count %d does not match required %d",
			len(tx.Signatures), tx.Message.Header.NumRequiredSignatures)
	}
	return tx, nil
}

func decodeMessage(raw []byte) (*solana.Transaction, error) {
	dec := bin.NewBinDecoder(raw)
	var msg solana.Message
	if err := msg.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	if dec.Remaining() > 0 {
		return nil, fmt.Errorf("%d trailing bytes", dec.Remaining())
	}
	if err := checkMessage(&msg); err != nil {
		return nil, err
	}
	// Placeholder signatures sized to the message's declared signer count.
	return &solana.Transaction{
		Message:    msg,
		Signatures: make([]solana.Signature, msg.Header.NumRequiredSignatures),
	}, nil
}

func decodeFramedMessage(raw []byte) (*solana.Transaction, error) {
	if len(raw) < 2 {
		return nil, errors.New("too short for framed message")
	}
	return decodeMessage(raw[1:])
}

// checkMessage rejects structurally hollow parses the permissive binary
// decoder would otherwise accept for garbage input.
func checkMessage(msg *solana.Message) error {
	if len(msg.AccountKeys) == 0 {
		return errors.New("message has no account keys")
	}
	if int(msg.Header.NumRequiredSignatures) > len(msg.AccountKeys) {
		return fmt.Errorf("required signatures %d exceed %d account keys",
			msg.Header.NumRequiredSignatures, len(msg.AccountKeys))
	}
	return nil
}
