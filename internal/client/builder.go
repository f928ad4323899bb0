package client

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// TxBuilder accumulates instructions and signers as explicit fields and
// produces a fully signed transaction. Signers are always attached through
// AddSigner, never through side channels on the transaction.
type TxBuilder struct {
	payer        solana.PublicKey
	instructions []solana.Instruction
	signers      map[solana.PublicKey]solana.PrivateKey
}

// NewTxBuilder creates a builder whose transaction is paid for by payer. The
// payer's key must still be attached with AddSigner before Build.
func NewTxBuilder(payer solana.PublicKey) *TxBuilder {
	return &TxBuilder{
		payer:   payer,
		signers: make(map[solana.PublicKey]solana.PrivateKey),
	}
}

// Add appends an instruction.
func (b *TxBuilder) Add(instruction solana.Instruction) *TxBuilder {
	b.instructions = append(b.instructions, instruction)
	return b
}

// AddSigner attaches a signing key. Attaching the same key twice is a no-op.
func (b *TxBuilder) AddSigner(key solana.PrivateKey) *TxBuilder {
	b.signers[key.PublicKey()] = key
	return b
}

// Build assembles and signs the transaction against the given blockhash. It
// fails if any required signer was not attached.
func (b *TxBuilder) Build(blockhash solana.Hash) (*solana.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, fmt.Errorf("no instructions to build")
	}

	tx, err := solana.NewTransaction(
		b.instructions,
		blockhash,
		solana.TransactionPayer(b.payer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if signer, ok := b.signers[key]; ok {
			return &signer
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return tx, nil
}
