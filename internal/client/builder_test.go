package client

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

func TestTxBuilderSignsWithAllSigners(t *testing.T) {
	payer := solana.NewWallet()
	recipient := solana.NewWallet()
	blockhash := solana.Hash{1, 2, 3}

	ix := system.NewTransferInstruction(
		1_000_000,
		payer.PublicKey(),
		recipient.PublicKey(),
	).Build()

	tx, err := NewTxBuilder(payer.PublicKey()).
		Add(ix).
		AddSigner(payer.PrivateKey).
		Build(blockhash)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(tx.Signatures) != 1 {
		t.Fatalf("transaction has %d signatures, want 1", len(tx.Signatures))
	}
	if err := tx.VerifySignatures(); err != nil {
		t.Errorf("VerifySignatures() error: %v", err)
	}
}

func TestTxBuilderMissingSignerFails(t *testing.T) {
	payer := solana.NewWallet()
	recipient := solana.NewWallet()

	ix := system.NewTransferInstruction(
		1,
		payer.PublicKey(),
		recipient.PublicKey(),
	).Build()

	_, err := NewTxBuilder(payer.PublicKey()).
		Add(ix).
		Build(solana.Hash{})
	if err == nil {
		t.Fatal("Build() succeeded without the payer's key attached")
	}
}

func TestTxBuilderRequiresInstructions(t *testing.T) {
	payer := solana.NewWallet()
	_, err := NewTxBuilder(payer.PublicKey()).
		AddSigner(payer.PrivateKey).
		Build(solana.Hash{})
	if err == nil {
		t.Fatal("Build() succeeded with no instructions")
	}
}

func TestTxBuilderDeduplicatesSigners(t *testing.T) {
	payer := solana.NewWallet()
	recipient := solana.NewWallet()

	ix := system.NewTransferInstruction(
		1,
		payer.PublicKey(),
		recipient.PublicKey(),
	).Build()

	tx, err := NewTxBuilder(payer.PublicKey()).
		Add(ix).
		AddSigner(payer.PrivateKey).
		AddSigner(payer.PrivateKey).
		Build(solana.Hash{9})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(tx.Signatures) != 1 {
		t.Errorf("transaction has %d signatures, want 1", len(tx.Signatures))
	}
}
