package transfer

import (
	"context"
	"fmt"

	"solana-toolkit-go/internal/client"
	"solana-toolkit-go/internal/logger"
	"solana-toolkit-go/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// Service submits value transfers.
type Service struct {
	client *client.Client
	logger *logger.Logger
}

// NewService creates a transfer service
func NewService(rpcClient *client.Client, log *logger.Logger) *Service {
	return &Service{
		client: rpcClient,
		logger: log,
	}
}

// TransferSOL moves lamports from the signing identity to a recipient and
// waits for confirmation.
func (s *Service) TransferSOL(ctx context.Context, from wallet.HasKeypair, to solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if lamports == 0 {
		return solana.Signature{}, fmt.Errorf("transfer amount must be greater than 0")
	}

	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	ix := system.NewTransferInstruction(
		lamports,
		from.PublicKey(),
		to,
	).Build()

	tx, err := client.NewTxBuilder(from.PublicKey()).
		Add(ix).
		AddSigner(from.PrivateKey()).
		Build(blockhash)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := s.client.SendAndConfirmTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("transfer failed: %w", err)
	}

	s.logger.LogTransferSent(sig.String(), from.PublicKey().String(), to.String(), lamports)
	return sig, nil
}

// Balance returns the lamport balance of any identity or address.
func (s *Service) Balance(ctx context.Context, of wallet.HasPublicKey) (uint64, error) {
	return s.client.GetBalance(ctx, of.PublicKey())
}
