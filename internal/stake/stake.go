package stake

import (
	"context"
	"fmt"

	"solana-toolkit-go/internal/client"
	"solana-toolkit-go/internal/logger"
	"solana-toolkit-go/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// Service manages the stake account lifecycle: create, delegate,
// deactivate, withdraw.
type Service struct {
	client *client.Client
	logger *logger.Logger
}

// NewService creates a stake service
func NewService(rpcClient *client.Client, log *logger.Logger) *Service {
	return &Service{
		client: rpcClient,
		logger: log,
	}
}

// AccountResult describes a newly created stake account.
type AccountResult struct {
	StakeAccount solana.PublicKey
	Signature    solana.Signature
	Lamports     uint64
}

// CreateAccount creates and initializes a stake account funded with
// lamports on top of the rent-exempt minimum. The payer becomes both stake
// and withdraw authority.
func (s *Service) CreateAccount(ctx context.Context, payer wallet.HasKeypair, lamports uint64) (*AccountResult, error) {
	if lamports == 0 {
		return nil, fmt.Errorf("stake amount must be greater than 0")
	}

	stakeAccount := solana.NewWallet()

	rent, err := s.client.GetMinimumBalanceForRentExemption(ctx, StakeAccountSize)
	if err != nil {
		return nil, err
	}
	total := rent + lamports

	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	constants := GetStakeConstants()

	createIx := system.NewCreateAccountInstruction(
		total,
		StakeAccountSize,
		constants.ProgramID,
		payer.PublicKey(),
		stakeAccount.PublicKey(),
	).Build()

	initIx := NewInitializeInstruction(
		stakeAccount.PublicKey(),
		Authorized{
			Staker:     payer.PublicKey(),
			Withdrawer: payer.PublicKey(),
		},
		Lockup{},
	)

	tx, err := client.NewTxBuilder(payer.PublicKey()).
		Add(createIx).
		Add(initIx).
		AddSigner(payer.PrivateKey()).
		AddSigner(stakeAccount.PrivateKey).
		Build(blockhash)
	if err != nil {
		return nil, err
	}

	sig, err := s.client.SendAndConfirmTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to create stake account: %w", err)
	}

	s.logger.LogStakeOperation("create", stakeAccount.PublicKey().String(), sig.String())

	return &AccountResult{
		StakeAccount: stakeAccount.PublicKey(),
		Signature:    sig,
		Lamports:     total,
	}, nil
}

// Delegate delegates an initialized stake account to a validator's vote
// account.
func (s *Service) Delegate(ctx context.Context, authority wallet.HasKeypair, stakeAccount, voteAccount solana.PublicKey) (solana.Signature, error) {
	sig, err := s.submitOne(ctx, authority,
		NewDelegateInstruction(stakeAccount, voteAccount, authority.PublicKey()))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to delegate stake: %w", err)
	}

	s.logger.LogStakeOperation("delegate", stakeAccount.String(), sig.String())
	return sig, nil
}

// Deactivate begins undelegating a stake account. The stake cools down over
// the following epochs before it becomes withdrawable.
func (s *Service) Deactivate(ctx context.Context, authority wallet.HasKeypair, stakeAccount solana.PublicKey) (solana.Signature, error) {
	sig, err := s.submitOne(ctx, authority,
		NewDeactivateInstruction(stakeAccount, authority.PublicKey()))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to deactivate stake: %w", err)
	}

	s.logger.LogStakeOperation("deactivate", stakeAccount.String(), sig.String())
	return sig, nil
}

// Withdraw moves lamports out of a deactivated stake account to a
// recipient.
func (s *Service) Withdraw(ctx context.Context, authority wallet.HasKeypair, stakeAccount, recipient solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if lamports == 0 {
		return solana.Signature{}, fmt.Errorf("withdraw amount must be greater than 0")
	}

	sig, err := s.submitOne(ctx, authority,
		NewWithdrawInstruction(stakeAccount, recipient, authority.PublicKey(), lamports))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to withdraw stake: %w", err)
	}

	s.logger.LogStakeOperation("withdraw", stakeAccount.String(), sig.String())
	return sig, nil
}

func (s *Service) submitOne(ctx context.Context, authority wallet.HasKeypair, instruction solana.Instruction) (solana.Signature, error) {
	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := client.NewTxBuilder(authority.PublicKey()).
		Add(instruction).
		AddSigner(authority.PrivateKey()).
		Build(blockhash)
	if err != nil {
		return solana.Signature{}, err
	}

	return s.client.SendAndConfirmTransaction(ctx, tx)
}
