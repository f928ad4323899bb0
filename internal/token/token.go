package token

import (
	"context"
	"fmt"

	"solana-toolkit-go/internal/client"
	"solana-toolkit-go/internal/logger"
	"solana-toolkit-go/internal/wallet"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// mintAccountSize is the serialized size of an SPL mint account.
const mintAccountSize = 82

// Service wraps SPL token operations: every method assembles one or two
// instructions, submits them and waits for confirmation.
type Service struct {
	client *client.Client
	logger *logger.Logger
}

// NewService creates a token service
func NewService(rpcClient *client.Client, log *logger.Logger) *Service {
	return &Service{
		client: rpcClient,
		logger: log,
	}
}

// MintResult describes a newly created token mint.
type MintResult struct {
	Mint      solana.PublicKey
	Signature solana.Signature
	Decimals  uint8
}

// CreateMint creates a new token mint with the payer as mint authority. A
// nil freezeAuthority leaves the payer as freeze authority too.
func (s *Service) CreateMint(ctx context.Context, payer wallet.HasKeypair, decimals uint8, freezeAuthority *solana.PublicKey) (*MintResult, error) {
	mintAccount := solana.NewWallet()

	rent, err := s.client.GetMinimumBalanceForRentExemption(ctx, mintAccountSize)
	if err != nil {
		return nil, err
	}

	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	freeze := payer.PublicKey()
	if freezeAuthority != nil {
		freeze = *freezeAuthority
	}

	createIx := system.NewCreateAccountInstruction(
		rent,
		mintAccountSize,
		solana.TokenProgramID,
		payer.PublicKey(),
		mintAccount.PublicKey(),
	).Build()

	initIx := token.NewInitializeMintInstruction(
		decimals,
		payer.PublicKey(),
		freeze,
		mintAccount.PublicKey(),
		solana.SysVarRentPubkey,
	).Build()

	tx, err := client.NewTxBuilder(payer.PublicKey()).
		Add(createIx).
		Add(initIx).
		AddSigner(payer.PrivateKey()).
		AddSigner(mintAccount.PrivateKey).
		Build(blockhash)
	if err != nil {
		return nil, err
	}

	sig, err := s.client.SendAndConfirmTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to create mint: %w", err)
	}

	s.logger.LogMintCreated(mintAccount.PublicKey().String(), payer.PublicKey().String(), sig.String(), decimals)

	return &MintResult{
		Mint:      mintAccount.PublicKey(),
		Signature: sig,
		Decimals:  decimals,
	}, nil
}

// MintTo mints amount raw units to the recipient's associated token
// account, creating the account when it does not exist yet. The signing
// identity must be the mint authority.
func (s *Service) MintTo(ctx context.Context, authority wallet.HasKeypair, mint, recipient solana.PublicKey, amount uint64) (solana.Signature, error) {
	builder := client.NewTxBuilder(authority.PublicKey()).
		AddSigner(authority.PrivateKey())

	ata, err := s.ensureAssociatedAccount(ctx, builder, authority, mint, recipient)
	if err != nil {
		return solana.Signature{}, err
	}

	builder.Add(token.NewMintToInstruction(
		amount,
		mint,
		ata,
		authority.PublicKey(),
		nil,
	).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to mint tokens: %w", err)
	}

	s.logger.LogTokenOperation("mint", mint.String(), sig.String(), amount)
	return sig, nil
}

// Transfer moves amount raw units of mint from the owner to the recipient's
// associated token account, creating the destination account when missing.
func (s *Service) Transfer(ctx context.Context, owner wallet.HasKeypair, mint, recipient solana.PublicKey, amount uint64) (solana.Signature, error) {
	source, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to find source token account: %w", err)
	}

	// TransferChecked validates the mint's decimals on chain; read them from
	// the funded source account.
	balance, err := s.client.GetTokenAccountBalance(ctx, source)
	if err != nil {
		return solana.Signature{}, err
	}

	builder := client.NewTxBuilder(owner.PublicKey()).
		AddSigner(owner.PrivateKey())

	destination, err := s.ensureAssociatedAccount(ctx, builder, owner, mint, recipient)
	if err != nil {
		return solana.Signature{}, err
	}

	builder.Add(token.NewTransferCheckedInstruction(
		amount,
		balance.Decimals,
		source,
		mint,
		destination,
		owner.PublicKey(),
		nil,
	).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to transfer tokens: %w", err)
	}

	s.logger.LogTokenOperation("transfer", mint.String(), sig.String(), amount)
	return sig, nil
}

// Burn destroys amount raw units held in the owner's associated token
// account.
func (s *Service) Burn(ctx context.Context, owner wallet.HasKeypair, mint solana.PublicKey, amount uint64) (solana.Signature, error) {
	source, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to find token account: %w", err)
	}

	builder := client.NewTxBuilder(owner.PublicKey()).
		AddSigner(owner.PrivateKey()).
		Add(token.NewBurnInstruction(
			amount,
			source,
			mint,
			owner.PublicKey(),
			nil,
		).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to burn tokens: %w", err)
	}

	s.logger.LogTokenOperation("burn", mint.String(), sig.String(), amount)
	return sig, nil
}

// Approve delegates spending of amount raw units from the owner's
// associated token account.
func (s *Service) Approve(ctx context.Context, owner wallet.HasKeypair, mint, delegate solana.PublicKey, amount uint64) (solana.Signature, error) {
	source, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to find token account: %w", err)
	}

	builder := client.NewTxBuilder(owner.PublicKey()).
		AddSigner(owner.PrivateKey()).
		Add(token.NewApproveInstruction(
			amount,
			source,
			delegate,
			owner.PublicKey(),
			nil,
		).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to approve delegate: %w", err)
	}

	s.logger.LogTokenOperation("approve", mint.String(), sig.String(), amount)
	return sig, nil
}

// Revoke removes any spending delegation on the owner's associated token
// account.
func (s *Service) Revoke(ctx context.Context, owner wallet.HasKeypair, mint solana.PublicKey) (solana.Signature, error) {
	source, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to find token account: %w", err)
	}

	builder := client.NewTxBuilder(owner.PublicKey()).
		AddSigner(owner.PrivateKey()).
		Add(token.NewRevokeInstruction(
			source,
			owner.PublicKey(),
			nil,
		).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to revoke delegate: %w", err)
	}

	s.logger.LogTokenOperation("revoke", mint.String(), sig.String(), 0)
	return sig, nil
}

// CloseAccount closes the owner's associated token account for mint and
// returns its rent lamports to the owner. The account must hold a zero
// balance.
func (s *Service) CloseAccount(ctx context.Context, owner wallet.HasKeypair, mint solana.PublicKey) (solana.Signature, error) {
	account, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to find token account: %w", err)
	}

	builder := client.NewTxBuilder(owner.PublicKey()).
		AddSigner(owner.PrivateKey()).
		Add(token.NewCloseAccountInstruction(
			account,
			owner.PublicKey(),
			owner.PublicKey(),
			nil,
		).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to close token account: %w", err)
	}

	s.logger.LogTokenOperation("close", mint.String(), sig.String(), 0)
	return sig, nil
}

// CreateAssociatedAccount explicitly creates the owner's associated token
// account for a mint.
func (s *Service) CreateAssociatedAccount(ctx context.Context, payer wallet.HasKeypair, mint solana.PublicKey) (solana.PublicKey, solana.Signature, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(payer.PublicKey(), mint)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, fmt.Errorf("failed to find token account: %w", err)
	}

	builder := client.NewTxBuilder(payer.PublicKey()).
		AddSigner(payer.PrivateKey()).
		Add(associatedtokenaccount.NewCreateInstruction(
			payer.PublicKey(),
			payer.PublicKey(),
			mint,
		).Build())

	sig, err := s.submit(ctx, builder)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, fmt.Errorf("failed to create token account: %w", err)
	}

	return ata, sig, nil
}

// Balance returns the raw and UI balance of the owner's associated token
// account for mint.
func (s *Service) Balance(ctx context.Context, owner wallet.HasPublicKey, mint solana.PublicKey) (*rpc.UiTokenAmount, error) {
	account, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint)
	if err != nil {
		return nil, fmt.Errorf("failed to find token account: %w", err)
	}
	return s.client.GetTokenAccountBalance(ctx, account)
}

// AccountsByOwner lists every token account the owner holds.
func (s *Service) AccountsByOwner(ctx context.Context, owner wallet.HasPublicKey) (*rpc.GetTokenAccountsResult, error) {
	return s.client.GetTokenAccountsByOwner(ctx, owner.PublicKey(), nil)
}

// ensureAssociatedAccount resolves the recipient's associated token account
// and prepends a create instruction when the account does not exist yet.
func (s *Service) ensureAssociatedAccount(ctx context.Context, builder *client.TxBuilder, payer wallet.HasKeypair, mint, owner solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find associated token account: %w", err)
	}

	exists, err := s.client.AccountExists(ctx, ata)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !exists {
		builder.Add(associatedtokenaccount.NewCreateInstruction(
			payer.PublicKey(),
			owner,
			mint,
		).Build())
	}

	return ata, nil
}

// submit builds against a fresh blockhash and sends with confirmation.
func (s *Service) submit(ctx context.Context, builder *client.TxBuilder) (solana.Signature, error) {
	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := builder.Build(blockhash)
	if err != nil {
		return solana.Signature{}, err
	}

	return s.client.SendAndConfirmTransaction(ctx, tx)
}
