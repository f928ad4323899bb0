package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	confirm "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/sirupsen/logrus"
)

// Client represents a Solana RPC client wrapper
type Client struct {
	client     *rpc.Client
	wsClient   *ws.Client
	sigWatcher *WSClient
	commitment rpc.CommitmentType
	logger     *logrus.Logger
}

// ClientConfig contains configuration for Solana client. It is passed
// explicitly at construction; there is no default cluster.
type ClientConfig struct {
	RPCEndpoint string
	WSEndpoint  string
	APIKey      string
	Commitment  string
	Timeout     time.Duration
}

// NewClient creates a new Solana RPC client
func NewClient(ctx context.Context, config ClientConfig, logger *logrus.Logger) (*Client, error) {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	var rpcClient *rpc.Client
	if config.APIKey != "" {
		rpcClient = rpc.NewWithHeaders(config.RPCEndpoint, map[string]string{
			"Authorization": "Bearer " + config.APIKey,
		})
	} else {
		rpcClient = rpc.New(config.RPCEndpoint)
	}

	wsClient, err := ws.Connect(ctx, config.WSEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.WSEndpoint, err)
	}

	commitment := rpc.CommitmentFinalized
	if config.Commitment != "" {
		commitment = rpc.CommitmentType(config.Commitment)
	}

	sigWatcher := NewWSClient(config.WSEndpoint, logger)
	if err := sigWatcher.Connect(); err != nil {
		wsClient.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"rpc_endpoint": config.RPCEndpoint,
		"ws_endpoint":  config.WSEndpoint,
		"commitment":   commitment,
	}).Debug("Solana client created")

	return &Client{
		client:     rpcClient,
		wsClient:   wsClient,
		sigWatcher: sigWatcher,
		commitment: commitment,
		logger:     logger,
	}, nil
}

// Close tears down the WebSocket connections.
func (c *Client) Close() {
	if c.wsClient != nil {
		c.wsClient.Close()
	}
	if c.sigWatcher != nil {
		c.sigWatcher.Close()
	}
}

// WaitForSignature blocks until the node reports the given signature at the
// client's commitment level. Useful for signatures the client did not submit
// itself, such as airdrops.
func (c *Client) WaitForSignature(ctx context.Context, sig solana.Signature) error {
	result, err := c.sigWatcher.WaitForSignature(ctx, sig.String(), string(c.commitment))
	if err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("transaction %s failed: %v", sig, result.Err)
	}
	return nil
}

// Commitment returns the commitment level the client operates at.
func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

// GetBalance gets the lamport balance of an account
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	result, err := c.client.GetBalance(ctx, pubkey, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("getBalance failed: %w", err)
	}
	return result.Value, nil
}

// GetAccountInfo gets account information
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := c.client.GetAccountInfo(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("getAccountInfo failed: %w", err)
	}
	return result, nil
}

// AccountExists reports whether an account has been created on chain.
func (c *Client) AccountExists(ctx context.Context, pubkey solana.PublicKey) (bool, error) {
	result, err := c.client.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		if err == rpc.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("getAccountInfo failed: %w", err)
	}
	return result != nil && result.Value != nil, nil
}

// GetTokenAccountBalance gets a token account's balance in raw units
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (*rpc.UiTokenAmount, error) {
	result, err := c.client.GetTokenAccountBalance(ctx, account, c.commitment)
	if err != nil {
		return nil, fmt.Errorf("getTokenAccountBalance failed: %w", err)
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("token account %s not found", account)
	}
	return result.Value, nil
}

// GetTokenAccountsByOwner lists token accounts held by an owner, optionally
// narrowed to one mint.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, mint *solana.PublicKey) (*rpc.GetTokenAccountsResult, error) {
	conf := &rpc.GetTokenAccountsConfig{}
	if mint != nil {
		conf.Mint = mint
	} else {
		programID := solana.TokenProgramID
		conf.ProgramId = &programID
	}

	result, err := c.client.GetTokenAccountsByOwner(ctx, owner, conf, &rpc.GetTokenAccountsOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("getTokenAccountsByOwner failed: %w", err)
	}
	return result, nil
}

// GetLatestBlockhash fetches a recent blockhash for transaction assembly
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.client.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("getLatestBlockhash failed: %w", err)
	}
	return result.Value.Blockhash, nil
}

// GetMinimumBalanceForRentExemption returns the lamports a new account of
// the given size needs to be rent exempt.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	lamports, err := c.client.GetMinimumBalanceForRentExemption(ctx, dataSize, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("getMinimumBalanceForRentExemption failed: %w", err)
	}
	return lamports, nil
}

// RequestAirdrop requests lamports from the faucet (devnet/testnet only)
func (c *Client) RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.client.RequestAirdrop(ctx, pubkey, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("requestAirdrop failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"pubkey":    pubkey.String(),
		"lamports":  lamports,
		"signature": sig.String(),
	}).Debug("Airdrop requested")

	return sig, nil
}

// GetTransaction gets transaction information
func (c *Client) GetTransaction(ctx context.Context, signature string) (*rpc.GetTransactionResult, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}

	maxVersion := uint64(0)
	result, err := c.client.GetTransaction(
		ctx,
		sig,
		&rpc.GetTransactionOpts{
			Encoding:                       solana.EncodingJSON,
			MaxSupportedTransactionVersion: &maxVersion,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("getTransaction failed: %w", err)
	}
	return result, nil
}

// SendTransaction submits a signed transaction without waiting for
// confirmation.
func (c *Client) SendTransaction(ctx context.Context, transaction *solana.Transaction) (solana.Signature, error) {
	sig, err := c.client.SendTransactionWithOpts(ctx, transaction, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	c.logger.WithField("signature", sig.String()).Debug("Transaction sent")
	return sig, nil
}

// SendAndConfirmTransaction submits a signed transaction and waits for it to
// land at the client's commitment level.
func (c *Client) SendAndConfirmTransaction(ctx context.Context, transaction *solana.Transaction) (solana.Signature, error) {
	sig, err := confirm.SendAndConfirmTransaction(
		ctx,
		c.client,
		c.wsClient,
		transaction,
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	c.logger.WithField("signature", sig.String()).Debug("Transaction confirmed")
	return sig, nil
}
