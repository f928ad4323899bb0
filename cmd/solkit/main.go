package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"

	"solana-toolkit-go/internal/client"
	"solana-toolkit-go/internal/config"
	"solana-toolkit-go/internal/logger"
	"solana-toolkit-go/internal/nft"
	"solana-toolkit-go/internal/registry"
	"solana-toolkit-go/internal/stake"
	"solana-toolkit-go/internal/storage"
	"solana-toolkit-go/internal/token"
	"solana-toolkit-go/internal/transfer"
	"solana-toolkit-go/internal/wallet"
)

const Version = "1.0.0"

// Global CLI flags, shared by every command
var (
	configFile = flag.String("config", "", "Path to config file")
	envFile    = flag.String("env", "", "Path to .env file")
	network    = flag.String("network", "", "Network to use (mainnet/devnet/testnet)")
	logLevel   = flag.String("log-level", "", "Log level (debug/info/warn/error)")
)

const usageText = `Usage: solkit [flags] <command> [command flags]

Wallet:
  generate         Generate a new mnemonic wallet
  restore          Restore a wallet from a mnemonic
  address          Show the configured wallet address
  balance          Show SOL balance
  airdrop          Request a devnet/testnet airdrop

Transfers:
  transfer         Send SOL to an address

Tokens:
  token-create     Create a new token mint
  token-mint       Mint tokens to an address
  token-transfer   Transfer tokens to an address
  token-burn       Burn tokens
  token-approve    Approve a delegate for tokens
  token-revoke     Revoke the token delegate
  token-close      Close an empty token account
  token-accounts   List token accounts owned by the wallet

Staking:
  stake-create     Create and fund a stake account
  stake-delegate   Delegate a stake account to a validator
  stake-deactivate Deactivate a stake delegation
  stake-withdraw   Withdraw from a deactivated stake account

Storage and registry:
  upload           Upload a file to decentralized storage
  nft-mint         Mint an NFT with uploaded metadata
  lookup           Look up a token on the community token list
`

// App bundles the shared services a command needs.
type App struct {
	config   *config.Config
	logger   *logger.Logger
	journal  *logger.Journal
	client   *client.Client
	transfer *transfer.Service
	token    *token.Service
	stake    *stake.Service
	storage  *storage.Client
	nft      *nft.Service
	registry *registry.Registry
	wallet   *wallet.Wallet
	ctx      context.Context
	cancel   context.CancelFunc
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		fmt.Fprintln(os.Stderr, "\nGlobal flags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	cfg := loadConfigurationWithOverrides()
	log := initializeLogger(cfg)

	// generate and restore are offline, no RPC needed
	switch command {
	case "generate":
		exitOn(cmdGenerate(cfg, log, args))
		return
	case "restore":
		exitOn(cmdRestore(cfg, log, args))
		return
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize")
	}
	defer app.Close()

	go app.handleSignals()

	if err := app.Run(command, args); err != nil {
		app.journalFailure(command, err)
		log.WithError(err).Fatal("Command failed")
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfigurationWithOverrides() *config.Config {
	configPath := ""
	if *configFile != "" {
		configPath = *configFile
	}

	cfg, err := config.LoadConfig(configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *network != "" {
		cfg.Network = *network
		cfg.RPCUrl = config.GetRPCEndpoint(cfg.Network)
		cfg.WSUrl = config.GetWSEndpoint(cfg.Network)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	return cfg
}

func initializeLogger(cfg *config.Config) *logger.Logger {
	logConfig := logger.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		LogToFile:   cfg.Logging.LogToFile,
		LogFilePath: cfg.Logging.LogFilePath,
		JournalDir:  cfg.Logging.JournalDir,
	}

	log, err := logger.NewLogger(logConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return log
}

// NewApp connects the RPC and websocket clients and wires up the services.
func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	journal, err := logger.NewJournal(cfg.Logging.JournalDir, log)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	rpcClient, err := client.NewClient(ctx, client.ClientConfig{
		RPCEndpoint: cfg.RPCUrl,
		WSEndpoint:  cfg.WSUrl,
		APIKey:      cfg.RPCAPIKey,
		Commitment:  cfg.Advanced.Commitment,
		Timeout:     time.Duration(cfg.Advanced.RequestTimeoutSec) * time.Second,
	}, log.Logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	storageClient := storage.NewClient(storage.ClientConfig{
		Endpoint:   cfg.Storage.APIEndpoint,
		GatewayURL: cfg.Storage.GatewayURL,
		APIKey:     cfg.Storage.APIKey,
		Timeout:    time.Duration(cfg.Storage.TimeoutSec) * time.Second,
	}, log.Logger)

	tokenService := token.NewService(rpcClient, log)

	app := &App{
		config:   cfg,
		logger:   log,
		journal:  journal,
		client:   rpcClient,
		transfer: transfer.NewService(rpcClient, log),
		token:    tokenService,
		stake:    stake.NewService(rpcClient, log),
		storage:  storageClient,
		nft:      nft.NewService(tokenService, storageClient, log),
		registry: registry.NewRegistry(registry.Config{
			ListURL: cfg.Registry.TokenListURL,
			Timeout: time.Duration(cfg.Registry.TimeoutSec) * time.Second,
		}, log.Logger),
		ctx:    ctx,
		cancel: cancel,
	}

	log.LogStartup(Version, cfg.Network, cfg.RPCUrl)
	return app, nil
}

func (a *App) Close() {
	a.cancel()
	a.client.Close()
}

func (a *App) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	a.logger.LogShutdown(sig.String())
	a.cancel()
}

// requireWallet loads the signing wallet from configuration.
func (a *App) requireWallet() (*wallet.Wallet, error) {
	if a.wallet != nil {
		return a.wallet, nil
	}
	if a.config.Wallet.PrivateKey == "" {
		return nil, fmt.Errorf("no wallet configured: set wallet.private_key or SOLKIT_WALLET_PRIVATE_KEY")
	}

	w, err := wallet.FromBase58(a.config.Wallet.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	a.wallet = w
	a.logger.LogWalletReady(w.PublicKeyString(), "", "config")
	return w, nil
}

func (a *App) journalFailure(operation string, opErr error) {
	signer := ""
	if a.wallet != nil {
		signer = a.wallet.PublicKeyString()
	}
	_ = a.journal.RecordFailure(operation, signer, opErr)
}

// Run dispatches a command.
func (a *App) Run(command string, args []string) error {
	switch command {
	case "address":
		return a.cmdAddress(args)
	case "balance":
		return a.cmdBalance(args)
	case "airdrop":
		return a.cmdAirdrop(args)
	case "transfer":
		return a.cmdTransfer(args)
	case "token-create":
		return a.cmdTokenCreate(args)
	case "token-mint":
		return a.cmdTokenMint(args)
	case "token-transfer":
		return a.cmdTokenTransfer(args)
	case "token-burn":
		return a.cmdTokenBurn(args)
	case "token-approve":
		return a.cmdTokenApprove(args)
	case "token-revoke":
		return a.cmdTokenRevoke(args)
	case "token-close":
		return a.cmdTokenClose(args)
	case "token-accounts":
		return a.cmdTokenAccounts(args)
	case "stake-create":
		return a.cmdStakeCreate(args)
	case "stake-delegate":
		return a.cmdStakeDelegate(args)
	case "stake-deactivate":
		return a.cmdStakeDeactivate(args)
	case "stake-withdraw":
		return a.cmdStakeWithdraw(args)
	case "upload":
		return a.cmdUpload(args)
	case "nft-mint":
		return a.cmdNFTMint(args)
	case "lookup":
		return a.cmdLookup(args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// resolvePath maps a named or raw derivation path to a DerivationPath. The
// -path flag wins over the configured wallet.derivation_path; when both are
// empty the default path applies.
func resolvePath(name, configured string) (wallet.DerivationPath, error) {
	if name == "" {
		name = configured
	}
	if name == "" {
		return wallet.DefaultPath(), nil
	}
	if p, ok := wallet.PathByName(name); ok {
		return p, nil
	}
	p := wallet.DerivationPath(name)
	if _, err := p.Components(); err != nil {
		return "", fmt.Errorf("invalid derivation path %q: %w", name, err)
	}
	return p, nil
}

func printWallet(w *wallet.Wallet, showMnemonic bool) {
	if showMnemonic && w.Mnemonic() != "" {
		fmt.Printf("Mnemonic:    %s\n", w.Mnemonic())
		fmt.Printf("Path:        %s\n", w.Path())
	}
	fmt.Printf("Address:     %s\n", w.PublicKeyString())
	fmt.Printf("Private key: %s\n", w.PrivateKeyBase58())
}

func cmdGenerate(cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	passphrase := fs.String("passphrase", "", "Optional mnemonic passphrase")
	pathName := fs.String("path", "", "Derivation path (legacy/bip44/bip44Change or raw path)")
	fs.Parse(args)

	path, err := resolvePath(*pathName, cfg.Wallet.DerivationPath)
	if err != nil {
		return err
	}

	w, err := wallet.New(*passphrase, path)
	if err != nil {
		return err
	}

	log.LogWalletReady(w.PublicKeyString(), string(w.Path()), "generated")
	printWallet(w, true)
	fmt.Println("\n⚠️  Store the mnemonic safely. Anyone with it controls the funds.")
	return nil
}

func cmdRestore(cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "Mnemonic phrase (required)")
	passphrase := fs.String("passphrase", "", "Optional mnemonic passphrase")
	pathName := fs.String("path", "", "Derivation path (legacy/bip44/bip44Change or raw path)")
	fs.Parse(args)

	if *mnemonic == "" {
		return fmt.Errorf("-mnemonic is required")
	}

	path, err := resolvePath(*pathName, cfg.Wallet.DerivationPath)
	if err != nil {
		return err
	}

	w, err := wallet.FromMnemonic(*mnemonic, *passphrase, path)
	if err != nil {
		return err
	}

	log.LogWalletReady(w.PublicKeyString(), string(w.Path()), "restored")
	printWallet(w, false)
	return nil
}

func (a *App) cmdAddress(args []string) error {
	w, err := a.requireWallet()
	if err != nil {
		return err
	}
	fmt.Println(w.PublicKeyString())
	return nil
}

func (a *App) cmdBalance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	address := fs.String("address", "", "Address to query (defaults to the configured wallet)")
	fs.Parse(args)

	var pubkey solana.PublicKey
	if *address != "" {
		parsed, err := solana.PublicKeyFromBase58(*address)
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}
		pubkey = parsed
	} else {
		w, err := a.requireWallet()
		if err != nil {
			return err
		}
		pubkey = w.PublicKey()
	}

	lamports, err := a.client.GetBalance(a.ctx, pubkey)
	if err != nil {
		return err
	}

	fmt.Printf("%s SOL (%d lamports)\n", transfer.LamportsToSOL(lamports), lamports)
	return nil
}

func (a *App) cmdAirdrop(args []string) error {
	fs := flag.NewFlagSet("airdrop", flag.ExitOnError)
	amount := fs.String("sol", "1", "Amount of SOL to request")
	fs.Parse(args)

	if a.config.Network == "mainnet" {
		return fmt.Errorf("airdrops are not available on mainnet")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	lamports, err := transfer.SOLToLamports(*amount)
	if err != nil {
		return err
	}

	sig, err := a.client.RequestAirdrop(a.ctx, w.PublicKey(), lamports)
	if err != nil {
		return err
	}

	fmt.Printf("Airdrop requested: %s\n", sig)

	waitCtx, cancel := context.WithTimeout(a.ctx, time.Duration(a.config.Advanced.ConfirmTimeoutSec)*time.Second)
	defer cancel()
	if err := a.client.WaitForSignature(waitCtx, sig); err != nil {
		return fmt.Errorf("airdrop not confirmed: %w", err)
	}

	fmt.Println("Airdrop confirmed")
	return nil
}

func (a *App) cmdTransfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	to := fs.String("to", "", "Recipient address (required)")
	amount := fs.String("sol", "", "Amount of SOL to send (required)")
	fs.Parse(args)

	if *to == "" || *amount == "" {
		return fmt.Errorf("-to and -sol are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	recipient, err := solana.PublicKeyFromBase58(*to)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	lamports, err := transfer.SOLToLamports(*amount)
	if err != nil {
		return err
	}

	sig, err := a.transfer.TransferSOL(a.ctx, w, recipient, lamports)
	if err != nil {
		return err
	}

	_ = a.journal.Record(logger.JournalEntry{
		Operation:   "transfer",
		Signature:   sig.String(),
		Signer:      w.PublicKeyString(),
		Destination: recipient.String(),
		Lamports:    lamports,
		Status:      "success",
	})

	fmt.Printf("Transfer confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenCreate(args []string) error {
	fs := flag.NewFlagSet("token-create", flag.ExitOnError)
	decimals := fs.Uint("decimals", 9, "Token decimals")
	freeze := fs.String("freeze-authority", "", "Optional freeze authority address")
	fs.Parse(args)

	if *decimals > 9 {
		return fmt.Errorf("decimals must be 0-9")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	var freezeAuthority *solana.PublicKey
	if *freeze != "" {
		parsed, err := solana.PublicKeyFromBase58(*freeze)
		if err != nil {
			return fmt.Errorf("invalid freeze authority: %w", err)
		}
		freezeAuthority = &parsed
	}

	result, err := a.token.CreateMint(a.ctx, w, uint8(*decimals), freezeAuthority)
	if err != nil {
		return err
	}

	_ = a.journal.Record(logger.JournalEntry{
		Operation: "token_create",
		Signature: result.Signature.String(),
		Signer:    w.PublicKeyString(),
		Mint:      result.Mint.String(),
		Status:    "success",
	})

	fmt.Printf("Mint:      %s\n", result.Mint)
	fmt.Printf("Signature: %s\n", result.Signature)
	return nil
}

// tokenTarget parses the shared mint/amount flags of token commands
func tokenTarget(fs *flag.FlagSet) (mint *string, amount *uint64) {
	mint = fs.String("mint", "", "Token mint address (required)")
	amount = fs.Uint64("amount", 0, "Amount in base units (required)")
	return mint, amount
}

func (a *App) cmdTokenMint(args []string) error {
	fs := flag.NewFlagSet("token-mint", flag.ExitOnError)
	mintFlag, amountFlag := tokenTarget(fs)
	to := fs.String("to", "", "Recipient address (defaults to the wallet)")
	fs.Parse(args)

	if *mintFlag == "" || *amountFlag == 0 {
		return fmt.Errorf("-mint and -amount are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint: %w", err)
	}

	recipient := w.PublicKey()
	if *to != "" {
		recipient, err = solana.PublicKeyFromBase58(*to)
		if err != nil {
			return fmt.Errorf("invalid recipient: %w", err)
		}
	}

	sig, err := a.token.MintTo(a.ctx, w, mint, recipient, *amountFlag)
	if err != nil {
		return err
	}

	a.journalToken("token_mint", w.PublicKeyString(), mint.String(), sig.String(), *amountFlag)
	fmt.Printf("Mint confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenTransfer(args []string) error {
	fs := flag.NewFlagSet("token-transfer", flag.ExitOnError)
	mintFlag, amountFlag := tokenTarget(fs)
	to := fs.String("to", "", "Recipient address (required)")
	fs.Parse(args)

	if *mintFlag == "" || *amountFlag == 0 || *to == "" {
		return fmt.Errorf("-mint, -to and -amount are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint: %w", err)
	}
	recipient, err := solana.PublicKeyFromBase58(*to)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	sig, err := a.token.Transfer(a.ctx, w, mint, recipient, *amountFlag)
	if err != nil {
		return err
	}

	a.journalToken("token_transfer", w.PublicKeyString(), mint.String(), sig.String(), *amountFlag)
	fmt.Printf("Transfer confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenBurn(args []string) error {
	fs := flag.NewFlagSet("token-burn", flag.ExitOnError)
	mintFlag, amountFlag := tokenTarget(fs)
	fs.Parse(args)

	if *mintFlag == "" || *amountFlag == 0 {
		return fmt.Errorf("-mint and -amount are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint: %w", err)
	}

	sig, err := a.token.Burn(a.ctx, w, mint, *amountFlag)
	if err != nil {
		return err
	}

	a.journalToken("token_burn", w.PublicKeyString(), mint.String(), sig.String(), *amountFlag)
	fmt.Printf("Burn confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenApprove(args []string) error {
	fs := flag.NewFlagSet("token-approve", flag.ExitOnError)
	mintFlag, amountFlag := tokenTarget(fs)
	delegate := fs.String("delegate", "", "Delegate address (required)")
	fs.Parse(args)

	if *mintFlag == "" || *amountFlag == 0 || *delegate == "" {
		return fmt.Errorf("-mint, -delegate and -amount are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint: %w", err)
	}
	delegateKey, err := solana.PublicKeyFromBase58(*delegate)
	if err != nil {
		return fmt.Errorf("invalid delegate: %w", err)
	}

	sig, err := a.token.Approve(a.ctx, w, mint, delegateKey, *amountFlag)
	if err != nil {
		return err
	}

	a.journalToken("token_approve", w.PublicKeyString(), mint.String(), sig.String(), *amountFlag)
	fmt.Printf("Approve confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenRevoke(args []string) error {
	fs := flag.NewFlagSet("token-revoke", flag.ExitOnError)
	mintFlag := fs.String("mint", "", "Token mint address (required)")
	fs.Parse(args)

	if *mintFlag == "" {
		return fmt.Errorf("-mint is required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint: %w", err)
	}

	sig, err := a.token.Revoke(a.ctx, w, mint)
	if err != nil {
		return err
	}

	a.journalToken("token_revoke", w.PublicKeyString(), mint.String(), sig.String(), 0)
	fmt.Printf("Revoke confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenClose(args []string) error {
	fs := flag.NewFlagSet("token-close", flag.ExitOnError)
	mintFlag := fs.String("mint", "", "Token mint address (required)")
	fs.Parse(args)

	if *mintFlag == "" {
		return fmt.Errorf("-mint is required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint: %w", err)
	}

	sig, err := a.token.CloseAccount(a.ctx, w, mint)
	if err != nil {
		return err
	}

	a.journalToken("token_close", w.PublicKeyString(), mint.String(), sig.String(), 0)
	fmt.Printf("Account closed: %s\n", sig)
	return nil
}

func (a *App) cmdTokenAccounts(args []string) error {
	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	result, err := a.token.AccountsByOwner(a.ctx, w)
	if err != nil {
		return err
	}

	if len(result.Value) == 0 {
		fmt.Println("No token accounts")
		return nil
	}

	for _, account := range result.Value {
		fmt.Println(account.Pubkey)
	}
	return nil
}

func (a *App) cmdStakeCreate(args []string) error {
	fs := flag.NewFlagSet("stake-create", flag.ExitOnError)
	amount := fs.String("sol", "", "Amount of SOL to stake (required)")
	fs.Parse(args)

	if *amount == "" {
		return fmt.Errorf("-sol is required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	lamports, err := transfer.SOLToLamports(*amount)
	if err != nil {
		return err
	}

	result, err := a.stake.CreateAccount(a.ctx, w, lamports)
	if err != nil {
		return err
	}

	_ = a.journal.Record(logger.JournalEntry{
		Operation:    "stake_create",
		Signature:    result.Signature.String(),
		Signer:       w.PublicKeyString(),
		StakeAccount: result.StakeAccount.String(),
		Lamports:     result.Lamports,
		Status:       "success",
	})

	fmt.Printf("Stake account: %s\n", result.StakeAccount)
	fmt.Printf("Signature:     %s\n", result.Signature)
	return nil
}

func (a *App) cmdStakeDelegate(args []string) error {
	fs := flag.NewFlagSet("stake-delegate", flag.ExitOnError)
	stakeFlag := fs.String("stake", "", "Stake account address (required)")
	voteFlag := fs.String("vote", "", "Validator vote account (required)")
	fs.Parse(args)

	if *stakeFlag == "" || *voteFlag == "" {
		return fmt.Errorf("-stake and -vote are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	stakeAccount, err := solana.PublicKeyFromBase58(*stakeFlag)
	if err != nil {
		return fmt.Errorf("invalid stake account: %w", err)
	}
	voteAccount, err := solana.PublicKeyFromBase58(*voteFlag)
	if err != nil {
		return fmt.Errorf("invalid vote account: %w", err)
	}

	sig, err := a.stake.Delegate(a.ctx, w, stakeAccount, voteAccount)
	if err != nil {
		return err
	}

	a.journalStake("stake_delegate", w.PublicKeyString(), stakeAccount.String(), sig.String())
	fmt.Printf("Delegation confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdStakeDeactivate(args []string) error {
	fs := flag.NewFlagSet("stake-deactivate", flag.ExitOnError)
	stakeFlag := fs.String("stake", "", "Stake account address (required)")
	fs.Parse(args)

	if *stakeFlag == "" {
		return fmt.Errorf("-stake is required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	stakeAccount, err := solana.PublicKeyFromBase58(*stakeFlag)
	if err != nil {
		return fmt.Errorf("invalid stake account: %w", err)
	}

	sig, err := a.stake.Deactivate(a.ctx, w, stakeAccount)
	if err != nil {
		return err
	}

	a.journalStake("stake_deactivate", w.PublicKeyString(), stakeAccount.String(), sig.String())
	fmt.Printf("Deactivation confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdStakeWithdraw(args []string) error {
	fs := flag.NewFlagSet("stake-withdraw", flag.ExitOnError)
	stakeFlag := fs.String("stake", "", "Stake account address (required)")
	amount := fs.String("sol", "", "Amount of SOL to withdraw (required)")
	to := fs.String("to", "", "Recipient address (defaults to the wallet)")
	fs.Parse(args)

	if *stakeFlag == "" || *amount == "" {
		return fmt.Errorf("-stake and -sol are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	stakeAccount, err := solana.PublicKeyFromBase58(*stakeFlag)
	if err != nil {
		return fmt.Errorf("invalid stake account: %w", err)
	}

	recipient := w.PublicKey()
	if *to != "" {
		recipient, err = solana.PublicKeyFromBase58(*to)
		if err != nil {
			return fmt.Errorf("invalid recipient: %w", err)
		}
	}

	lamports, err := transfer.SOLToLamports(*amount)
	if err != nil {
		return err
	}

	sig, err := a.stake.Withdraw(a.ctx, w, stakeAccount, recipient, lamports)
	if err != nil {
		return err
	}

	a.journalStake("stake_withdraw", w.PublicKeyString(), stakeAccount.String(), sig.String())
	fmt.Printf("Withdrawal confirmed: %s\n", sig)
	return nil
}

func (a *App) cmdUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "Path of the file to upload (required)")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	result, err := a.storage.UploadFile(a.ctx, *file)
	if err != nil {
		return err
	}

	fmt.Printf("CID: %s\n", result.CID)
	fmt.Printf("URI: %s\n", result.URI)
	return nil
}

func (a *App) cmdNFTMint(args []string) error {
	fs := flag.NewFlagSet("nft-mint", flag.ExitOnError)
	name := fs.String("name", "", "NFT name (required)")
	symbol := fs.String("symbol", "", "NFT symbol (required)")
	description := fs.String("description", "", "NFT description")
	image := fs.String("image", "", "Path of the image to upload")
	fs.Parse(args)

	if *name == "" || *symbol == "" {
		return fmt.Errorf("-name and -symbol are required")
	}

	w, err := a.requireWallet()
	if err != nil {
		return err
	}

	meta := nft.Metadata{
		Name:        *name,
		Symbol:      *symbol,
		Description: *description,
	}

	result, err := a.nft.MintNFT(a.ctx, w, meta, *image)
	if err != nil {
		return err
	}

	_ = a.journal.Record(logger.JournalEntry{
		Operation: "nft_mint",
		Signature: result.Signature.String(),
		Signer:    w.PublicKeyString(),
		Mint:      result.Mint.String(),
		Amount:    1,
		Status:    "success",
	})

	fmt.Printf("Mint:     %s\n", result.Mint)
	fmt.Printf("Metadata: %s\n", result.MetadataURI)
	fmt.Printf("Signature: %s\n", result.Signature)
	return nil
}

func (a *App) cmdLookup(args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	mint := fs.String("mint", "", "Mint address to look up")
	symbol := fs.String("symbol", "", "Symbol to look up")
	fs.Parse(args)

	switch {
	case *mint != "":
		info, err := a.registry.LookupMint(a.ctx, *mint)
		if err != nil {
			return err
		}
		printTokenInfo(*info)
	case *symbol != "":
		matches, err := a.registry.LookupSymbol(a.ctx, *symbol)
		if err != nil {
			return err
		}
		for i, info := range matches {
			if i > 0 {
				fmt.Println()
			}
			printTokenInfo(info)
		}
	default:
		return fmt.Errorf("-mint or -symbol is required")
	}
	return nil
}

func printTokenInfo(info registry.TokenInfo) {
	fmt.Printf("Name:     %s\n", info.Name)
	fmt.Printf("Symbol:   %s\n", info.Symbol)
	fmt.Printf("Mint:     %s\n", info.Address)
	fmt.Printf("Decimals: %d\n", info.Decimals)
	if len(info.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(info.Tags, ", "))
	}
}

func (a *App) journalToken(operation, signer, mint, signature string, amount uint64) {
	_ = a.journal.Record(logger.JournalEntry{
		Operation: operation,
		Signature: signature,
		Signer:    signer,
		Mint:      mint,
		Amount:    amount,
		Status:    "success",
	})
}

func (a *App) journalStake(operation, signer, stakeAccount, signature string) {
	_ = a.journal.Record(logger.JournalEntry{
		Operation:    operation,
		Signature:    signature,
		Signer:       signer,
		StakeAccount: stakeAccount,
		Status:       "success",
	})
}
