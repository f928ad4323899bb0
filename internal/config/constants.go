package config

// Solana network constants
const (
	SolanaMainnetRPC = "https://api.mainnet-beta.solana.com"
	SolanaDevnetRPC  = "https://api.devnet.solana.com"
	SolanaTestnetRPC = "https://api.testnet.solana.com"

	// WebSocket endpoints
	SolanaMainnetWS = "wss://api.mainnet-beta.solana.com"
	SolanaDevnetWS  = "wss://api.devnet.solana.com"
	SolanaTestnetWS = "wss://api.testnet.solana.com"

	// Solana constants
	LamportsPerSol = 1_000_000_000

	// Transaction constants
	ConfirmTimeoutSec = 30
	RequestTimeoutSec = 30
)

// Program addresses used across the toolkit.
const (
	SystemProgramID          = "11111111111111111111111111111111"
	TokenProgramID           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	AssociatedTokenProgramID = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	StakeProgramID           = "Stake11111111111111111111111111111111111111"

	// Sysvars the stake program reads
	SysvarRentID         = "SysvarRent111111111111111111111111111111111"
	SysvarClockID        = "SysvarC1ock11111111111111111111111111111111"
	SysvarStakeHistoryID = "SysvarStakeHistory1111111111111111111111111"
	StakeConfigID        = "StakeConfig11111111111111111111111111111111"

	// Native SOL mint (wrapped SOL)
	NativeSOLMint = "So11111111111111111111111111111111111111112"
)

// Storage network defaults (IPFS-compatible HTTP API)
const (
	DefaultStorageAPI     = "https://ipfs.infura.io:5001"
	DefaultStorageGateway = "https://ipfs.io/ipfs/"
)

// Token registry defaults
const (
	DefaultTokenListURL = "https://cdn.jsdelivr.net/gh/solana-labs/token-list@main/src/tokens/solana.tokenlist.json"
)

// GetRPCEndpoint returns RPC endpoint based on network
func GetRPCEndpoint(network string) string {
	switch network {
	case "mainnet":
		return SolanaMainnetRPC
	case "devnet":
		return SolanaDevnetRPC
	case "testnet":
		return SolanaTestnetRPC
	default:
		return SolanaMainnetRPC
	}
}

// GetWSEndpoint returns WebSocket endpoint based on network
func GetWSEndpoint(network string) string {
	switch network {
	case "mainnet":
		return SolanaMainnetWS
	case "devnet":
		return SolanaDevnetWS
	case "testnet":
		return SolanaTestnetWS
	default:
		return SolanaMainnetWS
	}
}
