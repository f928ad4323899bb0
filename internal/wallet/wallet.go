package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/pkg/hdwallet"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

const (
	// SeedSize is the raw seed length the ed25519 keypair expansion expects.
	SeedSize = 32

	// PrivateKeySize is the full private key length (secret scalar followed
	// by the public key).
	PrivateKeySize = 64

	// entropyBits is the entropy used for generated mnemonics. 256 bits
	// encodes as a 24-word phrase.
	entropyBits = 256
)

var (
	// ErrInvalidMnemonic is returned when a mnemonic phrase fails checksum
	// validation against the standard wordlist. Restoring from an invalid
	// phrase is always a hard failure; no keypair is ever produced from an
	// unvalidated seed.
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

	// ErrInvalidSeedLength is returned when a raw seed is not exactly
	// SeedSize bytes.
	ErrInvalidSeedLength = fmt.Errorf("seed must be exactly %d bytes", SeedSize)

	// ErrInvalidPrivateKeyLength is returned when a raw private key is not
	// exactly PrivateKeySize bytes.
	ErrInvalidPrivateKeyLength = fmt.Errorf("private key must be exactly %d bytes", PrivateKeySize)
)

// HasPublicKey is implemented by anything that can stand in for an on-chain
// address: a full wallet, or a watch-only identity.
type HasPublicKey interface {
	PublicKey() solana.PublicKey
}

// HasKeypair is implemented by identities that can sign. Operations that
// submit transactions accept this interface and resolve it once at the
// boundary.
type HasKeypair interface {
	HasPublicKey
	PrivateKey() solana.PrivateKey
}

// Wallet is a signing identity derived from a mnemonic phrase, a raw seed,
// or a raw private key. It is immutable once constructed; recovery means
// constructing a new instance from the same secret material.
type Wallet struct {
	mnemonic string
	path     DerivationPath
	seed     []byte
	subSeed  []byte
	account  types.Account
}

// New generates a fresh wallet: 256 bits of entropy encoded as a 24-word
// mnemonic, stretched into a seed with the optional passphrase, then derived
// along path (DefaultPath when empty). Restoring from the returned mnemonic
// with the same passphrase and path reproduces the identical keypair.
func New(passphrase string, path DerivationPath) (*Wallet, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mnemonic: %w", err)
	}

	return FromMnemonic(mnemonic, passphrase, path)
}

// FromMnemonic restores a wallet from a mnemonic phrase. The phrase is
// normalized (trimmed, lowercased, internal whitespace collapsed) and must
// pass checksum validation; otherwise ErrInvalidMnemonic is returned and no
// key material is produced.
func FromMnemonic(mnemonic, passphrase string, path DerivationPath) (*Wallet, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	if path == "" {
		path = DefaultPath()
	}
	canonical, err := path.Canonical()
	if err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(mnemonic, passphrase)

	derived, err := hdwallet.Derived(canonical, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key at %s: %w", canonical, err)
	}

	account, err := types.AccountFromSeed(derived.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to expand keypair: %w", err)
	}

	return &Wallet{
		mnemonic: mnemonic,
		path:     path,
		seed:     seed,
		subSeed:  derived.PrivateKey,
		account:  account,
	}, nil
}

// FromSeed restores a wallet directly from a 32-byte seed, skipping mnemonic
// and path derivation entirely.
func FromSeed(seed []byte) (*Wallet, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSeedLength, len(seed))
	}

	account, err := types.AccountFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to expand keypair: %w", err)
	}

	return &Wallet{
		seed:    append([]byte(nil), seed...),
		account: account,
	}, nil
}

// FromPrivateKey reconstructs a wallet from a full 64-byte private key
// (secret scalar followed by the public key). No derivation is performed;
// only the keypair is populated.
func FromPrivateKey(key []byte) (*Wallet, error) {
	if len(key) != PrivateKeySize {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPrivateKeyLength, len(key))
	}

	account, err := types.AccountFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Wallet{account: account}, nil
}

// FromBase58 reconstructs a wallet from a base58-encoded private key, the
// format wallets export.
func FromBase58(key string) (*Wallet, error) {
	account, err := types.AccountFromBase58(key)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Wallet{account: account}, nil
}

// NormalizeMnemonic trims the phrase, lowercases it and collapses internal
// whitespace runs to single spaces. Normalization is idempotent.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// Mnemonic returns the normalized mnemonic phrase, or "" for wallets
// restored from a raw seed or private key.
func (w *Wallet) Mnemonic() string {
	return w.mnemonic
}

// Path returns the derivation path used, or "" when no derivation was
// performed.
func (w *Wallet) Path() DerivationPath {
	return w.path
}

// Seed returns a copy of the raw derived seed material, or nil for
// private-key-restored wallets.
func (w *Wallet) Seed() []byte {
	if w.seed == nil {
		return nil
	}
	return append([]byte(nil), w.seed...)
}

// PublicKey returns the wallet's public key.
func (w *Wallet) PublicKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(w.account.PublicKey.Bytes())
}

// PublicKeyString returns the wallet's public key as a base58 string.
func (w *Wallet) PublicKeyString() string {
	return w.account.PublicKey.ToBase58()
}

// PrivateKey returns the full private key for signing.
func (w *Wallet) PrivateKey() solana.PrivateKey {
	return solana.PrivateKey(w.account.PrivateKey)
}

// PrivateKeyBase58 returns the full private key in its base58 export
// encoding.
func (w *Wallet) PrivateKeyBase58() string {
	return base58.Encode(w.account.PrivateKey)
}

// Account returns the underlying SDK account for APIs that take one.
func (w *Wallet) Account() types.Account {
	return w.account
}
