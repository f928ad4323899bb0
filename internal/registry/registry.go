package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenInfo is one entry of the community token list.
type TokenInfo struct {
	ChainID  int      `json:"chainId"`
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals uint8    `json:"decimals"`
	LogoURI  string   `json:"logoURI,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// tokenList is the published token list document
type tokenList struct {
	Name   string      `json:"name"`
	Tokens []TokenInfo `json:"tokens"`
}

// mainnet-beta in token list chain numbering
const mainnetChainID = 101

// Registry resolves mints to token metadata from the published token
// list. The list is fetched once and cached for the client lifetime.
type Registry struct {
	listURL string
	client  *http.Client
	logger  *logrus.Logger

	mu       sync.RWMutex
	byMint   map[string]TokenInfo
	bySymbol map[string][]TokenInfo
	loaded   bool
}

// Config holds registry client settings.
type Config struct {
	ListURL string
	Timeout time.Duration
}

// NewRegistry creates a token registry client
func NewRegistry(config Config, logger *logrus.Logger) *Registry {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Registry{
		listURL: config.ListURL,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Load fetches and indexes the token list. Safe to call more than once,
// later calls refresh the cache.
func (r *Registry) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.listURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch token list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch token list: status %d", resp.StatusCode)
	}

	var list tokenList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return fmt.Errorf("failed to decode token list: %w", err)
	}

	byMint := make(map[string]TokenInfo, len(list.Tokens))
	bySymbol := make(map[string][]TokenInfo)
	for _, token := range list.Tokens {
		if token.ChainID != mainnetChainID {
			continue
		}
		byMint[token.Address] = token
		key := strings.ToUpper(token.Symbol)
		bySymbol[key] = append(bySymbol[key], token)
	}

	r.mu.Lock()
	r.byMint = byMint
	r.bySymbol = bySymbol
	r.loaded = true
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"list":   list.Name,
		"tokens": len(byMint),
	}).Info("📋 Token list loaded")

	return nil
}

// ensureLoaded lazily fetches the list on first lookup
func (r *Registry) ensureLoaded(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()

	if loaded {
		return nil
	}
	return r.Load(ctx)
}

// LookupMint returns the token list entry for a mint address.
func (r *Registry) LookupMint(ctx context.Context, mint string) (*TokenInfo, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	info, ok := r.byMint[mint]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("mint %s not found in token list", mint)
	}
	return &info, nil
}

// LookupSymbol returns all entries matching a symbol, case-insensitively.
// Symbols are not unique on the list, so callers get every match.
func (r *Registry) LookupSymbol(ctx context.Context, symbol string) ([]TokenInfo, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matches := r.bySymbol[strings.ToUpper(symbol)]
	r.mu.RUnlock()

	if len(matches) == 0 {
		return nil, fmt.Errorf("symbol %s not found in token list", symbol)
	}

	out := make([]TokenInfo, len(matches))
	copy(out, matches)
	return out, nil
}

// Size reports how many mainnet tokens are indexed.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byMint)
}
