package config

import "testing"

func TestValidateConfigFillsEndpoints(t *testing.T) {
	cfg := &Config{
		Network: "devnet",
		Advanced: AdvancedConfig{
			Commitment: "finalized",
		},
	}

	if err := validateConfig(cfg); err != nil {
		t.Fatalf("validateConfig() error: %v", err)
	}

	if cfg.RPCUrl != SolanaDevnetRPC {
		t.Errorf("RPCUrl = %s, want %s", cfg.RPCUrl, SolanaDevnetRPC)
	}
	if cfg.WSUrl != SolanaDevnetWS {
		t.Errorf("WSUrl = %s, want %s", cfg.WSUrl, SolanaDevnetWS)
	}
	if cfg.Advanced.ConfirmTimeoutSec != ConfirmTimeoutSec {
		t.Errorf("ConfirmTimeoutSec = %d, want %d", cfg.Advanced.ConfirmTimeoutSec, ConfirmTimeoutSec)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown network", Config{Network: "localnet", Advanced: AdvancedConfig{Commitment: "finalized"}}},
		{"unknown commitment", Config{Network: "devnet", Advanced: AdvancedConfig{Commitment: "instant"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateConfig(&tt.cfg); err == nil {
				t.Errorf("validateConfig() accepted %s", tt.name)
			}
		})
	}
}

func TestEndpointSelection(t *testing.T) {
	if got := GetRPCEndpoint("mainnet"); got != SolanaMainnetRPC {
		t.Errorf("GetRPCEndpoint(mainnet) = %s", got)
	}
	if got := GetWSEndpoint("testnet"); got != SolanaTestnetWS {
		t.Errorf("GetWSEndpoint(testnet) = %s", got)
	}
	// Unknown networks fall back to mainnet.
	if got := GetRPCEndpoint("something"); got != SolanaMainnetRPC {
		t.Errorf("GetRPCEndpoint(something) = %s", got)
	}
}
