package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

const sampleList = `{
	"name": "Test Token List",
	"tokens": [
		{
			"chainId": 101,
			"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			"symbol": "USDC",
			"name": "USD Coin",
			"decimals": 6,
			"logoURI": "https://example.com/usdc.png"
		},
		{
			"chainId": 101,
			"address": "So11111111111111111111111111111111111111112",
			"symbol": "SOL",
			"name": "Wrapped SOL",
			"decimals": 9
		},
		{
			"chainId": 103,
			"address": "DevnetMint1111111111111111111111111111111111",
			"symbol": "USDC",
			"name": "Devnet USDC",
			"decimals": 6
		}
	]
}`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestRegistry(t *testing.T, handler http.HandlerFunc) *Registry {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRegistry(Config{ListURL: server.URL}, testLogger())
}

func TestLookupMint(t *testing.T) {
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleList))
	})

	info, err := reg.LookupMint(context.Background(), "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	if err != nil {
		t.Fatalf("LookupMint: %v", err)
	}
	if info.Symbol != "USDC" {
		t.Errorf("symbol = %q, want USDC", info.Symbol)
	}
	if info.Decimals != 6 {
		t.Errorf("decimals = %d, want 6", info.Decimals)
	}
}

func TestLookupMintUnknown(t *testing.T) {
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleList))
	})

	if _, err := reg.LookupMint(context.Background(), "UnknownMint111111111111111111111111111111111"); err == nil {
		t.Fatal("expected error for unknown mint")
	}
}

func TestLookupSymbolCaseInsensitive(t *testing.T) {
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleList))
	})

	matches, err := reg.LookupSymbol(context.Background(), "usdc")
	if err != nil {
		t.Fatalf("LookupSymbol: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Name != "USD Coin" {
		t.Errorf("name = %q, want USD Coin", matches[0].Name)
	}
}

func TestNonMainnetTokensFiltered(t *testing.T) {
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleList))
	})

	if err := reg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reg.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2 (devnet entry filtered)", got)
	}
}

func TestLoadFetchesOnce(t *testing.T) {
	calls := 0
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(sampleList))
	})

	ctx := context.Background()
	if _, err := reg.LookupSymbol(ctx, "SOL"); err != nil {
		t.Fatalf("LookupSymbol: %v", err)
	}
	if _, err := reg.LookupMint(ctx, "So11111111111111111111111111111111111111112"); err != nil {
		t.Fatalf("LookupMint: %v", err)
	}
	if calls != 1 {
		t.Errorf("list fetched %d times, want 1", calls)
	}
}

func TestLoadHTTPError(t *testing.T) {
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if err := reg.Load(context.Background()); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
}
