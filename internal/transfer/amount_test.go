package transfer

import "testing"

func TestLamportsToSOL(t *testing.T) {
	tests := []struct {
		lamports uint64
		want     string
	}{
		{0, "0.000000000"},
		{1, "0.000000001"},
		{24981836, "0.024981836"},
		{1_000_000_000, "1.000000000"},
		{1_500_000_000, "1.500000000"},
	}

	for _, tt := range tests {
		if got := LamportsToSOL(tt.lamports); got != tt.want {
			t.Errorf("LamportsToSOL(%d) = %s, want %s", tt.lamports, got, tt.want)
		}
	}
}

func TestSOLToLamports(t *testing.T) {
	tests := []struct {
		sol     string
		want    uint64
		wantErr bool
	}{
		{"0.024981836", 24981836, false},
		{"1", 1_000_000_000, false},
		{"1.5", 1_500_000_000, false},
		{" 2.25 ", 2_250_000_000, false},
		{"0.0000000019", 1, false}, // extra digits truncated
		{"18446744073", 18_446_744_073_000_000_000, false}, // near uint64 max
		{"", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
		{"18446744074", 0, true},             // whole-number overflow
		{"99999999999999999999.0", 0, true}, // fractional-form overflow
	}

	for _, tt := range tests {
		got, err := SOLToLamports(tt.sol)
		if (err != nil) != tt.wantErr {
			t.Errorf("SOLToLamports(%q) error = %v, wantErr %v", tt.sol, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("SOLToLamports(%q) = %d, want %d", tt.sol, got, tt.want)
		}
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, lamports := range []uint64{0, 1, 999, 1_000_000_000, 987_654_321_012} {
		got, err := SOLToLamports(LamportsToSOL(lamports))
		if err != nil {
			t.Fatalf("round trip error for %d: %v", lamports, err)
		}
		if got != lamports {
			t.Errorf("round trip %d -> %d", lamports, got)
		}
	}
}
