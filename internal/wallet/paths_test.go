package wallet

import (
	"reflect"
	"testing"
)

func TestPathComponents(t *testing.T) {
	tests := []struct {
		name    string
		path    DerivationPath
		want    []uint32
		wantErr bool
	}{
		{"bip44 change", PathBIP44Change, []uint32{
			44 | hardenedOffset, 501 | hardenedOffset, 0 | hardenedOffset, 0 | hardenedOffset,
		}, false},
		{"legacy mixed hardening", PathLegacy, []uint32{
			501 | hardenedOffset, 0 | hardenedOffset, 0, 0,
		}, false},
		{"h suffix", DerivationPath("m/44h/501h"), []uint32{
			44 | hardenedOffset, 501 | hardenedOffset,
		}, false},
		{"master only", DerivationPath("m"), nil, false},
		{"missing prefix", DerivationPath("44'/501'"), nil, true},
		{"empty segment", DerivationPath("m/44'//0'"), nil, true},
		{"non-numeric segment", DerivationPath("m/44'/abc"), nil, true},
		{"index out of range", DerivationPath("m/2147483648"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.path.Components()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Components() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Components() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathCanonicalHardensEveryLevel(t *testing.T) {
	tests := []struct {
		path DerivationPath
		want string
	}{
		{PathLegacy, "m/501'/0'/0'/0'"},
		{PathBIP44, "m/44'/501'/0'"},
		{PathBIP44Change, "m/44'/501'/0'/0'"},
	}

	for _, tt := range tests {
		got, err := tt.path.Canonical()
		if err != nil {
			t.Fatalf("Canonical(%s) error: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Canonical(%s) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestNamedPathTable(t *testing.T) {
	paths := NamedPaths()
	if len(paths) != 3 {
		t.Fatalf("NamedPaths() has %d entries, want 3", len(paths))
	}

	if p, ok := PathByName("bip44Change"); !ok || p != PathBIP44Change {
		t.Errorf("PathByName(bip44Change) = %s, %v", p, ok)
	}
	if _, ok := PathByName("unknown"); ok {
		t.Errorf("PathByName(unknown) unexpectedly resolved")
	}
	if DefaultPath() != PathBIP44Change {
		t.Errorf("DefaultPath() = %s, want %s", DefaultPath(), PathBIP44Change)
	}
}
