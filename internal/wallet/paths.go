package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// DerivationPath is a BIP-44 style hierarchical derivation path string,
// e.g. "m/44'/501'/0'/0'".
type DerivationPath string

// Recognized derivation paths for Solana accounts. The legacy path was used
// by early wallets before BIP-44 adoption; bip44Change is what most wallets
// derive by default today.
const (
	// PathLegacy is the original non-standard path used by early wallets.
	PathLegacy DerivationPath = "m/501'/0'/0/0"

	// PathBIP44 is the BIP-44 account-level path.
	PathBIP44 DerivationPath = "m/44'/501'/0'"

	// PathBIP44Change is the BIP-44 path including the "change" level.
	PathBIP44Change DerivationPath = "m/44'/501'/0'/0'"
)

// hardenedOffset marks a child index as hardened per SLIP-0010.
const hardenedOffset = uint32(0x80000000)

// DefaultPath returns the derivation path used when the caller does not
// supply one.
func DefaultPath() DerivationPath {
	return PathBIP44Change
}

// NamedPaths returns the table of recognized named derivation paths. The
// table is fixed; callers wanting anything else supply a raw path string.
func NamedPaths() map[string]DerivationPath {
	return map[string]DerivationPath{
		"legacy":      PathLegacy,
		"bip44":       PathBIP44,
		"bip44Change": PathBIP44Change,
	}
}

// PathByName resolves a named derivation path from the fixed table.
func PathByName(name string) (DerivationPath, bool) {
	p, ok := NamedPaths()[name]
	return p, ok
}

// Components parses the path into raw child indices. Hardened levels
// (marked with ' or h) carry the hardened offset.
func (p DerivationPath) Components() ([]uint32, error) {
	s := strings.TrimSpace(string(p))
	if s == "m" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "m/") {
		return nil, fmt.Errorf("derivation path must start with \"m/\": %q", p)
	}

	segments := strings.Split(s[2:], "/")
	components := make([]uint32, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("empty segment in derivation path %q", p)
		}

		hardened := false
		if strings.HasSuffix(seg, "'") || strings.HasSuffix(seg, "h") || strings.HasSuffix(seg, "H") {
			hardened = true
			seg = seg[:len(seg)-1]
		}

		index, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid segment %q in derivation path %q: %w", seg, p, err)
		}
		if uint32(index) >= hardenedOffset {
			return nil, fmt.Errorf("child index %d out of range in derivation path %q", index, p)
		}

		component := uint32(index)
		if hardened {
			component |= hardenedOffset
		}
		components = append(components, component)
	}

	return components, nil
}

// Canonical returns the path with every level hardened, in the form the
// ed25519 child-key derivation accepts. SLIP-0010 defines only hardened
// children for the ed25519 curve, so non-hardened levels (as in the legacy
// path) are derived as their hardened counterparts.
func (p DerivationPath) Canonical() (string, error) {
	components, err := p.Components()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("m")
	for _, c := range components {
		b.WriteString("/")
		b.WriteString(strconv.FormatUint(uint64(c&^hardenedOffset), 10))
		b.WriteString("'")
	}
	return b.String(), nil
}

func (p DerivationPath) String() string {
	return string(p)
}
