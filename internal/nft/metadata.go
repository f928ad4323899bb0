package nft

import "fmt"

// Metadata is the off-chain NFT metadata document, in the JSON shape
// marketplaces and wallets expect.
type Metadata struct {
	Name                 string      `json:"name"`
	Symbol               string      `json:"symbol"`
	Description          string      `json:"description,omitempty"`
	Image                string      `json:"image,omitempty"`
	AnimationURL         string      `json:"animation_url,omitempty"`
	ExternalURL          string      `json:"external_url,omitempty"`
	SellerFeeBasisPoints int         `json:"seller_fee_basis_points"`
	Attributes           []Attribute `json:"attributes,omitempty"`
	Properties           *Properties `json:"properties,omitempty"`
}

// Attribute is a single display trait.
type Attribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// Properties groups the content files and creator royalty split.
type Properties struct {
	Files    []File    `json:"files,omitempty"`
	Category string    `json:"category,omitempty"`
	Creators []Creator `json:"creators,omitempty"`
}

// File points at one piece of stored content.
type File struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

// Creator assigns a royalty share to an address. Shares sum to 100.
type Creator struct {
	Address string `json:"address"`
	Share   int    `json:"share"`
}

// Validate checks the document before it is uploaded.
func (m *Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("metadata name is required")
	}
	if m.Symbol == "" {
		return fmt.Errorf("metadata symbol is required")
	}
	if m.SellerFeeBasisPoints < 0 || m.SellerFeeBasisPoints > 10000 {
		return fmt.Errorf("seller fee %d out of range (0-10000 basis points)", m.SellerFeeBasisPoints)
	}

	if m.Properties != nil && len(m.Properties.Creators) > 0 {
		total := 0
		for _, creator := range m.Properties.Creators {
			if creator.Address == "" {
				return fmt.Errorf("creator address is required")
			}
			if creator.Share < 0 || creator.Share > 100 {
				return fmt.Errorf("creator share %d out of range", creator.Share)
			}
			total += creator.Share
		}
		if total != 100 {
			return fmt.Errorf("creator shares sum to %d, want 100", total)
		}
	}

	return nil
}
