package nft

import "testing"

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    Metadata
		wantErr bool
	}{
		{
			name: "minimal valid",
			meta: Metadata{Name: "Test NFT", Symbol: "TEST"},
		},
		{
			name: "full document",
			meta: Metadata{
				Name:                 "Test NFT",
				Symbol:               "TEST",
				Description:          "an NFT",
				Image:                "https://ipfs.io/ipfs/QmTest",
				SellerFeeBasisPoints: 500,
				Attributes:           []Attribute{{TraitType: "color", Value: "blue"}},
				Properties: &Properties{
					Category: "image",
					Creators: []Creator{
						{Address: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", Share: 60},
						{Address: "7dHbWXmci3dT8UFYWYZweBLXgycu7VSrSLtfnXM5YzbB", Share: 40},
					},
				},
			},
		},
		{
			name:    "missing name",
			meta:    Metadata{Symbol: "TEST"},
			wantErr: true,
		},
		{
			name:    "missing symbol",
			meta:    Metadata{Name: "Test NFT"},
			wantErr: true,
		},
		{
			name:    "fee over 100 percent",
			meta:    Metadata{Name: "Test NFT", Symbol: "TEST", SellerFeeBasisPoints: 10001},
			wantErr: true,
		},
		{
			name: "shares do not sum to 100",
			meta: Metadata{
				Name:   "Test NFT",
				Symbol: "TEST",
				Properties: &Properties{
					Creators: []Creator{
						{Address: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", Share: 50},
						{Address: "7dHbWXmci3dT8UFYWYZweBLXgycu7VSrSLtfnXM5YzbB", Share: 30},
					},
				},
			},
			wantErr: true,
		},
		{
			name: "creator without address",
			meta: Metadata{
				Name:   "Test NFT",
				Symbol: "TEST",
				Properties: &Properties{
					Creators: []Creator{{Share: 100}},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"art.png", "image/png"},
		{"photo.JPG", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"clip.mp4", "video/mp4"},
		{"blob.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := contentType(tt.path); got != tt.want {
			t.Errorf("contentType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
