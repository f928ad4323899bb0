package nft

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"

	"solana-toolkit-go/internal/logger"
	"solana-toolkit-go/internal/storage"
	"solana-toolkit-go/internal/token"
	"solana-toolkit-go/internal/wallet"
)

// Service mints NFTs: a 0-decimal mint with supply 1 whose metadata
// document lives in decentralized storage.
type Service struct {
	token   *token.Service
	storage *storage.Client
	logger  *logger.Logger
}

// NewService creates an NFT service
func NewService(tokenService *token.Service, storageClient *storage.Client, log *logger.Logger) *Service {
	return &Service{
		token:   tokenService,
		storage: storageClient,
		logger:  log,
	}
}

// MintResult describes a freshly minted NFT.
type MintResult struct {
	Mint        solana.PublicKey
	MetadataCID string
	MetadataURI string
	ImageCID    string
	Signature   solana.Signature
}

// MintNFT uploads the metadata document, creates a 0-decimal mint and mints
// exactly one token to the owner's associated account. When imagePath is
// non-empty the image is uploaded first and its gateway URI is written into
// the metadata before upload.
func (s *Service) MintNFT(ctx context.Context, owner wallet.HasKeypair, meta Metadata, imagePath string) (*MintResult, error) {
	result := &MintResult{}

	if imagePath != "" {
		upload, err := s.storage.UploadFile(ctx, imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		result.ImageCID = upload.CID
		meta.Image = upload.URI

		if meta.Properties == nil {
			meta.Properties = &Properties{}
		}
		meta.Properties.Files = append(meta.Properties.Files, File{
			URI:  upload.URI,
			Type: contentType(imagePath),
		})
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	metaUpload, err := s.storage.UploadJSON(ctx, "metadata.json", &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to upload metadata: %w", err)
	}
	result.MetadataCID = metaUpload.CID
	result.MetadataURI = metaUpload.URI

	mint, err := s.token.CreateMint(ctx, owner, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mint: %w", err)
	}
	result.Mint = mint.Mint

	sig, err := s.token.MintTo(ctx, owner, mint.Mint, owner.PublicKey(), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}
	result.Signature = sig

	s.logger.LogNFTMinted(meta.Name, mint.Mint.String(), result.MetadataURI, sig.String())
	return result, nil
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
