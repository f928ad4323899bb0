package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Client uploads files and metadata to an IPFS-compatible storage node and
// resolves gateway URIs for the returned content identifiers.
type Client struct {
	endpoint   string
	gatewayURL string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// ClientConfig contains configuration for the storage client
type ClientConfig struct {
	Endpoint   string
	GatewayURL string
	APIKey     string
	Timeout    time.Duration
}

// UploadResult describes stored content.
type UploadResult struct {
	CID  string
	URI  string
	Name string
	Size int64
}

// addResponse is the node's response to an add request
type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// NewClient creates a new storage client
func NewClient(config ClientConfig, logger *logrus.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		endpoint:   config.Endpoint,
		gatewayURL: config.GatewayURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// UploadFile uploads a file from disk and returns its content identifier.
func (c *Client) UploadFile(ctx context.Context, path string) (*UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return c.UploadBytes(ctx, filepath.Base(path), data)
}

// UploadBytes uploads raw content under the given name.
func (c *Client) UploadBytes(ctx context.Context, name string, data []byte) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/v0/add", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.WithFields(logrus.Fields{
		"name": name,
		"size": len(data),
	}).Debug("Uploading to storage node")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(responseBody))
	}

	var added addResponse
	if err := json.Unmarshal(responseBody, &added); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload response: %w", err)
	}
	if added.Hash == "" {
		return nil, fmt.Errorf("storage node returned no content identifier")
	}

	size, _ := strconv.ParseInt(added.Size, 10, 64)
	result := &UploadResult{
		CID:  added.Hash,
		URI:  c.GatewayURI(added.Hash),
		Name: added.Name,
		Size: size,
	}

	c.logger.WithFields(logrus.Fields{
		"cid": result.CID,
		"uri": result.URI,
	}).Debug("Upload accepted")

	return result, nil
}

// UploadJSON marshals v and uploads it under the given name. Used for NFT
// metadata documents.
func (c *Client) UploadJSON(ctx context.Context, name string, v interface{}) (*UploadResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return c.UploadBytes(ctx, name, data)
}

// IsPinned reports whether the node still pins the given content.
func (c *Client) IsPinned(ctx context.Context, cid string) (bool, error) {
	endpoint := c.endpoint + "/api/v0/pin/ls?arg=" + url.QueryEscape(cid)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("pin query failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read pin response: %w", err)
	}

	// The node answers 500 with an error body for unpinned content.
	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var pins struct {
		Keys map[string]interface{} `json:"Keys"`
	}
	if err := json.Unmarshal(responseBody, &pins); err != nil {
		return false, fmt.Errorf("failed to unmarshal pin response: %w", err)
	}

	_, ok := pins.Keys[cid]
	return ok, nil
}

// GatewayURI returns the public gateway URI for a content identifier.
func (c *Client) GatewayURI(cid string) string {
	return c.gatewayURL + cid
}
