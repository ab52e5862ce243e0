package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"TootBot/internal/ports"
)

// maxImageSize caps downloads below the upload limit of common instances.
const maxImageSize = 16 << 20

// Downloader fetches images through a temporary file.
type Downloader struct {
	client    *http.Client
	userAgent string
	tempDir   string
}

var _ ports.MediaDownloader = (*Downloader)(nil)

// NewDownloader wires an HTTP client; tempDir "" uses os.TempDir.
func NewDownloader(client *http.Client, userAgent, tempDir string) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{client: client, userAgent: userAgent, tempDir: tempDir}
}

// Download stores the image in a temporary file and returns its bytes.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image %s returned %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(d.tempDir, "tootbot-image-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	if n > maxImageSize {
		return nil, fmt.Errorf("image %s exceeds %d bytes", url, maxImageSize)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return nil, fmt.Errorf("read temp file: %w", err)
	}
	return data, nil
}
