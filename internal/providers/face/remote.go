package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/ferpy/internal/core"
)

// RemoteEncoder calls an HTTP sidecar that turns an image into one face
// encoding per detected face.
//
//	POST {baseURL}/encode {"image": "<base64>", "mime_type": "image/jpeg"}
//	-> {"encodings": [[...], ...]}
type RemoteEncoder struct {
	client  *http.Client
	baseURL string
}

func NewRemoteEncoder(baseURL string, timeout time.Duration) *RemoteEncoder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteEncoder{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *RemoteEncoder) Encode(ctx context.Context, image *core.Image) ([][]float64, error) {
	if image.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	payload := map[string]string{
		"image":     base64.StdEncoding.EncodeToString(image.Data),
		"mime_type": image.MIMEType,
	}

	resp, err := r.doRequest(ctx, http.MethodPost, "/encode", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Encodings [][]float64 `json:"encodings"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return result.Encodings, nil
}

func (r *RemoteEncoder) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}
