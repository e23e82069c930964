package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	funnelPath       = "/advansells-funnel"
	resetSessionPath = "/reset-session"
)

// HTTPAdapter forwards funnel requests to the conversational backend over
// HTTP POST with JSON bodies.
type HTTPAdapter struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAdapter(baseURL string, timeout time.Duration) *HTTPAdapter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPAdapter{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (a *HTTPAdapter) Send(ctx context.Context, req FunnelRequest) (FunnelResponse, error) {
	body, err := a.post(ctx, funnelPath, req)
	if err != nil {
		return FunnelResponse{}, err
	}

	var resp FunnelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return FunnelResponse{}, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp, nil
}

func (a *HTTPAdapter) ResetSession(ctx context.Context, email string) (string, error) {
	body, err := a.post(ctx, resetSessionPath, map[string]string{"email": email})
	if err != nil {
		return "", err
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decode reset response: %w", err)}
	}
	return resp.Message, nil
}

func (a *HTTPAdapter) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &BackendError{
			StatusCode: res.StatusCode,
			Message:    serverMessage(body),
		}
	}
	return body, nil
}

// serverMessage extracts the backend's {message} from an error body, if any.
func serverMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Message)
}
