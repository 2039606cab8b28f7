package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks HTTPDoer,Provider

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider sends one text message and returns the provider-assigned message ID.
type Provider interface {
	Name() model.Provider
	Send(ctx context.Context, text string) (string, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// do sends req and decodes a 2xx body into out. Anything else becomes an *ExternalError,
// with detail extracted from the body by errDetail when possible.
func do(client HTTPDoer, req *http.Request, provider model.Provider, out any, errDetail func([]byte) string) error {
	res, err := client.Do(req)
	if err != nil {
		return &ExternalError{Provider: provider, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return &ExternalError{Provider: provider, Status: res.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if res.StatusCode/100 != 2 {
		detail := errDetail(body)
		if detail == "" {
			detail = http.StatusText(res.StatusCode)
		}
		return &ExternalError{
			Provider: provider,
			Status:   res.StatusCode,
			Detail:   detail,
			Err:      fmt.Errorf("provider=%s status=%d", provider, res.StatusCode),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ExternalError{Provider: provider, Status: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
