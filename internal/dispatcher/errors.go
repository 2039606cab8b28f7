package dispatcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

var (
	ErrNotConfigured   = errors.New("provider not configured")
	ErrUnknownProvider = errors.New("unknown provider")
)

// ConfigError means the selected provider lacks settings; no request was made.
type ConfigError struct {
	Provider model.Provider
	Missing  []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s credentials not configured: missing %s", e.Provider, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Unwrap() error { return ErrNotConfigured }

// ExternalError carries the provider's failure. Status is 0 when no response arrived.
type ExternalError struct {
	Provider model.Provider
	Status   int
	Detail   string
	Err      error
}

func (e *ExternalError) Error() string {
	detail := e.Detail
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("send whatsapp via %s: status=%d: %s", e.Provider, e.Status, detail)
	}
	return fmt.Sprintf("send whatsapp via %s: %s", e.Provider, detail)
}

func (e *ExternalError) Unwrap() error { return e.Err }
