package model

import "strings"

type Provider string

const (
	ProviderTwilio Provider = "twilio"
	ProviderMeta   Provider = "meta"
)

func (p Provider) String() string { return string(p) }

// ParseProvider normalizes input; empty => twilio.
// Returns (value, true) if valid; otherwise (twilio, false).
func ParseProvider(s string) (Provider, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "twilio":
		return ProviderTwilio, true
	case "meta":
		return ProviderMeta, true
	default:
		return ProviderTwilio, false
	}
}

func (p Provider) Valid() bool {
	return p == ProviderTwilio || p == ProviderMeta
}

// Dispatch is a successful send. Failures travel as errors.
type Dispatch struct {
	MessageID string   `json:"message_id"`
	Provider  Provider `json:"provider"`
}
