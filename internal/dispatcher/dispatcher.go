package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/metrics"
	"github.com/jmehdipour/lead-gateway/internal/model"
)

type Config struct {
	Provider model.Provider // twilio | meta; empty means twilio
	Twilio   TwilioConfig
	Meta     MetaConfig
}

type Option func(*options)

type options struct {
	client HTTPDoer
}

// WithHTTPClient replaces the per-provider *http.Client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(o *options) { o.client = c }
}

// Dispatcher relays a message through the provider chosen at construction.
// It holds no mutable state and makes exactly one provider call per Send.
type Dispatcher struct {
	provider Provider
}

func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	name := cfg.Provider
	if name == "" {
		name = model.ProviderTwilio
	}

	switch name {
	case model.ProviderTwilio:
		return NewWithProvider(NewTwilioProvider(cfg.Twilio, o.client)), nil
	case model.ProviderMeta:
		return NewWithProvider(NewMetaProvider(cfg.Meta, o.client)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

func NewWithProvider(p Provider) *Dispatcher {
	return &Dispatcher{provider: p}
}

func (d *Dispatcher) Provider() model.Provider { return d.provider.Name() }

// Send returns the provider message ID, or a *ConfigError / *ExternalError.
func (d *Dispatcher) Send(ctx context.Context, text string) (model.Dispatch, error) {
	name := d.provider.Name()

	start := time.Now()
	id, err := d.provider.Send(ctx, text)
	metrics.DispatchDuration.WithLabelValues(name.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DispatchTotal.WithLabelValues(name.String(), "failed").Inc()
		return model.Dispatch{}, err
	}

	metrics.DispatchTotal.WithLabelValues(name.String(), "sent").Inc()

	return model.Dispatch{MessageID: id, Provider: name}, nil
}
