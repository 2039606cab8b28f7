package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

const twilioBaseURL = "https://api.twilio.com"

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string // whatsapp:+14155238886
	To         string // whatsapp:+5511999999999
	BaseURL    string
	Timeout    time.Duration
}

// TwilioProvider posts to the Twilio Messages API.
type TwilioProvider struct {
	cfg    TwilioConfig
	client HTTPDoer
}

// NewTwilioProvider builds the provider; a nil client gets an *http.Client with cfg.Timeout.
func NewTwilioProvider(cfg TwilioConfig, client HTTPDoer) *TwilioProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = twilioBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if client == nil {
		client = newHTTPClient(cfg.Timeout)
	}

	return &TwilioProvider{cfg: cfg, client: client}
}

func (p *TwilioProvider) Name() model.Provider { return model.ProviderTwilio }

func (p *TwilioProvider) missing() []string {
	var m []string
	if p.cfg.AccountSID == "" {
		m = append(m, "account_sid")
	}
	if p.cfg.AuthToken == "" {
		m = append(m, "auth_token")
	}
	if p.cfg.From == "" {
		m = append(m, "from")
	}
	if p.cfg.To == "" {
		m = append(m, "to")
	}
	return m
}

type twilioMessage struct {
	SID string `json:"sid"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (p *TwilioProvider) Send(ctx context.Context, text string) (string, error) {
	if m := p.missing(); len(m) > 0 {
		return "", &ConfigError{Provider: p.Name(), Missing: m}
	}

	form := url.Values{}
	form.Set("Body", text)
	form.Set("From", p.cfg.From)
	form.Set("To", p.cfg.To)

	endpoint := p.cfg.BaseURL + "/2010-04-01/Accounts/" + url.PathEscape(p.cfg.AccountSID) + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &ExternalError{Provider: p.Name(), Err: err}
	}
	req.SetBasicAuth(p.cfg.AccountSID, p.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var msg twilioMessage
	if err := do(p.client, req, p.Name(), &msg, twilioErrorDetail); err != nil {
		return "", err
	}
	if msg.SID == "" {
		return "", &ExternalError{Provider: p.Name(), Err: errors.New("response without sid")}
	}

	return msg.SID, nil
}

func twilioErrorDetail(body []byte) string {
	var e twilioError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}
