package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

const (
	metaBaseURL    = "https://graph.facebook.com"
	metaAPIVersion = "v18.0"
)

type MetaConfig struct {
	Token      string
	PhoneID    string
	To         string // 5511999999999, no plus sign
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
}

// MetaProvider posts to the WhatsApp Cloud API.
type MetaProvider struct {
	cfg    MetaConfig
	client HTTPDoer
}

func NewMetaProvider(cfg MetaConfig, client HTTPDoer) *MetaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = metaBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.APIVersion == "" {
		cfg.APIVersion = metaAPIVersion
	}

	if client == nil {
		client = newHTTPClient(cfg.Timeout)
	}

	return &MetaProvider{cfg: cfg, client: client}
}

func (p *MetaProvider) Name() model.Provider { return model.ProviderMeta }

func (p *MetaProvider) missing() []string {
	var m []string
	if p.cfg.Token == "" {
		m = append(m, "token")
	}
	if p.cfg.PhoneID == "" {
		m = append(m, "phone_id")
	}
	if p.cfg.To == "" {
		m = append(m, "to")
	}
	return m
}

type metaText struct {
	Body string `json:"body"`
}

type metaRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             metaText `json:"text"`
}

type metaResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type metaError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (p *MetaProvider) Send(ctx context.Context, text string) (string, error) {
	if m := p.missing(); len(m) > 0 {
		return "", &ConfigError{Provider: p.Name(), Missing: m}
	}

	b, _ := json.Marshal(metaRequest{
		MessagingProduct: "whatsapp",
		To:               p.cfg.To,
		Type:             "text",
		Text:             metaText{Body: text},
	})

	endpoint := p.cfg.BaseURL + "/" + p.cfg.APIVersion + "/" + url.PathEscape(p.cfg.PhoneID) + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", &ExternalError{Provider: p.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	var res metaResponse
	if err := do(p.client, req, p.Name(), &res, metaErrorDetail); err != nil {
		return "", err
	}
	if len(res.Messages) == 0 || res.Messages[0].ID == "" {
		return "", &ExternalError{Provider: p.Name(), Err: errors.New("response without message id")}
	}

	return res.Messages[0].ID, nil
}

func metaErrorDetail(body []byte) string {
	var e metaError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}
