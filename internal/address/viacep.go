package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/util"
)

const defaultBaseURL = "https://viacep.com.br"

var (
	ErrInvalidCEP = errors.New("invalid cep")
	ErrNotFound   = errors.New("cep not found")
)

// Address is what the form auto-fills from a CEP.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"` // true, or "true" on some deployments
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// Client looks up CEPs on ViaCEP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup resolves a CEP in any formatting.
func (c *Client) Lookup(ctx context.Context, cep string) (Address, error) {
	cep = util.StripNonDigits(cep)
	if len(cep) != 8 {
		return Address{}, ErrInvalidCEP
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ws/"+cep+"/json/", nil)
	if err != nil {
		return Address{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("viacep request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return Address{}, fmt.Errorf("viacep status=%d", res.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("viacep decode: %w", err)
	}
	if body.notFound() {
		return Address{}, ErrNotFound
	}

	return Address{
		CEP:          cep,
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
