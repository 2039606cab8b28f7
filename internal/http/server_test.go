package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/jmehdipour/lead-gateway/internal/address"
	"github.com/jmehdipour/lead-gateway/internal/config"
	"github.com/jmehdipour/lead-gateway/internal/dispatcher"
	"github.com/jmehdipour/lead-gateway/internal/model"
	"github.com/jmehdipour/lead-gateway/internal/service/lead"
	"github.com/jmehdipour/lead-gateway/internal/service/lead/mocks"
	"github.com/jmehdipour/lead-gateway/internal/validation"
)

type ServerSuite struct {
	suite.Suite
	sender  *mocks.MockSender
	viaCEP  *httptest.Server
	handler http.Handler
	clock   func() time.Time
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func testConfig() config.Config {
	return config.Config{
		HTTP: config.HTTPConfig{Addr: ":0", AllowedOrigin: "http://localhost:3000", BodyLimit: "64K"},
		Log:  config.LogConfig{Level: "error"},
	}
}

func (s *ServerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.sender = mocks.NewMockSender(ctrl)
	s.sender.EXPECT().Provider().Return(model.ProviderTwilio).AnyTimes()
	s.clock = func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }

	s.viaCEP = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01310100/json/":
			_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			_, _ = w.Write([]byte(`{"erro":true}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	s.T().Cleanup(s.viaCEP.Close)

	svc := lead.New(validation.New(s.clock), s.sender, time.UTC, nil)
	s.handler = NewServer(testConfig(), svc, address.NewClient(s.viaCEP.URL, time.Second), nil, nil).Handler()
}

func (s *ServerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			s.Require().NoError(json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func validPayload() map[string]any {
	return map[string]any{
		"nome":           "Maria Silva",
		"cpf":            "111.444.777-35",
		"dataNascimento": "01/01/1990",
		"cep":            "01310-100",
		"logradouro":     "Av. Paulista",
		"numero":         "100",
		"bairro":         "Bela Vista",
		"cidade":         "São Paulo",
		"estado":         "SP",
		"consentimento":  true,
	}
}

func (s *ServerSuite) TestCreateLead() {
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(model.Dispatch{MessageID: "SM900", Provider: model.ProviderTwilio}, nil).Times(1)

	rec := s.do(http.MethodPost, "/api/leads", validPayload())
	s.Equal(http.StatusCreated, rec.Code)
	s.JSONEq(`{"message":"Cadastro realizado com sucesso!","leadId":"SM900"}`, rec.Body.String())
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (s *ServerSuite) TestCreateLeadValidationErrors() {
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	p := validPayload()
	p["nome"] = "Al"
	p["consentimento"] = "true"

	rec := s.do(http.MethodPost, "/api/leads", p)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{
		"message": "Dados inválidos",
		"errors": [
			{"campo": "nome", "mensagem": "Nome deve ter no mínimo 3 caracteres"},
			{"campo": "consentimento", "mensagem": "Consentimento obrigatório"}
		]
	}`, rec.Body.String())
}

func (s *ServerSuite) TestCreateLeadEmptyObject() {
	rec := s.do(http.MethodPost, "/api/leads", map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []model.FieldError `json:"errors"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Len(body.Errors, 10)
	s.Equal("nome", body.Errors[0].Field)
	s.Equal("consentimento", body.Errors[9].Field)
}

func (s *ServerSuite) TestCreateLeadMalformedJSON() {
	rec := s.do(http.MethodPost, "/api/leads", `{"nome": `)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"message":"Requisição inválida"}`, rec.Body.String())
}

func (s *ServerSuite) TestCreateLeadDispatchFailure() {
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(model.Dispatch{}, &dispatcher.ConfigError{Provider: model.ProviderTwilio, Missing: []string{"account_sid", "auth_token"}}).
		Times(1)

	rec := s.do(http.MethodPost, "/api/leads", validPayload())
	s.Equal(http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Contains(body.Message, "twilio credentials not configured: missing account_sid, auth_token")
}

func (s *ServerSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/nothing", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"message":"Rota não encontrada"}`, rec.Body.String())
}

func (s *ServerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("ok", body["status"])
	_, err := time.Parse(time.RFC3339, body["timestamp"])
	s.NoError(err)
}

func (s *ServerSuite) TestSecurityAndCORSHeaders() {
	req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = s.do(http.MethodGet, "/health", nil)
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func (s *ServerSuite) TestAddressLookup() {
	rec := s.do(http.MethodGet, "/api/cep/01310-100", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"cep":"01310100","logradouro":"Avenida Paulista","bairro":"Bela Vista","cidade":"São Paulo","estado":"SP"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/cep/99999999", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/cep/123", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/cep/12345678", nil)
	s.Equal(http.StatusBadGateway, rec.Code)
}

type stubSubmitter struct {
	err error
}

func (f stubSubmitter) Submit(context.Context, model.Submission) (lead.Result, error) {
	return lead.Result{}, f.err
}

func TestGenericErrorWithoutMessage(t *testing.T) {
	srv := NewServer(testConfig(), stubSubmitter{err: emptyErr{}}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != msgInternal {
		t.Fatalf("expected %q, got %q", msgInternal, body.Message)
	}
}

type emptyErr struct{}

func (emptyErr) Error() string { return "" }
