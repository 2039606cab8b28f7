package model

import (
	"fmt"
	"time"
)

// Submission is the raw form payload. Nothing in it is trusted.
// Length rules apply after trimming; see validation.Validator.
type Submission struct {
	Nome           string `json:"nome" validate:"min=3"`
	CPF            string `json:"cpf" validate:"cpf"`
	DataNascimento string `json:"dataNascimento" validate:"birthdate"`
	CEP            string `json:"cep" validate:"cep"`
	Logradouro     string `json:"logradouro" validate:"min=3"`
	Numero         string `json:"numero" validate:"min=1"`
	Complemento    string `json:"complemento,omitempty"`
	Bairro         string `json:"bairro" validate:"min=2"`
	Cidade         string `json:"cidade" validate:"min=2"`
	Estado         string `json:"estado" validate:"region"`
	Consentimento  any    `json:"consentimento" validate:"consent"` // only the JSON literal true is accepted
}

// Consented reports whether the consent flag is exactly boolean true.
func (s Submission) Consented() bool {
	b, ok := s.Consentimento.(bool)
	return ok && b
}

// Lead is a validated submission: free text trimmed, cpf/cep digits only.
type Lead struct {
	ID             string    `json:"id"`
	Nome           string    `json:"nome"`
	CPF            string    `json:"cpf"`
	DataNascimento string    `json:"dataNascimento"`
	CEP            string    `json:"cep"`
	Logradouro     string    `json:"logradouro"`
	Numero         string    `json:"numero"`
	Complemento    string    `json:"complemento"`
	Bairro         string    `json:"bairro"`
	Cidade         string    `json:"cidade"`
	Estado         string    `json:"estado"`
	Consentimento  bool      `json:"consentimento"`
	SubmittedAt    time.Time `json:"dataHora"`
}

// Field names used in FieldError, in validation order.
const (
	FieldNome           = "nome"
	FieldCPF            = "cpf"
	FieldDataNascimento = "dataNascimento"
	FieldCEP            = "cep"
	FieldLogradouro     = "logradouro"
	FieldNumero         = "numero"
	FieldBairro         = "bairro"
	FieldCidade         = "cidade"
	FieldEstado         = "estado"
	FieldConsentimento  = "consentimento"
)

type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is the outcome of validating a Submission; empty means valid.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(e))
}

func (e FieldErrors) Valid() bool { return len(e) == 0 }

// Fields returns the failing field names in order.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}
