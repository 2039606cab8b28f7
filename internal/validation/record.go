package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmehdipour/lead-gateway/internal/model"
	"github.com/jmehdipour/lead-gateway/internal/util"
)

const (
	MsgNome           = "Nome deve ter no mínimo 3 caracteres"
	MsgCPF            = "CPF inválido"
	MsgDataNascimento = "Data de nascimento inválida ou menor de 18 anos"
	MsgCEP            = "CEP inválido"
	MsgLogradouro     = "Logradouro inválido"
	MsgNumero         = "Número é obrigatório"
	MsgBairro         = "Bairro inválido"
	MsgCidade         = "Cidade inválida"
	MsgEstado         = "Estado inválido"
	MsgConsentimento  = "Consentimento obrigatório"
)

var messages = map[string]string{
	model.FieldNome:           MsgNome,
	model.FieldCPF:            MsgCPF,
	model.FieldDataNascimento: MsgDataNascimento,
	model.FieldCEP:            MsgCEP,
	model.FieldLogradouro:     MsgLogradouro,
	model.FieldNumero:         MsgNumero,
	model.FieldBairro:         MsgBairro,
	model.FieldCidade:         MsgCidade,
	model.FieldEstado:         MsgEstado,
	model.FieldConsentimento:  MsgConsentimento,
}

const cepLen = 8

// Validator checks form submissions against the `validate` tags on model.Submission.
// The clock decides ages and submission timestamps.
type Validator struct {
	now      func() time.Time
	validate *validator.Validate
}

// New builds a Validator; a nil clock means time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{now: now, validate: validator.New()}

	// report fields by their json names
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v.validate, "cpf", func(fl validator.FieldLevel) bool {
		return ValidDocument(fl.Field().String())
	})
	mustRegister(v.validate, "birthdate", func(fl validator.FieldLevel) bool {
		return v.ValidBirthDate(fl.Field().String())
	})
	mustRegister(v.validate, "cep", func(fl validator.FieldLevel) bool {
		return len(util.StripNonDigits(fl.Field().String())) == cepLen
	})
	mustRegister(v.validate, "region", func(fl validator.FieldLevel) bool {
		return model.ValidRegion(fl.Field().String())
	})
	mustRegister(v.validate, "consent", func(fl validator.FieldLevel) bool {
		b, ok := fl.Field().Interface().(bool)
		return ok && b
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate runs every field check and returns the failures in field order.
func (v *Validator) Validate(s model.Submission) model.FieldErrors {
	t := trimmed(s)
	err := v.validate.Struct(&t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// only reachable on a programming error in the tags
		panic(err)
	}
	return translate(verrs)
}

func translate(verrs validator.ValidationErrors) model.FieldErrors {
	errs := make(model.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		errs = append(errs, model.FieldError{Field: fe.Field(), Message: msg})
	}
	return errs
}

// Normalize validates s and, when it passes, derives the Lead.
// The returned error is always model.FieldErrors.
func (v *Validator) Normalize(s model.Submission) (model.Lead, error) {
	if errs := v.Validate(s); len(errs) > 0 {
		return model.Lead{}, errs
	}

	t := trimmed(s)
	now := v.now()
	return model.Lead{
		ID:             util.NewAt(now),
		Nome:           t.Nome,
		CPF:            util.StripNonDigits(t.CPF),
		DataNascimento: t.DataNascimento,
		CEP:            util.StripNonDigits(t.CEP),
		Logradouro:     t.Logradouro,
		Numero:         t.Numero,
		Complemento:    t.Complemento,
		Bairro:         t.Bairro,
		Cidade:         t.Cidade,
		Estado:         t.Estado,
		Consentimento:  t.Consented(),
		SubmittedAt:    now,
	}, nil
}

// trimmed strips surrounding spaces from the free-text fields.
// cpf, cep and the birth date are checked as sent.
func trimmed(s model.Submission) model.Submission {
	s.Nome = strings.TrimSpace(s.Nome)
	s.Logradouro = strings.TrimSpace(s.Logradouro)
	s.Numero = strings.TrimSpace(s.Numero)
	s.Complemento = strings.TrimSpace(s.Complemento)
	s.Bairro = strings.TrimSpace(s.Bairro)
	s.Cidade = strings.TrimSpace(s.Cidade)
	s.Estado = strings.TrimSpace(s.Estado)
	return s
}
