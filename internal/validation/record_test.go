package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmehdipour/lead-gateway/internal/model"
)

type RecordSuite struct {
	suite.Suite
	v *Validator
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordSuite))
}

func (s *RecordSuite) SetupTest() {
	s.v = New(fixedClock(2026, time.October, 19))
}

func validSubmission() model.Submission {
	return model.Submission{
		Nome:           "Maria Silva",
		CPF:            "111.444.777-35",
		DataNascimento: "01/01/1990",
		CEP:            "01310-100",
		Logradouro:     "Av. Paulista",
		Numero:         "100",
		Bairro:         "Bela Vista",
		Cidade:         "São Paulo",
		Estado:         "SP",
		Consentimento:  true,
	}
}

func (s *RecordSuite) TestValidRecord() {
	errs := s.v.Validate(validSubmission())
	s.Empty(errs)
	s.True(errs.Valid())
}

func (s *RecordSuite) TestEmptyRecordReportsEveryFieldInOrder() {
	errs := s.v.Validate(model.Submission{})
	s.Equal([]string{
		model.FieldNome,
		model.FieldCPF,
		model.FieldDataNascimento,
		model.FieldCEP,
		model.FieldLogradouro,
		model.FieldNumero,
		model.FieldBairro,
		model.FieldCidade,
		model.FieldEstado,
		model.FieldConsentimento,
	}, errs.Fields())
	s.Equal(MsgNome, errs[0].Message)
	s.Equal(MsgConsentimento, errs[9].Message)
}

func (s *RecordSuite) TestSingleFieldFailures() {
	cases := []struct {
		name   string
		mutate func(*model.Submission)
		field  string
		msg    string
	}{
		{"short name", func(r *model.Submission) { r.Nome = "  Al  " }, model.FieldNome, MsgNome},
		{"bad cpf", func(r *model.Submission) { r.CPF = "111.444.777-36" }, model.FieldCPF, MsgCPF},
		{"repeated cpf", func(r *model.Submission) { r.CPF = "222.222.222-22" }, model.FieldCPF, MsgCPF},
		{"minor", func(r *model.Submission) { r.DataNascimento = "20/10/2008" }, model.FieldDataNascimento, MsgDataNascimento},
		{"short cep", func(r *model.Submission) { r.CEP = "0131-010" }, model.FieldCEP, MsgCEP},
		{"short street", func(r *model.Submission) { r.Logradouro = "Av" }, model.FieldLogradouro, MsgLogradouro},
		{"blank number", func(r *model.Submission) { r.Numero = "   " }, model.FieldNumero, MsgNumero},
		{"short neighborhood", func(r *model.Submission) { r.Bairro = "B" }, model.FieldBairro, MsgBairro},
		{"short city", func(r *model.Submission) { r.Cidade = " S " }, model.FieldCidade, MsgCidade},
		{"lowercase region", func(r *model.Submission) { r.Estado = "sp" }, model.FieldEstado, MsgEstado},
		{"unknown region", func(r *model.Submission) { r.Estado = "XX" }, model.FieldEstado, MsgEstado},
		{"consent false", func(r *model.Submission) { r.Consentimento = false }, model.FieldConsentimento, MsgConsentimento},
		{"consent missing", func(r *model.Submission) { r.Consentimento = nil }, model.FieldConsentimento, MsgConsentimento},
		{"consent number", func(r *model.Submission) { r.Consentimento = 1.0 }, model.FieldConsentimento, MsgConsentimento},
		{"padded lowercase region", func(r *model.Submission) { r.Estado = " sp " }, model.FieldEstado, MsgEstado},
		{"consent string", func(r *model.Submission) { r.Consentimento = "true" }, model.FieldConsentimento, MsgConsentimento},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			sub := validSubmission()
			tc.mutate(&sub)
			errs := s.v.Validate(sub)
			s.Require().Len(errs, 1)
			s.Equal(model.FieldError{Field: tc.field, Message: tc.msg}, errs[0])
		})
	}
}

func (s *RecordSuite) TestNameLengthCountsRunes() {
	sub := validSubmission()
	sub.Nome = "Zoë"
	s.Empty(s.v.Validate(sub))
}

func (s *RecordSuite) TestPaddedRegionIsTrimmed() {
	sub := validSubmission()
	sub.Estado = " SP "
	s.Require().Empty(s.v.Validate(sub))

	lead, err := s.v.Normalize(sub)
	s.Require().NoError(err)
	s.Equal("SP", lead.Estado)
}

func (s *RecordSuite) TestMultipleFailuresKeepFieldOrder() {
	sub := validSubmission()
	sub.Consentimento = false
	sub.Estado = "XX"
	sub.CPF = "123"
	sub.Nome = ""

	errs := s.v.Validate(sub)
	s.Equal(model.FieldErrors{
		{Field: model.FieldNome, Message: MsgNome},
		{Field: model.FieldCPF, Message: MsgCPF},
		{Field: model.FieldEstado, Message: MsgEstado},
		{Field: model.FieldConsentimento, Message: MsgConsentimento},
	}, errs)
}

func (s *RecordSuite) TestComplementIsOptional() {
	sub := validSubmission()
	sub.Complemento = ""
	s.Empty(s.v.Validate(sub))
}

func (s *RecordSuite) TestNormalize() {
	sub := validSubmission()
	sub.Nome = "  Maria Silva "
	sub.Complemento = " Apto 12 "
	sub.Cidade = "São Paulo  "

	lead, err := s.v.Normalize(sub)
	s.Require().NoError(err)
	s.Equal("Maria Silva", lead.Nome)
	s.Equal("11144477735", lead.CPF)
	s.Equal("01310100", lead.CEP)
	s.Equal("01/01/1990", lead.DataNascimento)
	s.Equal("Apto 12", lead.Complemento)
	s.Equal("São Paulo", lead.Cidade)
	s.True(lead.Consentimento)
	s.Equal(time.Date(2026, time.October, 19, 10, 30, 0, 0, time.UTC), lead.SubmittedAt)
	s.Len(lead.ID, 26)
}

func (s *RecordSuite) TestNormalizeRejectsInvalid() {
	sub := validSubmission()
	sub.CEP = ""

	lead, err := s.v.Normalize(sub)
	s.Require().Error(err)
	s.Equal(model.Lead{}, lead)

	var errs model.FieldErrors
	s.Require().ErrorAs(err, &errs)
	s.Equal([]string{model.FieldCEP}, errs.Fields())
}
