package message

import (
	"strings"
	"time"

	"github.com/jmehdipour/lead-gateway/internal/model"
	"github.com/jmehdipour/lead-gateway/internal/util"
)

// TimestampLayout renders dates the pt-BR way: day/month/year, 24-hour clock.
const TimestampLayout = "02/01/2006, 15:04:05"

// Format renders the WhatsApp text for a lead. loc controls the timestamp line; nil means UTC.
func Format(l model.Lead, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	consent := "Não"
	if l.Consentimento {
		consent = "Confirmado"
	}

	address := l.Logradouro + ", " + l.Numero
	if l.Complemento != "" {
		address += " - " + l.Complemento
	}

	var sb strings.Builder
	lines := []string{
		"🆕 *NOVA CONSULTORA - ROMANCE*",
		"",
		"📋 *Dados Cadastrais:*",
		"",
		"👤 Nome: " + l.Nome,
		"🆔 CPF: " + util.FormatDocument(l.CPF),
		"🎂 Data Nascimento: " + l.DataNascimento,
		"",
		"📍 *Endereço:*",
		address,
		"Bairro: " + l.Bairro,
		l.Cidade + " - " + l.Estado,
		"CEP: " + util.FormatPostalCode(l.CEP),
		"",
		"✅ Consentimento LGPD: " + consent,
		"🕐 Data/Hora: " + l.SubmittedAt.In(loc).Format(TimestampLayout),
		"",
		"---",
		"_Cadastro realizado via sistema Romance_",
	}
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}

	return sb.String()
}
