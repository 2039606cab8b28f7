package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionConsented(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"literal true", `{"consentimento": true}`, true},
		{"literal false", `{"consentimento": false}`, false},
		{"string true", `{"consentimento": "true"}`, false},
		{"number one", `{"consentimento": 1}`, false},
		{"missing", `{}`, false},
		{"null", `{"consentimento": null}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Submission
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, s.Consented())
		})
	}
}

func TestFieldErrors(t *testing.T) {
	var none FieldErrors
	assert.True(t, none.Valid())
	assert.Equal(t, "", none.Error())

	errs := FieldErrors{{Field: FieldNome, Message: "x"}, {Field: FieldCEP, Message: "y"}}
	assert.False(t, errs.Valid())
	assert.Equal(t, "validation failed: 2 error(s)", errs.Error())
	assert.Equal(t, []string{"nome", "cep"}, errs.Fields())

	b, err := json.Marshal(errs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"campo":"nome","mensagem":"x"}`, string(b))
}

func TestValidRegion(t *testing.T) {
	assert.Len(t, Regions, 27)
	assert.True(t, ValidRegion("SP"))
	assert.True(t, ValidRegion("TO"))
	assert.False(t, ValidRegion("sp"))
	assert.False(t, ValidRegion("XX"))
	assert.False(t, ValidRegion(""))
}

func TestParseProvider(t *testing.T) {
	p, ok := ParseProvider("")
	assert.True(t, ok)
	assert.Equal(t, ProviderTwilio, p)

	p, ok = ParseProvider(" META ")
	assert.True(t, ok)
	assert.Equal(t, ProviderMeta, p)

	p, ok = ParseProvider("sns")
	assert.False(t, ok)
	assert.Equal(t, ProviderTwilio, p)
}
