package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"SÃO PAULO", "SAO PAULO"},
		{"Número: 123", "Numero: 123"},
		{"MARICÁ - RJ", "MARICA - RJ"},
		{"açaí, pão & café!", "acai, pao & cafe!"},
		{"VALOR TOTAL DO MANIFESTO 1.234,56", "VALOR TOTAL DO MANIFESTO 1.234,56"},
		{"Destinatário\nRua João", "Destinatario\nRua Joao"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii 123",
		"Ângulo ÉTICO ção",
		"Nº 42 – São João del-Rei – MG",
		"ﬁ ligature and ² superscript",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "BELO HORIZONTE - MG", Canonical("Belo Horizonte - MG"))
	assert.Equal(t, "ENDERECO", Canonical("endereço"))
	assert.Equal(t, "11 OUT 2025", Canonical("11 out 2025"))
}
