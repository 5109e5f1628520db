package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"labeled", "MANIFESTO DE CARGA\nNUMERO: 31385512345\nPAGINA 1", "31385512345", true},
		{"accented label", "Número: 12345678", "12345678", true},
		{"ordinal abbreviation", "Nº 987654321", "987654321", true},
		{"dotted abbreviation", "NO. - 123456789012", "123456789012", true},
		{"label too long falls back to bare run", "NUMERO: 1234567890123456\nCTE 5566778899", "5566778899", true},
		{"short label run ignored", "NUMERO: 1234567 REF 99887766554", "99887766554", true},
		{"bare run", "ROMANEIO 2025 0012345678901 FIM", "0012345678901", true},
		{"six digits rejected, twelve accepted", "TEL 123456 DOC 123456789012", "123456789012", true},
		{"too long bare run", "CODIGO 1234567890123456", "", false},
		{"nothing", "PAGINA 1 DE 3", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractIdentifier(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
