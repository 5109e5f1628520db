package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeAggregatorSumsPages(t *testing.T) {
	pages := []string{
		"MANIFESTO\nVOLUMES: 12\nPESO 30 KG",
		"ASSINATURA DO CONFERENTE",
		"CONFERENCIA\nITENS CONFERIDOS 5.00",
	}
	assert.Equal(t, 17, NewVolumeAggregator(DefaultVolumeMaxPlausible).Aggregate(pages))
}

func TestVolumeAggregatorPageCount(t *testing.T) {
	a := NewVolumeAggregator(1000)
	tests := []struct {
		name string
		page string
		want int
	}{
		{"label singular", "VOLUME - 3", 3},
		{"label wins over dotted tail", "TOTAL 8.00\nVolumes: 4", 4},
		{"dotted tail", "QTD\nLINHA 7.3", 7},
		{"dotted tail with windows line ending", "LINHA 9.00\r\nFIM", 9},
		{"money is not a dotted tail", "VALOR 1.234,56", 0},
		{"leading integer", "\n\n  42 CAIXAS\nOUTRA", 42},
		{"leading integer above ceiling", "1500 ITENS", 0},
		{"leading zero rejected", "0 ITENS", 0},
		{"only first non-empty line is considered", "CABECALHO\n42", 0},
		{"empty page", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.PageCount(tt.page))
		})
	}
}

func TestVolumeAggregatorCeilingIsTunable(t *testing.T) {
	assert.Equal(t, 0, NewVolumeAggregator(50).PageCount("60 VOLS"))
	assert.Equal(t, 60, NewVolumeAggregator(100).PageCount("60 VOLS"))
	assert.Equal(t, 999, NewVolumeAggregator(0).PageCount("999"))
}
