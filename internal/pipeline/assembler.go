package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/entity"
)

// Assembler merges extractor outputs into one record. A field is written once;
// later sources never replace it, so the first source to resolve a field wins.
type Assembler struct {
	record  entity.ManifestRecord
	sources map[string]Source
}

func NewAssembler() *Assembler {
	return &Assembler{sources: make(map[string]Source)}
}

func (a *Assembler) claim(field string, src Source) bool {
	if _, taken := a.sources[field]; taken {
		return false
	}
	a.sources[field] = src
	return true
}

func (a *Assembler) SetIdentifier(v string, src Source) bool {
	if v == "" || !a.claim(entity.FieldIdentifier, src) {
		return false
	}
	a.record.Identifier = v
	return true
}

func (a *Assembler) SetIssueDate(v string, src Source) bool {
	if v == "" || !a.claim(entity.FieldIssueDate, src) {
		return false
	}
	a.record.IssueDate = v
	return true
}

func (a *Assembler) SetIssueTime(v string, src Source) bool {
	if v == "" || !a.claim(entity.FieldIssueTime, src) {
		return false
	}
	a.record.IssueTime = v
	return true
}

func (a *Assembler) SetDestination(v string, src Source) bool {
	if v == "" || !a.claim(entity.FieldDestination, src) {
		return false
	}
	a.record.Destination = v
	return true
}

// SetTotalValue stores v rounded to two fractional digits.
func (a *Assembler) SetTotalValue(v decimal.Decimal, src Source) bool {
	if !a.claim(entity.FieldTotalValue, src) {
		return false
	}
	a.record.TotalValue = decimal.NewNullDecimal(v.Round(2))
	return true
}

// SetVolumeCount ignores zero: no page contributed a count.
func (a *Assembler) SetVolumeCount(n int, src Source) bool {
	if n <= 0 || !a.claim(entity.FieldVolumeCount, src) {
		return false
	}
	a.record.VolumeCount = n
	return true
}

// Has reports whether field already holds a value.
func (a *Assembler) Has(field string) bool {
	_, ok := a.sources[field]
	return ok
}

func (a *Assembler) Record() entity.ManifestRecord {
	return a.record
}

// Sources returns a copy of the field -> source map.
func (a *Assembler) Sources() map[string]Source {
	out := make(map[string]Source, len(a.sources))
	for k, v := range a.sources {
		out[k] = v
	}
	return out
}

// Status derives the operator-facing status of the record.
func (a *Assembler) Status() constants.RecordStatus {
	if a.record.Complete() {
		return constants.RecordStatusComplete
	}
	return constants.RecordStatusIncomplete
}
