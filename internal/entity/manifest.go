package entity

import (
	"github.com/shopspring/decimal"
)

// ManifestRecord is the set of fields extracted from one shipping manifest.
// Empty strings mean the field could not be resolved.
type ManifestRecord struct {
	Identifier  string              `json:"identifier"`
	IssueDate   string              `json:"issue_date"` // DD/MM/YYYY
	IssueTime   string              `json:"issue_time"` // HH:MM:SS
	Destination string              `json:"destination"`
	TotalValue  decimal.NullDecimal `json:"total_value"`
	VolumeCount int                 `json:"volume_count"`
}

// Field names used in logs and warnings.
const (
	FieldIdentifier  = "identifier"
	FieldIssueDate   = "issue_date"
	FieldIssueTime   = "issue_time"
	FieldDestination = "destination"
	FieldTotalValue  = "total_value"
	FieldVolumeCount = "volume_count"
)

// Complete reports whether identifier, date and destination are all resolved.
// Time and value are not required.
func (r ManifestRecord) Complete() bool {
	return r.Identifier != "" && r.IssueDate != "" && r.Destination != ""
}

// MissingFields lists the unresolved fields in record order.
func (r ManifestRecord) MissingFields() []string {
	var missing []string
	if r.Identifier == "" {
		missing = append(missing, FieldIdentifier)
	}
	if r.IssueDate == "" {
		missing = append(missing, FieldIssueDate)
	}
	if r.IssueTime == "" {
		missing = append(missing, FieldIssueTime)
	}
	if r.Destination == "" {
		missing = append(missing, FieldDestination)
	}
	if !r.TotalValue.Valid {
		missing = append(missing, FieldTotalValue)
	}
	if r.VolumeCount == 0 {
		missing = append(missing, FieldVolumeCount)
	}
	return missing
}
