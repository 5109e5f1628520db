package constants

// RecordStatus is the per-document outcome reported to the operator.
type RecordStatus string

const (
	RecordStatusComplete   RecordStatus = "COMPLETE"   // identifier, date and destination resolved
	RecordStatusIncomplete RecordStatus = "INCOMPLETE" // readable document, some required field empty
	RecordStatusFailed     RecordStatus = "FAILED"     // no text source could be read
)
