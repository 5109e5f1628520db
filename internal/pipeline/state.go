package pipeline

// State is a step of the per-document extraction.
type State int

const (
	StateNativeTextPending State = iota
	StateNativeTextExtracted
	StateFieldsFromNative
	StateOcrFallbackPending
	StateFieldsFromOcr
	StateAssembled
)

func (s State) String() string {
	switch s {
	case StateNativeTextPending:
		return "native_text_pending"
	case StateNativeTextExtracted:
		return "native_text_extracted"
	case StateFieldsFromNative:
		return "fields_from_native"
	case StateOcrFallbackPending:
		return "ocr_fallback_pending"
	case StateFieldsFromOcr:
		return "fields_from_ocr"
	case StateAssembled:
		return "assembled"
	default:
		return "unknown"
	}
}
