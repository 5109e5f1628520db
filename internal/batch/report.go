package batch

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/manifest-reader/internal/entity"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

// StatusLine renders the operator-facing line for one result, exactly one of:
//
//	OK <file> | <destination>
//	WARN <file> - missing fields: issue_date, destination
//	FAIL <file> - <error>
func StatusLine(res pipeline.Result) string {
	if res.Err != nil {
		return fmt.Sprintf("FAIL %s - %v", res.Name, res.Err)
	}
	if missing := requiredMissing(res.Record); len(missing) > 0 {
		return fmt.Sprintf("WARN %s - missing fields: %s", res.Name, strings.Join(missing, ", "))
	}
	return fmt.Sprintf("OK %s | %s", res.Name, res.Record.Destination)
}

func requiredMissing(rec entity.ManifestRecord) []string {
	var out []string
	for _, f := range rec.MissingFields() {
		switch f {
		case entity.FieldIdentifier, entity.FieldIssueDate, entity.FieldDestination:
			out = append(out, f)
		}
	}
	return out
}
