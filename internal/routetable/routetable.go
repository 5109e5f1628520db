// Package routetable loads route-code tables that override the built-in one.
//
// The file is a JSON object mapping route codes to facility names:
//
//	{"S10": "CO GUAPIMIRIM", "S-27": "CO RIO DE JANEIRO 05"}
package routetable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/extract"
)

// Schema returns the JSON-Schema a route table must satisfy.
func Schema() map[string]any {
	return map[string]any{
		"type":          "object",
		"minProperties": 1,
		"propertyNames": map[string]any{
			"type":    "string",
			"pattern": `^[Ss][ \-/]?0?[0-9]{1,2}$`,
		},
		"additionalProperties": map[string]any{
			"type":      "string",
			"minLength": 1,
			"pattern":   `\S`,
		},
	}
}

var schema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("routetable.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile("routetable.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
})

// Parse validates data and returns the table keyed by canonical route code
// ("S-07" -> "S7") with trimmed, upper-cased facility names.
func Parse(data []byte) (map[string]string, error) {
	s, err := schema()
	if err != nil {
		return nil, common.NewAppError(common.CodeRouteTable, "route table schema", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, common.NewAppError(common.CodeRouteTable, "route table is not valid JSON", fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
	}
	if err := s.Validate(v); err != nil {
		return nil, common.NewAppError(common.CodeRouteTable, "route table does not match schema", fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
	}

	raw := v.(map[string]any)
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := make(map[string]string, len(raw))
	origin := make(map[string]string, len(raw))
	for _, k := range keys {
		code, ok := extract.CanonicalRouteCode(k)
		if !ok {
			return nil, common.NewAppError(common.CodeRouteTable, fmt.Sprintf("invalid route code %q", k), common.ErrInvalidInput)
		}
		if prev, dup := origin[code]; dup {
			return nil, common.NewAppError(common.CodeRouteTable,
				fmt.Sprintf("route codes %q and %q both mean %s", prev, k, code), common.ErrInvalidInput)
		}
		origin[code] = k
		table[code] = strings.ToUpper(strings.TrimSpace(raw[k].(string)))
	}
	return table, nil
}

// Load reads a route table file. An empty path returns the built-in table.
func Load(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return constants.DefaultRouteCodes(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.NewAppError(common.CodeRouteTable, "read route table "+path, fmt.Errorf("%w: %w", common.ErrNotFound, err))
	}
	if err != nil {
		return nil, common.NewAppError(common.CodeRouteTable, "read route table "+path, err)
	}
	return Parse(data)
}
