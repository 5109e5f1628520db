package routetable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "canonical keys",
			input: `{"S10": "co guapimirim", "S-07": " CO NITEROI ", "s 27": "CO RIO DE JANEIRO 05"}`,
			want: map[string]string{
				"S10": "CO GUAPIMIRIM",
				"S7":  "CO NITEROI",
				"S27": "CO RIO DE JANEIRO 05",
			},
		},
		{name: "not json", input: `{"S10": `, wantErr: true},
		{name: "not an object", input: `["S10"]`, wantErr: true},
		{name: "empty object", input: `{}`, wantErr: true},
		{name: "bad key", input: `{"ROTA 10": "X"}`, wantErr: true},
		{name: "three digits", input: `{"S100": "X"}`, wantErr: true},
		{name: "blank value", input: `{"S10": "  "}`, wantErr: true},
		{name: "non-string value", input: `{"S10": 10}`, wantErr: true},
		{name: "duplicate canonical code", input: `{"S7": "A", "S07": "B"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				var appErr *common.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, common.CodeRouteTable, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultRouteCodes(), got)

	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"S99": "CO TESTE"}`), 0o644))
	got, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"S99": "CO TESTE"}, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.CodeRouteTable, appErr.Code)
}
