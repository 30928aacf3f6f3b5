package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantZero bool
	}{
		{"date only", `"2025-06-15"`, false},
		{"rfc3339", `"2025-06-15T13:45:00Z"`, false},
		{"null", `null`, true},
		{"empty string", `""`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.wantZero, d.IsZero())
			if !tt.wantZero {
				assert.Equal(t, 2025, d.Year())
				assert.Equal(t, 15, d.Day().Day())
			}
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15/06/2025"`), &d))
}

func TestDateMarshal(t *testing.T) {
	d := NewDate(2025, 6, 15)
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-15"`, string(out))

	var zero Date
	out, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
