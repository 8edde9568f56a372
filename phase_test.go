package trafficlight

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "RED", Red.String())
	assert.Equal(t, "GREEN", Green.String())
	assert.Equal(t, "UNKNOWN", Phase(7).String())
}

func TestPhase_ZeroValueIsRed(t *testing.T) {
	var p Phase
	assert.Equal(t, Red, p)
}

func TestPhase_Toggle(t *testing.T) {
	assert.Equal(t, Green, Red.Toggle())
	assert.Equal(t, Red, Green.Toggle())
	assert.Equal(t, Red, Red.Toggle().Toggle())
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		input    string
		expected Phase
		wantErr  bool
	}{
		{"RED", Red, false},
		{"red", Red, false},
		{" Green ", Green, false},
		{"GREEN", Green, false},
		{"yellow", Red, true},
		{"", Red, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePhase(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsPhaseError(err))
				assert.Equal(t, ErrCodeInvalidPhase, GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPhase_JSON(t *testing.T) {
	payload := struct {
		Phase Phase `json:"phase"`
	}{Phase: Green}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"GREEN"}`, string(data))

	payload.Phase = Red
	require.NoError(t, json.Unmarshal([]byte(`{"phase":"green"}`), &payload))
	assert.Equal(t, Green, payload.Phase)

	err = json.Unmarshal([]byte(`{"phase":"amber"}`), &payload)
	assert.Error(t, err)

	_, err = Phase(9).MarshalText()
	assert.Error(t, err)
}
