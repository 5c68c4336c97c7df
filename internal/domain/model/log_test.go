package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name   string
		entry  *LogEntry
		key    string
		value  interface{}
		verify func(*testing.T, *LogEntry)
	}{
		{
			name:  "allocates fields on nil map",
			entry: &LogEntry{ActionType: ActionCalculate},
			key:   "zone_count",
			value: 3,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 3, e.Fields["zone_count"])
			},
		},
		{
			name: "keeps existing fields",
			entry: &LogEntry{
				Fields: map[string]interface{}{"format": "csv"},
			},
			key:   "run_id",
			value: "abc",
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, "csv", e.Fields["format"])
				assert.Equal(t, "abc", e.Fields["run_id"])
			},
		},
		{
			name: "overwrites field",
			entry: &LogEntry{
				Fields: map[string]interface{}{"version": 1},
			},
			key:   "version",
			value: 2,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 2, e.Fields["version"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, result)
			tt.verify(t, result)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := &LogEntry{ActionType: ActionExport}

	entry.WithFields(map[string]interface{}{
		"format":     "xlsx",
		"zone_count": 2,
	}).WithFields(map[string]interface{}{
		"format": "csv",
	})

	assert.Equal(t, "csv", entry.Fields["format"])
	assert.Equal(t, 2, entry.Fields["zone_count"])
	assert.Len(t, entry.Fields, 2)
}
