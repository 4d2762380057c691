package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		env       string
		json      bool
		debugOn   bool
		infoShown bool
	}{
		{env: "prod", json: true, debugOn: false, infoShown: false},
		{env: "staging", json: true, debugOn: true, infoShown: true},
		{env: "dev", json: false, debugOn: true, infoShown: true},
		{env: "", json: false, debugOn: true, infoShown: true},
	}

	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := setupLogger(tc.env, &buf)

			assert.Equal(t, tc.debugOn, log.Enabled(context.Background(), slog.LevelDebug))
			assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))

			log.Info("student registered", slog.String("id", "STU20240210093000"))
			if !tc.infoShown {
				assert.Empty(t, buf.String())
				return
			}

			if tc.json {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "STU20240210093000", entry["id"])
			} else {
				assert.Contains(t, buf.String(), "id=STU20240210093000")
			}
		})
	}
}
