package openmeteo

import (
	"encoding/json"
	"testing"
)

func mustHourly(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var hourly map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &hourly); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return hourly
}
