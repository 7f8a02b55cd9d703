package model

import (
	"encoding/json"
	"testing"
)

func TestSuccessEnvelope(t *testing.T) {
	env := SuccessEnvelope(map[string]any{"x": 1}, "ok")
	if !env.Success {
		t.Error("Expected success")
	}
	if env.Error != nil {
		t.Errorf("Expected nil error, got %v", *env.Error)
	}
	if env.Data == nil {
		t.Error("Expected data to be set")
	}
}

func TestErrorEnvelope(t *testing.T) {
	env := ErrorEnvelope("timeout", "upstream timed out")
	if env.Success {
		t.Error("Expected failure")
	}
	if env.Data != nil {
		t.Error("Expected nil data on failure")
	}
	if env.Error == nil || *env.Error != "timeout" {
		t.Errorf("Expected error code timeout, got %v", env.Error)
	}
}

func TestEnvelope_JSONShape(t *testing.T) {
	b, err := json.Marshal(ErrorEnvelope("timeout", "upstream timed out"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// data and error keys are always present, null when absent.
	for _, key := range []string{"success", "data", "message", "error"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected key %q in envelope JSON", key)
		}
	}
	if decoded["data"] != nil {
		t.Errorf("Expected null data, got %v", decoded["data"])
	}
	if decoded["error"] != "timeout" {
		t.Errorf("Expected error code, got %v", decoded["error"])
	}
}

func TestComparisonResult_FailedCount(t *testing.T) {
	r := ComparisonResult{Models: []ModelForecast{
		{ModelID: "m1", Success: true},
		{ModelID: "m2"},
		{ModelID: "m3"},
	}}
	if got := r.FailedCount(); got != 2 {
		t.Errorf("Expected 2 failed, got %d", got)
	}
}
