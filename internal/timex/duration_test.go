package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"24h"`, 24 * time.Hour, false},
		{"string with minutes", `"1h30m"`, 90 * time.Minute, false},
		{"number nanoseconds", `3600000000000`, time.Hour, false},
		{"bad string", `"soon"`, 0, true},
		{"wrong type", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if d.Duration != tt.want {
				t.Fatalf("got %v, want %v", d.Duration, tt.want)
			}
		})
	}
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	in := Duration{90 * time.Minute}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var out Duration
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.Duration != in.Duration {
		t.Fatalf("round trip changed value: %v != %v", out.Duration, in.Duration)
	}
}
