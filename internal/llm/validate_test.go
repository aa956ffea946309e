package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func reviewSchema() *Schema {
	return &Schema{
		Name:        "test-review",
		Description: "A review verdict",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"verdict": map[string]any{"type": "string", "enum": []any{"approved", "revise"}},
				"notes": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"score", "verdict"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"score":82,"verdict":"approved","notes":["clear"]}`, false},
		{"optional omitted", `{"score":40,"verdict":"revise"}`, false},
		{"missing required", `{"score":40}`, true},
		{"wrong type", `{"score":"high","verdict":"approved"}`, true},
		{"out of range", `{"score":120,"verdict":"approved"}`, true},
		{"bad enum", `{"score":70,"verdict":"maybe"}`, true},
		{"bad array item", `{"score":70,"verdict":"revise","notes":[1,2]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(reviewSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	const want = `{"score":82,"verdict":"approved"}`
	tests := []struct {
		name string
		text string
	}{
		{"plain", want},
		{"padded", "\n  " + want + "  \n"},
		{"fence with language", "```json\n" + want + "\n```"},
		{"bare fence", "```\n" + want + "\n```"},
		{"leading prose", "Here is the review:\n" + want},
		{"prose on both sides", "Sure. " + want + " Let me know if you need more."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.text)
			if string(got) != want {
				t.Fatalf("extractJSON = %q, want %q", got, want)
			}
		})
	}
}

func TestExtractJSON_LeavesGarbage(t *testing.T) {
	got := extractJSON("no json here")
	if string(got) != "no json here" {
		t.Fatalf("unexpected rewrite: %q", got)
	}
	if err := validateResponse(reviewSchema(), got); err == nil {
		t.Fatal("expected validation to fail")
	}
}
