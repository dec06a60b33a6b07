package orchestrator

import (
	"strings"
	"testing"
)

func TestValidateFinalAccepts(t *testing.T) {
	request := "write about renewable energy"
	response := "GOAL: renewable energy\n\n" +
		strings.Repeat("A thorough piece about renewable energy and why it matters. ", 5)

	v := validateFinal(response, request)
	if !v.OK() {
		t.Fatalf("expected valid response, got: %s", v.Reason())
	}
}

func TestValidateFinalRejections(t *testing.T) {
	long := strings.Repeat("write about renewable energy matters. ", 10)

	tests := []struct {
		name     string
		response string
		reason   string
	}{
		{"missing goal", long, "goal marker"},
		{"too short", "GOAL: renewable energy write about", "too short"},
		{"off topic", "GOAL\n" + strings.Repeat("unrelated filler sentences here. ", 10), "topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateFinal(tt.response, "write about renewable energy")
			if v.OK() {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(v.Reason(), tt.reason) {
				t.Errorf("expected reason containing %q, got %q", tt.reason, v.Reason())
			}
		})
	}
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{"bare short", "hello", 70},
		{"medium with goal", "GOAL " + strings.Repeat("x", 250), 85},
		{"long with goal", "GOAL " + strings.Repeat("x", 350), 90},
		{"capped", "GOAL comprehensive professional analysis recommendation " + strings.Repeat("x", 350), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qualityScore(tt.response); got != tt.want {
				t.Errorf("qualityScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTopicOverlap(t *testing.T) {
	tests := []struct {
		response string
		request  string
		want     float64
	}{
		{"covers solar and wind power", "solar wind power", 1.0},
		{"only solar here", "solar wind power costs trends", 0.2},
		{"nothing relevant", "solar wind", 0.0},
		{"anything", "", 0.0},
	}

	for _, tt := range tests {
		if got := topicOverlap(tt.response, tt.request); got != tt.want {
			t.Errorf("topicOverlap(%q, %q) = %f, want %f", tt.response, tt.request, got, tt.want)
		}
	}
}
