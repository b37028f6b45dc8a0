package analyzer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/revline/review-flow/internal/logger"
	"github.com/revline/review-flow/internal/review"
)

// stubGenerate answers each prompt kind from a canned table.
func stubAnalyzer(responses map[string]string, failOn string) *implAnalyzer {
	a := &implAnalyzer{
		apiKeys: []string{"test"},
		model:   "test-model",
		logger:  logger.New("error", "text"),
	}
	a.generate = func(ctx context.Context, prompt string) (string, error) {
		for prefix, response := range map[string]string{
			"correction": correctionPrompt,
			"translate":  translatePrompt,
			"summarize":  summarizePrompt,
			"issues":     issuesPrompt,
			"department": departmentPrompt,
		} {
			if strings.HasPrefix(prompt, response) {
				if prefix == failOn {
					return "", errors.New("model error")
				}
				if prefix == "department" {
					// Classify by keyword in the issue description.
					if strings.Contains(prompt, "service") {
						return "Floor", nil
					}
					return "Other", nil
				}
				return responses[prefix], nil
			}
		}
		return "", errors.New("unexpected prompt: " + prompt)
	}
	return a
}

func TestAnalyze(t *testing.T) {
	a := stubAnalyzer(map[string]string{
		"correction": "Great food, slow service.",
		"translate":  "Great food, slow service.",
		"summarize":  "Food praised, service criticized.",
		"issues":     "- Slow service\n- Cold soup",
	}, "")

	analysis, err := a.Analyze(context.Background(), "great food  slow service")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if analysis.CorrectedText != "Great food, slow service." {
		t.Errorf("CorrectedText = %q", analysis.CorrectedText)
	}
	if analysis.Summary != "Food praised, service criticized." {
		t.Errorf("Summary = %q", analysis.Summary)
	}

	want := []review.Issue{
		{Description: "Slow service", Department: review.DepartmentFloor},
		{Description: "Cold soup", Department: review.DepartmentOther},
	}
	if !reflect.DeepEqual(analysis.Issues, want) {
		t.Errorf("Issues = %v, want %v", analysis.Issues, want)
	}
}

func TestAnalyzeNoIssues(t *testing.T) {
	a := stubAnalyzer(map[string]string{
		"correction": "Everything was wonderful.",
		"translate":  "Everything was wonderful.",
		"summarize":  "A happy customer.",
		"issues":     "None",
	}, "")

	analysis, err := a.Analyze(context.Background(), "everything was wonderful")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("Issues = %v, want none", analysis.Issues)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := stubAnalyzer(map[string]string{
		"correction": "",
		"translate":  "",
		"summarize":  "",
		"issues":     "None",
	}, "")

	analysis, err := a.Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("Issues = %v, want none", analysis.Issues)
	}
}

func TestAnalyzeStageFailure(t *testing.T) {
	for _, stage := range []string{"correction", "translate", "summarize", "issues"} {
		t.Run(stage, func(t *testing.T) {
			a := stubAnalyzer(map[string]string{
				"correction": "text",
				"translate":  "text",
				"summarize":  "text",
				"issues":     "- problem",
			}, stage)

			if _, err := a.Analyze(context.Background(), "review"); err == nil {
				t.Errorf("Analyze() should fail when %s stage fails", stage)
			}
		})
	}
}

func TestParseIssueList(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    []string
	}{
		{
			name:    "bulleted list",
			listing: "- Slow service\n- Cold soup",
			want:    []string{"Slow service", "Cold soup"},
		},
		{
			name:    "numbered list",
			listing: "1. Slow service\n2) Cold soup",
			want:    []string{"Slow service", "Cold soup"},
		},
		{
			name:    "none sentinel",
			listing: "None",
			want:    nil,
		},
		{
			name:    "none mixed into listing",
			listing: "- Slow service\nNone",
			want:    []string{"Slow service"},
		},
		{
			name:    "blank lines dropped",
			listing: "\n\n- Slow service\n\n",
			want:    []string{"Slow service"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseIssueList(tt.listing); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseIssueList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateKey(t *testing.T) {
	a := &implAnalyzer{apiKeys: []string{"a", "b", "c"}}

	a.rotateKey()
	if a.currentKey != 1 {
		t.Errorf("currentKey = %d, want 1", a.currentKey)
	}
	a.rotateKey()
	a.rotateKey()
	if a.currentKey != 0 {
		t.Errorf("currentKey = %d, want wrap to 0", a.currentKey)
	}
}
