package review

import (
	"encoding/json"
	"strings"
)

// Department classifies which part of the venue an issue belongs to.
type Department string

const (
	DepartmentKitchen Department = "kitchen"
	DepartmentFloor   Department = "floor"
	DepartmentBar     Department = "bar"
	DepartmentOther   Department = "other"
)

// Departments lists every known department, in classifier match order.
var Departments = []Department{
	DepartmentKitchen,
	DepartmentFloor,
	DepartmentBar,
	DepartmentOther,
}

// ParseDepartment maps free-form classifier output to a Department.
// The first known department name contained in the text wins;
// unrecognized output falls back to DepartmentOther.
func ParseDepartment(s string) Department {
	lowered := strings.ToLower(s)
	for _, d := range Departments {
		if strings.Contains(lowered, string(d)) {
			return d
		}
	}
	return DepartmentOther
}

// Issue is one extracted complaint with its responsible department.
type Issue struct {
	Description string     `json:"description"`
	Department  Department `json:"department"`
}

// Analysis is the language-model output for one review text.
type Analysis struct {
	CorrectedText string
	Summary       string
	Issues        []Issue
}

// Result is the terminal outcome of processing one submitted review.
// Completed is false when transcription or analysis produced no usable
// output; the remaining fields are then zero values.
type Result struct {
	Analysis
	// AudioPath is the original recording, empty for text submissions.
	AudioPath string
	Completed bool
}

// Failed returns a terminal result for a review that could not be processed.
func Failed(audioPath string) Result {
	return Result{AudioPath: audioPath}
}

// IssuesJSON renders the issue list in the upload wire shape
// [{description, department}, ...]. A nil list renders as [].
func IssuesJSON(issues []Issue) (string, error) {
	if issues == nil {
		issues = []Issue{}
	}
	data, err := json.Marshal(issues)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
