package analyzer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/revline/review-flow/internal/review"
)

// Analyze runs the review through the full language-model chain:
// correction, translation to English, summarization, issue extraction,
// and one department classification per issue.
func (a *implAnalyzer) Analyze(ctx context.Context, text string) (review.Analysis, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "  ", " "))

	corrected, err := a.generate(ctx, correctionPrompt+cleaned)
	if err != nil {
		return review.Analysis{}, fmt.Errorf("correction: %w", err)
	}

	translated, err := a.generate(ctx, translatePrompt+strings.TrimSpace(corrected))
	if err != nil {
		return review.Analysis{}, fmt.Errorf("translation: %w", err)
	}
	translated = strings.TrimSpace(translated)

	summary, err := a.generate(ctx, summarizePrompt+translated)
	if err != nil {
		return review.Analysis{}, fmt.Errorf("summarization: %w", err)
	}

	issues, err := a.extractIssues(ctx, translated)
	if err != nil {
		return review.Analysis{}, fmt.Errorf("issue extraction: %w", err)
	}

	return review.Analysis{
		CorrectedText: translated,
		Summary:       strings.TrimSpace(summary),
		Issues:        issues,
	}, nil
}

func (a *implAnalyzer) extractIssues(ctx context.Context, text string) ([]review.Issue, error) {
	listing, err := a.generate(ctx, issuesPrompt+text)
	if err != nil {
		return nil, err
	}

	descriptions := parseIssueList(listing)
	issues := make([]review.Issue, 0, len(descriptions))

	for _, description := range descriptions {
		classified, err := a.generate(ctx, departmentPrompt+description)
		if err != nil {
			return nil, err
		}

		department := review.ParseDepartment(classified)
		a.logger.Debug(ctx, "Issue %q classified as %s", description, department)

		issues = append(issues, review.Issue{
			Description: description,
			Department:  department,
		})
	}

	return issues, nil
}

// parseIssueList splits the model's issue listing into clean descriptions.
// Lines containing the "None" sentinel are dropped, as are bullets and
// list numbering.
func parseIssueList(listing string) []string {
	var descriptions []string

	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = trimListNumber(line)

		if line == "" || strings.Contains(line, "None") {
			continue
		}
		descriptions = append(descriptions, line)
	}

	return descriptions
}

// trimListNumber strips a leading "1." / "2)" style marker.
func trimListNumber(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// callGemini sends one prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (a *implAnalyzer) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(a.apiKeys)
	if attempts == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	var lastErr error

	for range attempts {
		key := a.apiKeys[a.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			a.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				a.logger.Warn(ctx, "Key %d rate limited, rotating...", a.currentKey+1)
				a.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (a *implAnalyzer) rotateKey() {
	a.currentKey = (a.currentKey + 1) % len(a.apiKeys)
}
