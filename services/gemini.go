package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// SafetyBlockedError is returned when the provider refuses the prompt or the
// generated candidate on content-policy grounds. It is distinct from a
// generic provider failure so the handler can answer 400 instead of 500.
type SafetyBlockedError struct {
	Reason  string
	Ratings []*genai.SafetyRating
}

func (e *SafetyBlockedError) Error() string {
	return "request blocked for safety reasons: " + e.Reason
}

// Summarizer wraps a process-lifetime Gemini client. Constructed once in main
// and closed on shutdown.
type Summarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewSummarizer(ctx context.Context, apiKey string) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}

	return &Summarizer{client: client, model: model}, nil
}

func (s *Summarizer) Close() error {
	return s.client.Close()
}

// Summarize sends the text to Gemini and returns the trimmed summary.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("Please provide a concise summary of the following text:\n\n---\n%s\n---\n\nSummary:", text)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractSummary(resp)
}

func extractSummary(resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", &SafetyBlockedError{
			Reason:  resp.PromptFeedback.BlockReason.String(),
			Ratings: resp.PromptFeedback.SafetyRatings,
		}
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", &SafetyBlockedError{
			Reason:  cand.FinishReason.String(),
			Ratings: cand.SafetyRatings,
		}
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("invalid or empty response structure from Gemini API")
	}

	return strings.TrimSpace(fmt.Sprintf("%v", cand.Content.Parts[0])), nil
}
