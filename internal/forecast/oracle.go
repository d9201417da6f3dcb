package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used when none is configured.
const DefaultModelName = "gemini-2.0-flash"

// GeminiOracle asks a Gemini model for the balance prediction.
type GeminiOracle struct {
	client *genai.Client
	model  string
}

// NewGeminiOracle creates the genai client. The API key is read from the
// environment by the client itself.
func NewGeminiOracle(ctx context.Context, model string) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model == "" {
		model = DefaultModelName
	}

	return &GeminiOracle{client: client, model: model}, nil
}

// Predict sends the summary to the model and parses the prediction out of
// its response. The response must be a JSON object with a predictedChange
// number; anything else is an error for the caller to absorb.
func (o *GeminiOracle) Predict(ctx context.Context, summary Summary) (Forecast, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(summary)},
			},
		},
	}

	resp, err := o.client.Models.GenerateContent(ctx, o.model, contents, nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return Forecast{}, fmt.Errorf("empty response from model")
	}

	return parsePrediction(rawText)
}

// buildPrompt formats the financial summary for the model and pins the
// response down to a strict JSON object.
func buildPrompt(summary Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I need a financial forecast based on the following information:\n\n")
	fmt.Fprintf(&b, "Current balance: $%s\n", summary.Balance.StringFixed(2))
	fmt.Fprintf(&b, "Weekly income: $%s\n", summary.WeeklyIncome.StringFixed(2))
	fmt.Fprintf(&b, "Weekly expenses: $%s\n\n", summary.WeeklyExpenses.StringFixed(2))

	b.WriteString("Recent transactions (most recent first):\n")
	for _, t := range summary.Recent {
		fmt.Fprintf(&b, "- %s | %s | %s | $%s\n", t.Date, t.Type, t.Category, t.Amount.StringFixed(2))
	}

	b.WriteString(`
Based on this financial data, please provide:
1. A predicted change in balance for next week (a single number, positive or negative)
2. A very brief explanation of the prediction (2-3 words maximum)

Format your response as valid JSON with two fields:
- predictedChange: a number (e.g., 125.75 or -42.30)
- explanation: a string (e.g., "Increased expenses" or "Income boost")

Return ONLY valid raw JSON. Do NOT wrap the response in code fences.
`)

	return b.String()
}

// parsePrediction validates the model output before trusting it: it must be
// JSON and it must carry the predictedChange field.
func parsePrediction(raw string) (Forecast, error) {
	var prediction struct {
		PredictedChange *float64 `json:"predictedChange"`
		Explanation     string   `json:"explanation"`
	}

	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &prediction); err != nil {
		return Forecast{}, fmt.Errorf("unmarshal prediction: %w", err)
	}

	if prediction.PredictedChange == nil {
		return Forecast{}, fmt.Errorf("prediction is missing the predictedChange field")
	}

	return Forecast{
		PredictedChange: decimal.NewFromFloat(*prediction.PredictedChange),
		Explanation:     prediction.Explanation,
	}, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk in case the
// model ignored the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
