package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/suhelali14/influencia-ai-bridge/internal/matching"
	"github.com/suhelali14/influencia-ai-bridge/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed report_system.md
var reportSystemPrompt string

//go:embed analysis_system.md
var analysisSystemPrompt string

const messageTemplate = `[Creator]
{{CREATOR_JSON}}

[Campaign]
{{CAMPAIGN_JSON}}

[Analysis]
{{ANALYSIS_JSON}}`

const defaultMaxLogLength = 200

// Reporter turns creator/campaign/analysis payloads into AI narratives. The
// input JSON blocks are forwarded as received, the model never sees a
// re-serialized view.
type Reporter struct {
	generator contentGenerator
	maxLogLen int
	logger    *zap.Logger
}

func NewReporter(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Reporter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reporter{
		generator: generator,
		maxLogLen: maxLogLength,
		logger:    logger,
	}
}

// GenerateReport asks the model for a sponsorship match report and parses its
// JSON response. MatchScore and GeneratedBy are left for the caller to fill.
func (r *Reporter) GenerateReport(ctx context.Context, creatorJSON, campaignJSON, analysisJSON string) (*matching.Report, error) {
	raw, err := r.generate(ctx, reportSystemPrompt, creatorJSON, campaignJSON, analysisJSON)
	if err != nil {
		return nil, err
	}

	report, err := parseReport(raw)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// SummarizeAnalysis asks the model for a short plain-text summary of the
// heuristic analysis.
func (r *Reporter) SummarizeAnalysis(ctx context.Context, creatorJSON, campaignJSON, analysisJSON string) (string, error) {
	raw, err := r.generate(ctx, analysisSystemPrompt, creatorJSON, campaignJSON, analysisJSON)
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		return "", errors.New("gemini returned an empty summary")
	}

	return summary, nil
}

func (r *Reporter) generate(ctx context.Context, system, creatorJSON, campaignJSON, analysisJSON string) (string, error) {
	message := buildMessage(creatorJSON, campaignJSON, analysisJSON)

	r.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return "", err
	}

	r.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return raw, nil
}

func buildMessage(creatorJSON, campaignJSON, analysisJSON string) string {
	message := strings.ReplaceAll(messageTemplate, "{{CREATOR_JSON}}", strings.TrimSpace(creatorJSON))
	message = strings.ReplaceAll(message, "{{CAMPAIGN_JSON}}", strings.TrimSpace(campaignJSON))
	message = strings.ReplaceAll(message, "{{ANALYSIS_JSON}}", strings.TrimSpace(analysisJSON))
	return message
}

func parseReport(raw string) (*matching.Report, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini report response: %w", err)
	}

	report := &matching.Report{
		Headline:       coerceString(data["headline"]),
		Narrative:      coerceString(data["narrative"]),
		Highlights:     coerceStringSlice(data["highlights"]),
		Risks:          coerceStringSlice(data["risks"]),
		Recommendation: coerceString(data["recommendation"]),
	}

	if report.Narrative == "" {
		return nil, errors.New("gemini report is missing a narrative")
	}

	return report, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStringSlice(v any) []string {
	switch val := v.(type) {
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
		return result
	case []string:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				result = append(result, s)
			}
		}
		return result
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return nil
	default:
		return nil
	}
}
