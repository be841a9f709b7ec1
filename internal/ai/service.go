package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suhelali14/influencia-ai-bridge/internal/ai/gemini"
	"github.com/suhelali14/influencia-ai-bridge/internal/logger"
	"github.com/suhelali14/influencia-ai-bridge/internal/matching"
)

// reporter is the narrative backend. It is nil when the service runs without
// a credential.
type reporter interface {
	GenerateReport(ctx context.Context, creatorJSON, campaignJSON, analysisJSON string) (*matching.Report, error)
	SummarizeAnalysis(ctx context.Context, creatorJSON, campaignJSON, analysisJSON string) (string, error)
}

// Config holds the settings for building a Service.
type Config struct {
	// APIKey is the Gemini credential. Empty is allowed: the service then
	// answers every operation from the heuristic engine alone.
	APIKey       string
	Model        string
	MaxRetries   int
	MaxLogLength int
}

// Service implements the three bridge operations: comprehensive analysis,
// report generation and match scoring. Scoring is always heuristic. The
// narrative layers use Gemini when a credential is configured and fall back
// to deterministic output when it is not.
type Service struct {
	engine   *matching.Engine
	reporter reporter
	model    string
	logger   *zap.Logger
}

// NewService builds the service. An empty api key is not an error; it only
// disables the AI narratives.
func NewService(ctx context.Context, cfg Config, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	service := &Service{
		engine: matching.NewEngine(log),
		logger: log,
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Warn("gemini api key is empty, running without ai narratives",
			zap.String("hint", "set GEMINI_API_KEY to enable ai summaries and reports"),
		)
		return service, nil
	}

	generator, err := gemini.NewGenerator(ctx, cfg.APIKey, cfg.Model, cfg.MaxRetries, log)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	service.model = generator.Model()
	service.reporter = gemini.NewReporter(generator, cfg.MaxLogLength,
		logger.WithCommonFields(log, "gemini", generator.Model()))

	return service, nil
}

// ComprehensiveAnalysis scores the creator against the campaign and explains
// the result. With a reporter configured it also asks Gemini for a prose
// summary; a summary failure is logged and the heuristic analysis is kept.
func (s *Service) ComprehensiveAnalysis(ctx context.Context, creator, campaign json.RawMessage) (*matching.Analysis, error) {
	creatorProfile, campaignProfile, err := decodeProfiles(creator, campaign)
	if err != nil {
		return nil, err
	}

	analysis := s.engine.Analyze(creatorProfile, campaignProfile)

	if s.reporter == nil {
		return analysis, nil
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("marshaling analysis: %w", err)
	}

	summary, err := s.reporter.SummarizeAnalysis(ctx, string(creator), string(campaign), string(analysisJSON))
	if err != nil {
		s.logger.Warn("ai summary unavailable, keeping the heuristic analysis", zap.Error(err))
		return analysis, nil
	}

	analysis.Summary = summary
	analysis.Source = s.model

	return analysis, nil
}

// GenerateReport produces a sponsorship match report. A provided analysis
// payload is trusted as-is and forwarded to the prompt unchanged; an absent
// one is computed first. Without a reporter the report is assembled from the
// analysis deterministically.
func (s *Service) GenerateReport(ctx context.Context, creator, campaign, analysis json.RawMessage) (*matching.Report, error) {
	creatorProfile, campaignProfile, err := decodeProfiles(creator, campaign)
	if err != nil {
		return nil, err
	}

	base, analysisJSON, err := s.resolveAnalysis(creatorProfile, campaignProfile, analysis)
	if err != nil {
		return nil, err
	}

	if s.reporter == nil {
		return matching.HeuristicReport(creatorProfile, campaignProfile, base), nil
	}

	report, err := s.reporter.GenerateReport(ctx, string(creator), string(campaign), analysisJSON)
	if err != nil {
		return nil, fmt.Errorf("generating ai report: %w", err)
	}

	report.MatchScore = base.MatchScore
	report.GeneratedBy = s.model

	return report, nil
}

// MatchScore returns only the numeric compatibility score.
func (s *Service) MatchScore(ctx context.Context, creator, campaign json.RawMessage) (float64, error) {
	creatorProfile, campaignProfile, err := decodeProfiles(creator, campaign)
	if err != nil {
		return 0, err
	}

	score, _ := s.engine.Score(creatorProfile, campaignProfile)

	return float64(score), nil
}

// resolveAnalysis picks the analysis a report is based on: the caller's
// payload when one is present, a freshly computed one otherwise.
func (s *Service) resolveAnalysis(creator *matching.Creator, campaign *matching.Campaign, raw json.RawMessage) (*matching.Analysis, string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		analysis := s.engine.Analyze(creator, campaign)

		data, err := json.Marshal(analysis)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling analysis: %w", err)
		}

		return analysis, string(data), nil
	}

	analysis, err := matching.AnalysisFromJSON(raw)
	if err != nil {
		return nil, "", err
	}

	return analysis, string(raw), nil
}

func decodeProfiles(creator, campaign json.RawMessage) (*matching.Creator, *matching.Campaign, error) {
	creatorProfile, err := matching.CreatorFromJSON(creator)
	if err != nil {
		return nil, nil, err
	}

	campaignProfile, err := matching.CampaignFromJSON(campaign)
	if err != nil {
		return nil, nil, err
	}

	return creatorProfile, campaignProfile, nil
}
