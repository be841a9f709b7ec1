package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/suhelali14/influencia-ai-bridge/internal/logger"
	"github.com/suhelali14/influencia-ai-bridge/internal/matching"
	"github.com/suhelali14/influencia-ai-bridge/internal/utils"
)

// Service runs the bridge operations. The dispatcher stays ignorant of how
// answers are produced; internal/ai provides the production implementation.
type Service interface {
	ComprehensiveAnalysis(ctx context.Context, creator, campaign json.RawMessage) (*matching.Analysis, error)
	GenerateReport(ctx context.Context, creator, campaign, analysis json.RawMessage) (*matching.Report, error)
	MatchScore(ctx context.Context, creator, campaign json.RawMessage) (float64, error)
}

const defaultMaxLogLength = 200

// matchScoreResponse keeps the score operation's wire shape an object, never
// a bare number.
type matchScoreResponse struct {
	MatchScore float64 `json:"match_score"`
}

// Dispatcher reads one request document, runs the requested operation and
// writes exactly one JSON document to the output.
type Dispatcher struct {
	service   Service
	maxLogLen int
	logger    *zap.Logger
}

func New(service Service, maxLogLength int, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Dispatcher{
		service:   service,
		maxLogLen: maxLogLength,
		logger:    log,
	}
}

// Execute runs one request/response cycle. A nil return means a well-formed
// response was produced, the unknown-command error document included. A
// non-nil return is always a *Failure, written to the output already; the
// caller decides the exit code.
func (d *Dispatcher) Execute(ctx context.Context, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)

	raw, err := io.ReadAll(in)
	if err != nil {
		return d.fail(w, KindParse, fmt.Errorf("reading request: %w", err))
	}

	d.logger.Debug("request received",
		zap.Int("bytes", len(raw)),
		zap.String("preview", utils.TruncateForLog(string(raw), d.maxLogLen)),
	)

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return d.fail(w, KindParse, fmt.Errorf("parsing request: %w", err))
	}

	// A bare null decodes into an empty Request without an error, yet it is
	// no more a request document than any other non-object input.
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return d.fail(w, KindParse, errors.New("request document is null"))
	}

	label := CommandLabel(req.Command)
	d.logger.Info("dispatching command", zap.String(logger.FieldCommand, label))

	command, _ := req.Command.(string)

	switch command {
	case CommandAnalyze:
		data, failure := d.payloads(w, &req)
		if failure != nil {
			return failure
		}

		analysis, err := d.service.ComprehensiveAnalysis(ctx, data.Creator, data.Campaign)
		if err != nil {
			return d.fail(w, KindService, err)
		}

		return d.respond(w, analysis)

	case CommandGenerateReport:
		data, failure := d.payloads(w, &req)
		if failure != nil {
			return failure
		}

		report, err := d.service.GenerateReport(ctx, data.Creator, data.Campaign, data.Analysis)
		if err != nil {
			return d.fail(w, KindService, err)
		}

		return d.respond(w, report)

	case CommandMatchScore:
		data, failure := d.payloads(w, &req)
		if failure != nil {
			return failure
		}

		score, err := d.service.MatchScore(ctx, data.Creator, data.Campaign)
		if err != nil {
			return d.fail(w, KindService, err)
		}

		return d.respond(w, matchScoreResponse{MatchScore: score})

	default:
		d.logger.Warn("unknown command", zap.String(logger.FieldCommand, label))

		return d.respond(w, ErrorResponse{Error: "Unknown command: " + label})
	}
}

// payloads decodes the data object for the known-command branches. A non-nil
// failure has already been written to the output.
func (d *Dispatcher) payloads(w *bufio.Writer, req *Request) (*RequestData, error) {
	data, err := req.DecodeData()
	if err != nil {
		return nil, d.fail(w, KindParse, err)
	}

	return data, nil
}

func (d *Dispatcher) respond(w *bufio.Writer, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return d.fail(w, KindService, fmt.Errorf("encoding response: %w", err))
	}

	d.logger.Debug("response ready",
		zap.Int("bytes", len(data)),
		zap.String("preview", utils.TruncateForLog(string(data), d.maxLogLen)),
	)

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return &Failure{Kind: KindService, Err: fmt.Errorf("writing response: %w", err)}
	}

	if err := w.Flush(); err != nil {
		return &Failure{Kind: KindService, Err: fmt.Errorf("flushing response: %w", err)}
	}

	return nil
}

// fail writes the error document and returns the classified failure. The
// write is best effort: a broken output must not mask the original error.
func (d *Dispatcher) fail(w *bufio.Writer, kind Kind, err error) error {
	d.logger.Error("operation failed",
		zap.String("error_type", string(kind)),
		zap.Error(err),
	)

	EmitFailure(w, kind, err)
	_ = w.Flush()

	return &Failure{Kind: kind, Err: err}
}
