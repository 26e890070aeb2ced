package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/ingest"
	"github.com/gamehubfc/managerhub/internal/platform/logging"
)

// IngestionMetrics observes every parse run.
type IngestionMetrics interface {
	ObserveParse(source string, players int, failed bool, elapsed time.Duration)
}

type nopIngestionMetrics struct{}

func (nopIngestionMetrics) ObserveParse(string, int, bool, time.Duration) {}

// Parse sources, used as metric labels.
const (
	SourcePreview  = "preview"
	SourceDatabase = "database"
	SourceSeason   = "season"
)

type IngestionService struct {
	parser  *ingest.Parser
	metrics IngestionMetrics
	logger  *logging.Logger
}

func NewIngestionService(parser *ingest.Parser, metrics IngestionMetrics, logger *logging.Logger) *IngestionService {
	if parser == nil {
		parser = ingest.NewParser(ingest.DefaultVocabulary())
	}
	if metrics == nil {
		metrics = nopIngestionMetrics{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		parser:  parser,
		metrics: metrics,
		logger:  logger.Named("ingest"),
	}
}

// Parse runs the pipeline and records the outcome. A failed parse is
// reported in the Result, never as a panic.
func (s *IngestionService) Parse(ctx context.Context, source string, html []byte) ingest.Result {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Parse")
	defer span.End()

	start := time.Now()
	result := s.parser.ParseReader(bytes.NewReader(html))
	elapsed := time.Since(start)

	s.metrics.ObserveParse(source, len(result.Players), result.Failed(), elapsed)
	span.SetAttributes(
		attribute.String("ingest.source", source),
		attribute.Int("ingest.players", len(result.Players)),
		attribute.Int("ingest.columns", result.Columns),
	)

	if result.Failed() {
		span.RecordError(result.Err)
		s.logger.WarnContext(ctx, "export parse failed", "source", source, "bytes", len(html), "error", result.Err)
		return result
	}
	s.logger.DebugContext(ctx, "export parsed",
		"source", source,
		"players", len(result.Players),
		"columns", result.Columns,
		"elapsed", elapsed,
	)
	return result
}

// ParseUpload is Parse for uploads that will be stored. Empty documents,
// failed parses and exports without a single named row are rejected.
func (s *IngestionService) ParseUpload(ctx context.Context, source string, html []byte) ([]player.Player, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return nil, fmt.Errorf("%w: export document is empty", ErrInvalidInput)
	}
	result := s.Parse(ctx, source, html)
	if result.Failed() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, result.Err)
	}
	if len(result.Players) == 0 {
		return nil, fmt.Errorf("%w: export contains no named player rows", ErrInvalidInput)
	}
	return result.Players, nil
}
