// Package service is the single entry point through which the CLI, the
// REPL and the HTTP server reach the sequence and combinatorics packages.
// It enforces the configured limits, translates library errors into
// apperrors types, and records a trace span, Prometheus metrics and a
// debug log line for every operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/pkg/hanoi"
	"github.com/agbru/seqcalc/pkg/josephus"
	"github.com/agbru/seqcalc/pkg/models"
	"github.com/agbru/seqcalc/pkg/pascal"
	"github.com/agbru/seqcalc/pkg/sequence"
)

// ErrLimitExceeded is the cause of every ValidationError raised for a
// request that exceeds config.Limits.
var ErrLimitExceeded = errors.New("request exceeds configured limit")

// seekChunk is how far a cursor moves between two cancellation checks.
const seekChunk = 1 << 20

// Default Hanoi peg labels.
const (
	PegFrom = "A"
	PegVia  = "B"
	PegTo   = "C"
)

// SequenceRequest describes a listing of consecutive terms.
type SequenceRequest struct {
	// Family is the registry name of the sequence family.
	Family string
	// Params carries the progression parameters; Params.Index is the first
	// listed index.
	Params sequence.Params
	// Count is the number of terms to list.
	Count int
}

// Service defines the operations offered to the outer layers.
type Service interface {
	// Limits returns the per-request limits the service enforces.
	Limits() config.Limits
	// Families returns the registered family names in alphabetical order.
	Families() []string
	// NewCursor creates a cursor positioned on p.Index.
	NewCursor(family string, p sequence.Params) (sequence.Stepper, error)
	// Sequence lists req.Count terms starting at req.Params.Index.
	Sequence(ctx context.Context, req SequenceRequest) (models.SequenceResult, error)
	// Verify seeks to index and walks to it one step at a time, and
	// reports whether both paths reach the same term.
	Verify(ctx context.Context, family string, p sequence.Params, index uint64) (models.VerifyResult, error)
	// Triangle returns the first rows rows of Pascal's triangle.
	Triangle(ctx context.Context, rows int) (models.TriangleResult, error)
	// Binomial computes C(n, k) with both variants.
	Binomial(ctx context.Context, k, n uint64) (models.BinomialResult, error)
	// Josephus computes the survivor with both variants.
	Josephus(ctx context.Context, k, n uint64) (models.JosephusResult, error)
	// Hanoi streams the moves of the chosen solver to w.
	Hanoi(ctx context.Context, w io.Writer, disks uint, variant string) (models.HanoiResult, error)
}

// SequenceService implements Service on top of a family Factory and a
// Pascal row table.
type SequenceService struct {
	factory *sequence.Factory
	table   *pascal.Table
	limits  config.Limits
	logger  logging.Logger
	tracer  trace.Tracer
}

var _ Service = (*SequenceService)(nil)

// NewSequenceService creates a SequenceService.
//
// Parameters:
//   - factory: The family registry cursors are created from.
//   - limits: The per-request limits.
//   - logger: The logger receiving one debug entry per operation; nil
//     disables logging.
//
// Returns:
//   - *SequenceService: The service.
//   - error: An error if the Pascal row cache cannot be created.
func NewSequenceService(factory *sequence.Factory, limits config.Limits, logger logging.Logger) (*SequenceService, error) {
	table, err := pascal.NewTable(pascal.DefaultRowCacheSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &SequenceService{
		factory: factory,
		table:   table,
		limits:  limits,
		logger:  logger,
		tracer:  otel.Tracer("github.com/agbru/seqcalc/internal/service"),
	}, nil
}

// Limits returns the limits the service enforces.
func (s *SequenceService) Limits() config.Limits {
	return s.limits
}

// track starts a span for op and returns the derived context and a
// function that closes the span and records metrics and a log entry.
func (s *SequenceService) track(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	start := time.Now()
	return ctx, func(err error) {
		elapsed := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		operationsTotal.WithLabelValues(op, status).Inc()
		operationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
		fields := []logging.Field{
			logging.String("op", op),
			logging.String("status", status),
			logging.Float64("duration", elapsed.Seconds()),
		}
		for _, a := range attrs {
			if a.Key == "family" {
				fields = append(fields, logging.Family(a.Value.AsString()))
			}
		}
		s.logger.Debug("operation completed", fields...)
	}
}

// classify turns library and context errors into apperrors types.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsValidation(err):
		return err
	case errors.Is(err, sequence.ErrUnknownFamily):
		return apperrors.ValidationError{Field: "family", Message: err.Error(), Cause: err}
	case errors.Is(err, sequence.ErrZeroRatio):
		return apperrors.ValidationError{Field: "ratio", Message: err.Error(), Cause: err}
	case errors.Is(err, pascal.ErrKGreaterThanN):
		return apperrors.ValidationError{Field: "k", Message: err.Error(), Cause: err}
	case errors.Is(err, josephus.ErrEmptyCircle):
		return apperrors.ValidationError{Field: "n", Message: err.Error(), Cause: err}
	case errors.Is(err, hanoi.ErrPegsNotDistinct):
		return apperrors.ValidationError{Field: "pegs", Message: err.Error(), Cause: err}
	default:
		return apperrors.NewComputationError(op, err)
	}
}

func limitError(field string, value any, limit any) error {
	return apperrors.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%v exceeds the maximum of %v", value, limit),
		Value:   value,
		Cause:   ErrLimitExceeded,
	}
}

// seek moves c forward to target, checking ctx between chunks.
func seek(ctx context.Context, c sequence.Stepper, target uint64) error {
	for c.Index() < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Forward(min(seekChunk, target-c.Index()))
	}
	return nil
}

// walk moves c forward to target one Next at a time.
func walk(ctx context.Context, c sequence.Stepper, target uint64) error {
	for c.Index() < target {
		if c.Index()%seekChunk == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		c.Next()
	}
	return nil
}

// Families returns the registered family names.
func (s *SequenceService) Families() []string {
	return s.factory.List()
}

// NewCursor creates a cursor on p.Index. The index is bounded by
// Limits.MaxIndex.
func (s *SequenceService) NewCursor(family string, p sequence.Params) (sequence.Stepper, error) {
	if p.Index > s.limits.MaxIndex {
		return nil, limitError("index", p.Index, s.limits.MaxIndex)
	}
	c, err := s.factory.Create(family, p)
	return c, classify("cursor", err)
}

func (s *SequenceService) cursorAt(ctx context.Context, family string, p sequence.Params, index uint64) (sequence.Stepper, error) {
	p.Index = 0
	c, err := s.factory.Create(family, p)
	if err != nil {
		return nil, err
	}
	if err := seek(ctx, c, index); err != nil {
		return nil, err
	}
	return c, nil
}

// Sequence lists consecutive terms of one family.
func (s *SequenceService) Sequence(ctx context.Context, req SequenceRequest) (res models.SequenceResult, err error) {
	ctx, done := s.track(ctx, "sequence",
		attribute.String("family", req.Family),
		attribute.Int64("index", int64(req.Params.Index)),
		attribute.Int("count", req.Count),
	)
	defer func() { done(err) }()

	if req.Count <= 0 || req.Count > s.limits.MaxCount {
		return res, apperrors.ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("must be between 1 and %d", s.limits.MaxCount),
			Value:   req.Count,
			Cause:   ErrLimitExceeded,
		}
	}
	last := req.Params.Index + uint64(req.Count) - 1
	if req.Params.Index > s.limits.MaxIndex || last > s.limits.MaxIndex {
		return res, limitError("index", last, s.limits.MaxIndex)
	}

	c, err := s.cursorAt(ctx, req.Family, req.Params, req.Params.Index)
	if err != nil {
		return res, classify("sequence", err)
	}

	res = models.SequenceResult{Family: c.Family(), Exact: c.Exact(), Terms: make([]models.Term, 0, req.Count)}
	for i := 0; i < req.Count; i++ {
		res.Terms = append(res.Terms, models.Term{Index: c.Index(), Value: c.Format()})
		if i+1 < req.Count {
			c.Next()
		}
	}
	termsTotal.WithLabelValues(res.Family).Add(float64(req.Count))
	return res, nil
}

// Verify compares the cursor fast path with a naive walk on one index. A
// disagreement is reported in the result, not as an error.
func (s *SequenceService) Verify(ctx context.Context, family string, p sequence.Params, index uint64) (res models.VerifyResult, err error) {
	ctx, done := s.track(ctx, "verify",
		attribute.String("family", family),
		attribute.Int64("index", int64(index)),
	)
	defer func() { done(err) }()

	if index > s.limits.MaxIndex {
		return res, limitError("index", index, s.limits.MaxIndex)
	}

	sought, err := s.cursorAt(ctx, family, p, index)
	if err != nil {
		return res, classify("verify", err)
	}
	p.Index = 0
	walked, err := s.factory.Create(family, p)
	if err != nil {
		return res, classify("verify", err)
	}
	if err := walk(ctx, walked, index); err != nil {
		return res, classify("verify", err)
	}

	return models.VerifyResult{
		Family: family,
		Index:  index,
		Seek:   sought.Format(),
		Walk:   walked.Format(),
		Match:  sequence.SameTerm(sought, walked),
	}, nil
}

// Triangle returns the first rows rows of Pascal's triangle.
func (s *SequenceService) Triangle(ctx context.Context, rows int) (res models.TriangleResult, err error) {
	_, done := s.track(ctx, "triangle", attribute.Int("rows", rows))
	defer func() { done(err) }()

	if rows > s.limits.MaxPascalRows {
		return res, limitError("rows", rows, s.limits.MaxPascalRows)
	}
	return models.TriangleResult{Rows: pascal.Triangle(rows)}, nil
}

// Binomial computes C(n, k) by table lookup and multiplicatively.
func (s *SequenceService) Binomial(ctx context.Context, k, n uint64) (res models.BinomialResult, err error) {
	_, done := s.track(ctx, "binomial",
		attribute.Int64("k", int64(k)),
		attribute.Int64("n", int64(n)),
	)
	defer func() { done(err) }()

	if n > s.limits.MaxBinomialN {
		return res, limitError("n", n, s.limits.MaxBinomialN)
	}
	table, err := s.table.Binomial(k, n)
	if err != nil {
		return res, classify("binomial", err)
	}
	iter, err := pascal.BinomialIterative(k, n)
	if err != nil {
		return res, classify("binomial", err)
	}
	return models.BinomialResult{
		K:          k,
		N:          n,
		Table:      strconv.FormatUint(table, 10),
		Iterative:  strconv.FormatUint(iter, 10),
		Consistent: table == iter,
	}, nil
}

// Josephus computes the survivor recursively and iteratively.
func (s *SequenceService) Josephus(ctx context.Context, k, n uint64) (res models.JosephusResult, err error) {
	_, done := s.track(ctx, "josephus",
		attribute.Int64("k", int64(k)),
		attribute.Int64("n", int64(n)),
	)
	defer func() { done(err) }()

	if n > s.limits.MaxJosephusN {
		return res, limitError("n", n, s.limits.MaxJosephusN)
	}
	rec, err := josephus.Recursive(k, n)
	if err != nil {
		return res, classify("josephus", err)
	}
	it, err := josephus.Iterative(k, n)
	if err != nil {
		return res, classify("josephus", err)
	}
	return models.JosephusResult{K: k, N: n, Recursive: rec, Iterative: it, Consistent: rec == it}, nil
}

// ctxWriter fails writes once its context is done, which stops a Hanoi
// solver at the next move.
type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (c ctxWriter) Write(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.w.Write(p)
}

// Hanoi runs the solver named by variant on pegs A, C (target) and B
// (spare), streaming the moves to w.
func (s *SequenceService) Hanoi(ctx context.Context, w io.Writer, disks uint, variant string) (res models.HanoiResult, err error) {
	ctx, done := s.track(ctx, "hanoi",
		attribute.Int("disks", int(disks)),
		attribute.String("variant", variant),
	)
	defer func() { done(err) }()

	var solve func(io.Writer, uint, string, string, string) (uint64, error)
	maxDisks := s.limits.MaxHanoiDisks
	switch variant {
	case config.VariantClassic:
		solve = hanoi.Classic
	case config.VariantIterative:
		solve = hanoi.Iterative
	case config.VariantRestricted:
		solve = hanoi.Restricted
		maxDisks = s.limits.MaxRestrictedDisks
	default:
		return res, apperrors.NewValidationError("variant", fmt.Sprintf("unknown hanoi variant %q", variant), variant)
	}
	if disks > maxDisks {
		return res, limitError("disks", disks, maxDisks)
	}

	// A nil w stays nil so the solver reports hanoi.ErrNilWriter.
	var sink io.Writer
	if w != nil {
		sink = ctxWriter{ctx: ctx, w: w}
	}
	count, err := solve(sink, disks, PegFrom, PegTo, PegVia)
	hanoiMovesTotal.WithLabelValues(variant).Add(float64(count))
	if err != nil {
		return res, classify("hanoi", err)
	}
	return models.HanoiResult{Disks: disks, Variant: variant, Count: count}, nil
}
