package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/pkg/hanoi"
	"github.com/agbru/seqcalc/pkg/pascal"
	"github.com/agbru/seqcalc/pkg/sequence"
)

func newTestService(t *testing.T) *SequenceService {
	t.Helper()
	svc, err := NewSequenceService(sequence.NewFactory(), config.DefaultLimits(), logging.Nop())
	require.NoError(t, err)
	return svc
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve apperrors.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	require.Equal(t, field, ve.Field)
	require.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
}

func TestSequence(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Sequence(ctx, SequenceRequest{Family: sequence.FamilyFibonacci, Params: sequence.Params{Index: 10}, Count: 3})
	require.NoError(t, err)
	require.Equal(t, sequence.FamilyFibonacci, res.Family)
	require.True(t, res.Exact)
	require.Len(t, res.Terms, 3)
	require.Equal(t, uint64(10), res.Terms[0].Index)
	require.Equal(t, []string{"55", "89", "144"}, []string{res.Terms[0].Value, res.Terms[1].Value, res.Terms[2].Value})

	res, err = svc.Sequence(ctx, SequenceRequest{
		Family: sequence.FamilyArithmetic,
		Params: sequence.Params{Start: 2, Step: 3},
		Count:  2,
	})
	require.NoError(t, err)
	require.False(t, res.Exact)
	require.Equal(t, "5", res.Terms[1].Value)
}

func TestSequence_Validation(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()
	limits := config.DefaultLimits()

	_, err := svc.Sequence(ctx, SequenceRequest{Family: "padovan", Count: 1})
	requireValidation(t, err, "family")
	require.ErrorIs(t, err, sequence.ErrUnknownFamily)

	_, err = svc.Sequence(ctx, SequenceRequest{Family: sequence.FamilyGeometric, Params: sequence.Params{Start: 1}, Count: 1})
	requireValidation(t, err, "ratio")
	require.ErrorIs(t, err, sequence.ErrZeroRatio)

	_, err = svc.Sequence(ctx, SequenceRequest{Family: sequence.FamilyLucas, Count: 0})
	requireValidation(t, err, "count")

	_, err = svc.Sequence(ctx, SequenceRequest{Family: sequence.FamilyLucas, Params: sequence.Params{Index: limits.MaxIndex}, Count: 2})
	requireValidation(t, err, "index")
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestSequence_Canceled(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Sequence(ctx, SequenceRequest{Family: sequence.FamilyFibonacci, Params: sequence.Params{Index: 1000}, Count: 1})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, apperrors.ExitErrorCanceled, apperrors.ExitCode(err))
}

func TestVerify_ProgressionThroughZero(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	// Seeking lands on exactly 0 while ten steps of -0.1 leave ~1.4e-16.
	res, err := svc.Verify(context.Background(), sequence.FamilyArithmetic, sequence.Params{Start: 1, Step: -0.1}, 10)
	require.NoError(t, err)
	require.True(t, res.Match, "seek %s walk %s", res.Seek, res.Walk)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	for _, family := range svc.Families() {
		res, err := svc.Verify(ctx, family, sequence.Params{Start: 1, Step: 2, Ratio: 2}, 30)
		require.NoError(t, err, family)
		require.True(t, res.Match, "%s: seek %s walk %s", family, res.Seek, res.Walk)
	}

	// Catalan has no closed form, so both paths wrap identically past 36.
	res, err := svc.Verify(ctx, sequence.FamilyCatalan, sequence.Params{}, 60)
	require.NoError(t, err)
	require.True(t, res.Match)
}

func TestNewCursor(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	c, err := svc.NewCursor(sequence.FamilyLucas, sequence.Params{Index: 4})
	require.NoError(t, err)
	require.Equal(t, "7", c.Format())

	_, err = svc.NewCursor(sequence.FamilyLucas, sequence.Params{Index: config.DefaultLimits().MaxIndex + 1})
	requireValidation(t, err, "index")
}

func TestCombinatorics(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	tri, err := svc.Triangle(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, [][]uint64{{1}, {1, 1}, {1, 2, 1}, {1, 3, 3, 1}}, tri.Rows)

	_, err = svc.Triangle(ctx, 1000)
	requireValidation(t, err, "rows")

	bin, err := svc.Binomial(ctx, 2, 5)
	require.NoError(t, err)
	require.Equal(t, "10", bin.Table)
	require.True(t, bin.Consistent)

	_, err = svc.Binomial(ctx, 6, 5)
	requireValidation(t, err, "k")
	require.ErrorIs(t, err, pascal.ErrKGreaterThanN)

	jos, err := svc.Josephus(ctx, 2, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(2), jos.Recursive)
	require.True(t, jos.Consistent)

	_, err = svc.Josephus(ctx, 2, 0)
	requireValidation(t, err, "n")
}

func TestHanoi(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := svc.Hanoi(ctx, &buf, 3, config.VariantRestricted)
	require.NoError(t, err)
	require.Equal(t, uint64(26), res.Count)
	require.Equal(t, 26, strings.Count(buf.String(), "\n"))
	require.True(t, strings.HasPrefix(buf.String(), "move disk 1 from A to B\n"))

	_, err = svc.Hanoi(ctx, io.Discard, 3, "cyclic")
	requireValidation(t, err, "variant")

	_, err = svc.Hanoi(ctx, io.Discard, 13, config.VariantRestricted)
	requireValidation(t, err, "disks")
}

func TestHanoi_NilWriter(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	var err error
	require.NotPanics(t, func() {
		_, err = svc.Hanoi(context.Background(), nil, 3, config.VariantClassic)
	})
	require.ErrorIs(t, err, hanoi.ErrNilWriter)
}

func TestHanoi_CanceledStopsWriting(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	res, err := svc.Hanoi(ctx, &buf, 10, config.VariantClassic)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, res.Count)
	require.Zero(t, buf.Len())

	var ce apperrors.ComputationError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "hanoi", ce.Op)
}

func TestTrackLogsOperations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc, err := NewSequenceService(sequence.NewFactory(), config.DefaultLimits(), logging.NewLogger(&buf, "service", "debug"))
	require.NoError(t, err)

	_, err = svc.Josephus(context.Background(), 3, 7)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"op":"josephus"`)
	require.Contains(t, buf.String(), `"status":"success"`)
}

func TestTrackLogsFamily(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc, err := NewSequenceService(sequence.NewFactory(), config.DefaultLimits(), logging.NewLogger(&buf, "service", "debug"))
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), sequence.FamilyLucas, sequence.Params{}, 12)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"op":"verify"`)
	require.Contains(t, buf.String(), `"family":"lucas"`)
}
