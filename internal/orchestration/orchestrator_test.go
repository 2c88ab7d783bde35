package orchestration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/internal/testutil"
	"github.com/agbru/seqcalc/pkg/models"
	"github.com/agbru/seqcalc/pkg/sequence"
)

func baseConfig() config.AppConfig {
	return config.AppConfig{
		Start: 2, Step: 3, Ratio: 2,
		Index: 5, Count: 4,
		Verify: true,
	}
}

// TestExecuteSequences runs every built-in family through the real service.
func TestExecuteSequences(t *testing.T) {
	t.Parallel()
	svc, err := service.NewSequenceService(sequence.NewFactory(), config.DefaultLimits(), nil)
	if err != nil {
		t.Fatal(err)
	}
	families := svc.Families()

	results := ExecuteSequences(context.Background(), svc, families, baseConfig(), io.Discard)
	if len(results) != len(families) {
		t.Fatalf("got %d results, want %d", len(results), len(families))
	}

	lastTerms := map[string]string{
		"arithmetic": "26",  // 2 + 3*8
		"geometric":  "512", // 2 * 2^8
		"fibonacci":  "21",
		"lucas":      "47",
		"catalan":    "1430",
	}
	for i, r := range results {
		if r.Family != families[i] {
			t.Errorf("result %d is %s, want %s", i, r.Family, families[i])
		}
		if r.Err != nil {
			t.Errorf("%s failed: %v", r.Family, r.Err)
			continue
		}
		if len(r.Sequence.Terms) != 4 || r.Sequence.Terms[0].Index != 5 {
			t.Errorf("%s terms = %+v", r.Family, r.Sequence.Terms)
			continue
		}
		if got := r.Sequence.Terms[3].Value; got != lastTerms[r.Family] {
			t.Errorf("%s term 8 = %s, want %s", r.Family, got, lastTerms[r.Family])
		}
		if r.Verify == nil || !r.Verify.Match || r.Verify.Index != 8 {
			t.Errorf("%s verify = %+v", r.Family, r.Verify)
		}
		if r.Sequence.Duration == "" {
			t.Errorf("%s duration not recorded", r.Family)
		}
	}
}

func TestExecuteSequencesCanceled(t *testing.T) {
	t.Parallel()
	svc, err := service.NewSequenceService(sequence.NewFactory(), config.DefaultLimits(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := baseConfig()
	cfg.Index = 5_000_000
	results := ExecuteSequences(ctx, svc, []string{"fibonacci"}, cfg, io.Discard)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err)
	}
}

func TestExecuteSequencesErrors(t *testing.T) {
	t.Parallel()

	t.Run("sequence error skips verify", func(t *testing.T) {
		t.Parallel()
		spy := &SpyService{sequenceErr: apperrors.NewValidationError("ratio", "must be non-zero", 0.0)}
		results := ExecuteSequences(context.Background(), spy, []string{"geometric", "lucas"}, baseConfig(), io.Discard)
		for _, r := range results {
			if !apperrors.IsValidation(r.Err) {
				t.Errorf("%s: expected validation error, got %v", r.Family, r.Err)
			}
		}
		if len(spy.verifyIndex) != 0 {
			t.Errorf("verify called after failed listing: %v", spy.verifyIndex)
		}
	})

	t.Run("verify error", func(t *testing.T) {
		t.Parallel()
		spy := &SpyService{verifyErr: context.DeadlineExceeded}
		results := ExecuteSequences(context.Background(), spy, []string{"lucas"}, baseConfig(), io.Discard)
		if !errors.Is(results[0].Err, context.DeadlineExceeded) || results[0].Verify != nil {
			t.Errorf("unexpected result %+v", results[0])
		}
	})
}

func successResult(family string) FamilyResult {
	return FamilyResult{
		Family: family,
		Sequence: models.SequenceResult{
			Family: family, Exact: true,
			Terms: []models.Term{{Index: 0, Value: "2"}, {Index: 1, Value: "1"}},
		},
		Verify:   &models.VerifyResult{Family: family, Index: 1, Seek: "1", Walk: "1", Match: true},
		Duration: time.Millisecond,
	}
}

func TestAnalyzeResults(t *testing.T) {
	t.Parallel()

	mismatched := successResult("catalan")
	mismatched.Verify = &models.VerifyResult{Family: "catalan", Index: 1, Seek: "1", Walk: "2"}

	failed := FamilyResult{Family: "geometric", Err: apperrors.NewValidationError("ratio", "must be non-zero", 0.0)}
	timedOut := FamilyResult{Family: "fibonacci", Err: context.DeadlineExceeded}

	tests := []struct {
		name     string
		results  []FamilyResult
		cfg      config.AppConfig
		wantCode int
		contains []string
		excludes []string
	}{
		{
			name:     "single success",
			results:  []FamilyResult{successResult("lucas")},
			wantCode: apperrors.ExitSuccess,
			contains: []string{"lucas (exact)", "Verify lucas at index 1: seek=1 walk=1 OK"},
			excludes: []string{"Family Summary"},
		},
		{
			name:     "several families",
			results:  []FamilyResult{successResult("fibonacci"), successResult("lucas")},
			wantCode: apperrors.ExitSuccess,
			contains: []string{"--- Family Summary ---", "Verified"},
		},
		{
			name:     "mismatch",
			results:  []FamilyResult{successResult("lucas"), mismatched},
			wantCode: apperrors.ExitErrorMismatch,
			contains: []string{"Mismatch", "Status: Mismatch. catalan: index 1 seeks to 1 but walks to 2"},
		},
		{
			name:     "partial failure",
			results:  []FamilyResult{successResult("lucas"), failed},
			wantCode: apperrors.ExitErrorConfig,
			contains: []string{"lucas (exact)", "Failure (validation error for 'ratio'", "Status: Invalid input."},
		},
		{
			name:     "timeout",
			results:  []FamilyResult{timedOut},
			wantCode: apperrors.ExitErrorTimeout,
			contains: []string{"Status: Failure (Timeout)"},
		},
		{
			name:     "quiet",
			results:  []FamilyResult{successResult("fibonacci"), successResult("lucas")},
			cfg:      config.AppConfig{Quiet: true},
			wantCode: apperrors.ExitSuccess,
			excludes: []string{"Summary", "Verify", "(exact)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if code := AnalyzeResults(tt.results, tt.cfg, &buf); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			plain := testutil.StripAnsiCodes(buf.String())
			for _, s := range tt.contains {
				if !strings.Contains(plain, s) {
					t.Errorf("output does not contain %q:\n%s", s, plain)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(plain, s) {
					t.Errorf("output unexpectedly contains %q:\n%s", s, plain)
				}
			}
		})
	}
}

func TestAnalyzeResults_QuietValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := AnalyzeResults([]FamilyResult{successResult("lucas")}, config.AppConfig{Quiet: true}, &buf)
	if code != apperrors.ExitSuccess || buf.String() != "2\n1\n" {
		t.Errorf("code %d, output %q", code, buf.String())
	}
}

func TestAnalyzeResults_JSON(t *testing.T) {
	t.Parallel()
	failed := FamilyResult{Family: "geometric", Err: apperrors.NewValidationError("ratio", "must be non-zero", 0.0)}

	var buf bytes.Buffer
	code := AnalyzeResults([]FamilyResult{successResult("lucas"), failed}, config.AppConfig{JSONOutput: true}, &buf)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}

	var decoded []jsonFamilyResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d entries, want 2", len(decoded))
	}
	if decoded[0].Sequence == nil || decoded[0].Verify == nil || decoded[0].Error != "" {
		t.Errorf("success entry = %+v", decoded[0])
	}
	if decoded[1].Sequence != nil || !strings.Contains(decoded[1].Error, "ratio") {
		t.Errorf("failure entry = %+v", decoded[1])
	}
}
