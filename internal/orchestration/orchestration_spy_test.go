package orchestration

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/agbru/seqcalc/internal/config"
	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/pkg/models"
	"github.com/agbru/seqcalc/pkg/sequence"
)

// SpyService records the requests it receives. Methods it does not
// override panic through the nil embedded interface.
type SpyService struct {
	service.Service

	mu          sync.Mutex
	requests    []service.SequenceRequest
	verifyIndex []uint64

	sequenceErr error
	verifyErr   error
	mismatch    bool
}

func (s *SpyService) Sequence(_ context.Context, req service.SequenceRequest) (models.SequenceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.sequenceErr != nil {
		return models.SequenceResult{}, s.sequenceErr
	}
	terms := make([]models.Term, req.Count)
	for i := range terms {
		terms[i] = models.Term{Index: req.Params.Index + uint64(i), Value: "7"}
	}
	return models.SequenceResult{Family: req.Family, Exact: true, Terms: terms}, nil
}

func (s *SpyService) Verify(_ context.Context, family string, _ sequence.Params, index uint64) (models.VerifyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifyIndex = append(s.verifyIndex, index)
	if s.verifyErr != nil {
		return models.VerifyResult{}, s.verifyErr
	}
	walk := "7"
	if s.mismatch {
		walk = "8"
	}
	return models.VerifyResult{Family: family, Index: index, Seek: "7", Walk: walk, Match: !s.mismatch}, nil
}

// TestExecuteSequencesPassesConfig verifies that the progression parameters,
// the first index and the count reach the service unchanged, and that the
// last listed index is the one verified.
func TestExecuteSequencesPassesConfig(t *testing.T) {
	t.Parallel()
	spy := &SpyService{}
	cfg := config.AppConfig{Start: 1.5, Step: -2, Ratio: 4, Index: 40, Count: 3, Verify: true}

	results := ExecuteSequences(context.Background(), spy, []string{"arithmetic"}, cfg, io.Discard)

	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected results %+v", results)
	}
	want := service.SequenceRequest{
		Family: "arithmetic",
		Params: sequence.Params{Start: 1.5, Step: -2, Ratio: 4, Index: 40},
		Count:  3,
	}
	if len(spy.requests) != 1 || spy.requests[0] != want {
		t.Errorf("requests = %+v, want %+v", spy.requests, want)
	}
	if len(spy.verifyIndex) != 1 || spy.verifyIndex[0] != 42 {
		t.Errorf("verified indices = %v, want [42]", spy.verifyIndex)
	}
}
