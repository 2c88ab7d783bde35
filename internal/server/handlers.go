package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/pkg/sequence"
)

// query reads typed parameters from a URL query. The first parse failure
// is kept in err and later reads become no-ops.
type query struct {
	values url.Values
	err    error
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) raw(name string) (string, bool) {
	if q.err != nil {
		return "", false
	}
	v := strings.TrimSpace(q.values.Get(name))
	return v, v != ""
}

func (q *query) fail(name, msg string) {
	q.err = ParseError{Param: name, Message: msg}
}

func (q *query) str(name, def string) string {
	if v, ok := q.raw(name); ok {
		return v
	}
	return def
}

func (q *query) uintParam(name string, def uint64) uint64 {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		q.fail(name, "must be a non-negative integer")
	}
	return n
}

func (q *query) requiredUint(name string) uint64 {
	if _, ok := q.raw(name); !ok {
		if q.err == nil {
			q.fail(name, "is required")
		}
		return 0
	}
	return q.uintParam(name, 0)
}

func (q *query) intParam(name string, def int) int {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, "must be an integer")
	}
	return n
}

func (q *query) floatParam(name string, def float64) float64 {
	v, ok := q.raw(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, "must be a number")
	}
	return f
}

func (q *query) boolParam(name string) bool {
	v, ok := q.raw(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, "must be true or false")
	}
	return b
}

// params reads the progression parameters shared by /sequence and /verify.
func (q *query) params() sequence.Params {
	return sequence.Params{
		Start: q.floatParam("start", config.DefaultStart),
		Step:  q.floatParam("step", config.DefaultStep),
		Ratio: q.floatParam("ratio", config.DefaultRatio),
	}
}

// requestContext bounds a service call by Timeouts.RequestTimeout.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
}

// handleHealth reports that the server is up, and which build is serving.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now().Unix(), Build: s.build})
}

// handleFamilies lists the registered sequence families.
func (s *Server) handleFamilies(w http.ResponseWriter, _ *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, FamiliesResponse{Families: s.service.Families()})
}

// handleSequence lists count consecutive terms of one family starting at
// index. With verify=true the last listed index is also checked by a
// naive walk.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	family := q.str("family", config.DefaultFamily)
	p := q.params()
	p.Index = q.uintParam("index", 0)
	count := q.intParam("count", config.DefaultCount)
	verify := q.boolParam("verify")
	if q.err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	res, err := s.service.Sequence(ctx, service.SequenceRequest{Family: family, Params: p, Count: count})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	resp := SequenceResponse{SequenceResult: res}
	if verify {
		v, err := s.service.Verify(ctx, family, p, p.Index+uint64(count)-1)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		resp.Verify = &v
	}
	resp.Duration = time.Since(start).String()
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleVerify compares seeking and walking on one index.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	family := q.str("family", config.DefaultFamily)
	p := q.params()
	index := q.requiredUint("index")
	if q.err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	res, err := s.service.Verify(ctx, family, p, index)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, res)
}

// handlePascal returns the first rows rows of the triangle.
func (s *Server) handlePascal(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	rows := q.intParam("rows", config.DefaultRows)
	if q.err == nil && rows < 0 {
		q.fail("rows", "must be a non-negative integer")
	}
	if q.err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	res, err := s.service.Triangle(ctx, rows)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	res.Duration = time.Since(start).String()
	s.writeJSONResponse(w, http.StatusOK, res)
}

// handleBinomial computes C(n, k).
func (s *Server) handleBinomial(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	k := q.requiredUint("k")
	n := q.requiredUint("n")
	if q.err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	res, err := s.service.Binomial(ctx, k, n)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	res.Duration = time.Since(start).String()
	s.writeJSONResponse(w, http.StatusOK, res)
}

// handleJosephus computes the survivor of a circle of n with step k.
func (s *Server) handleJosephus(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	k := q.requiredUint("k")
	n := q.requiredUint("n")
	if q.err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	res, err := s.service.Josephus(ctx, k, n)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	res.Duration = time.Since(start).String()
	s.writeJSONResponse(w, http.StatusOK, res)
}

// handleHanoi solves the puzzle for n disks. The move log is returned only
// with moves=true and at most SecurityConfig.MaxHanoiLogDisks disks;
// otherwise the moves are counted and discarded.
func (s *Server) handleHanoi(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	disks := q.requiredUint("n")
	variant := q.str("variant", config.DefaultVariant)
	withMoves := q.boolParam("moves")
	if q.err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}
	if withMoves && disks > uint64(s.securityConfig.MaxHanoiLogDisks) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("the move log is limited to %d disks; use moves=false for a count", s.securityConfig.MaxHanoiLogDisks))
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	var log bytes.Buffer
	var sink io.Writer = io.Discard
	if withMoves {
		sink = &log
	}

	start := time.Now()
	res, err := s.service.Hanoi(ctx, sink, uint(disks), variant)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if withMoves {
		res.Moves = strings.Split(strings.TrimSuffix(log.String(), "\n"), "\n")
		if log.Len() == 0 {
			res.Moves = []string{}
		}
	}
	res.Duration = time.Since(start).String()
	s.writeJSONResponse(w, http.StatusOK, res)
}

// writeServiceError maps a service error to a status code: 400 for invalid
// input and limit violations, 504 when the request timed out, 503 when the
// client went away, and 500 for anything else.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout,
			fmt.Sprintf("computation exceeded the request timeout of %s", s.timeouts.RequestTimeout))
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "request canceled")
	default:
		s.logger.Error("service call failed", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", logging.Err(err))
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
