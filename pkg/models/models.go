// Package models defines the result records shared by the service layer,
// the CLI's JSON output and the HTTP API.
//
// Integer values are carried as decimal strings so that uint64 terms above
// 2^53 survive JSON consumers that decode numbers as float64.
package models

// Term is one position of a sequence.
type Term struct {
	Index uint64 `json:"index"`
	Value string `json:"value"`
}

// SequenceResult lists consecutive terms of one family.
type SequenceResult struct {
	Family string `json:"family"`
	// Exact is false for the float64 progressions.
	Exact    bool   `json:"exact"`
	Terms    []Term `json:"terms"`
	Duration string `json:"duration,omitempty"`
}

// VerifyResult reports whether seeking and stepping agree on one index.
type VerifyResult struct {
	Family string `json:"family"`
	Index  uint64 `json:"index"`
	Seek   string `json:"seek"`
	Walk   string `json:"walk"`
	Match  bool   `json:"match"`
}

// TriangleResult holds the first rows of Pascal's triangle.
type TriangleResult struct {
	Rows     [][]uint64 `json:"rows"`
	Duration string     `json:"duration,omitempty"`
}

// BinomialResult holds C(n, k) as computed by both variants.
type BinomialResult struct {
	K          uint64 `json:"k"`
	N          uint64 `json:"n"`
	Table      string `json:"table"`
	Iterative  string `json:"iterative"`
	Consistent bool   `json:"consistent"`
	Duration   string `json:"duration,omitempty"`
}

// JosephusResult holds the 0-based survivor from both variants.
type JosephusResult struct {
	K          uint64 `json:"k"`
	N          uint64 `json:"n"`
	Recursive  uint64 `json:"recursive"`
	Iterative  uint64 `json:"iterative"`
	Consistent bool   `json:"consistent"`
	Duration   string `json:"duration,omitempty"`
}

// HanoiResult summarises a Hanoi run. The move log itself is streamed to a
// writer; Moves holds it only when the caller collected it.
type HanoiResult struct {
	Disks    uint     `json:"disks"`
	Variant  string   `json:"variant"`
	Count    uint64   `json:"count"`
	Moves    []string `json:"moves,omitempty"`
	Duration string   `json:"duration,omitempty"`
}

// BuildInfo identifies the running binary. It is printed by -version -json
// and reported by the server's health endpoint.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}
