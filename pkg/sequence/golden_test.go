package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// GoldenData is one expected term produced by cmd/generate-golden.
type GoldenData struct {
	Family string `json:"family"`
	Index  uint64 `json:"index"`
	Value  string `json:"value"`
}

func TestFamiliesAgainstGoldenFile(t *testing.T) {
	t.Parallel()
	file, err := os.Open(filepath.Join("testdata", "sequence_golden.json"))
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run ./cmd/generate-golden'?", err)
	}
	defer file.Close()

	var cases []GoldenData
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}

	factory := NewFactory()
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%d", tc.Family, tc.Index), func(t *testing.T) {
			t.Parallel()

			sought, err := factory.Create(tc.Family, Params{Index: tc.Index})
			if err != nil {
				t.Fatal(err)
			}
			if got := sought.Format(); got != tc.Value {
				t.Errorf("seek: got %s, want %s", got, tc.Value)
			}

			walked, _ := factory.Create(tc.Family, Params{})
			for walked.Index() < tc.Index {
				walked.Next()
			}
			if got := walked.Format(); got != tc.Value {
				t.Errorf("walk: got %s, want %s", got, tc.Value)
			}
			if tc.Family != FamilyCatalan || tc.Index < MaxExactCatalanIndex {
				walked.Next()
				walked.Previous()
				if got := walked.Format(); got != tc.Value {
					t.Errorf("next then previous: got %s, want %s", got, tc.Value)
				}
			}
		})
	}
}
