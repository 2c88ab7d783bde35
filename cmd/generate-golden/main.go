package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData is one expected term of an integer family.
type GoldenData struct {
	Family string `json:"family"`
	Index  uint64 `json:"index"`
	Value  string `json:"value"`
}

// Largest indices whose terms fit the cursor value types: int64 for the
// two-term recurrences and uint64 for Catalan.
const (
	maxFibonacci = 92
	maxLucas     = 90
	maxCatalan   = 36
)

func main() {
	outputDir := flag.String("out", "pkg/sequence/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "sequence_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var data []GoldenData
	add := func(family string, indices []uint64, term func(uint64) *big.Int) {
		for _, n := range indices {
			data = append(data, GoldenData{Family: family, Index: n, Value: term(n).String()})
		}
	}
	add("fibonacci", []uint64{0, 1, 2, 3, 10, 20, 50, 64, 80, 91, maxFibonacci}, func(n uint64) *big.Int {
		return linear(n, big.NewInt(0), big.NewInt(1))
	})
	add("lucas", []uint64{0, 1, 2, 3, 10, 20, 50, 64, 80, 89, maxLucas}, func(n uint64) *big.Int {
		return linear(n, big.NewInt(2), big.NewInt(1))
	})
	add("catalan", []uint64{0, 1, 2, 3, 10, 20, 30, 34, 35, maxCatalan}, catalan)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated %d golden terms at %s\n", len(data), filename)
}

// linear returns term n of the recurrence x(i) = x(i-1) + x(i-2) seeded
// with x(0) = a and x(1) = b.
func linear(n uint64, a, b *big.Int) *big.Int {
	if n == 0 {
		return a
	}
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}

// catalan returns binomial(2n, n) / (n + 1).
func catalan(n uint64) *big.Int {
	c := new(big.Int).Binomial(int64(2*n), int64(n))
	return c.Div(c, new(big.Int).SetUint64(n+1))
}
