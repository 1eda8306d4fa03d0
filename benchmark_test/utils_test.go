package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/geobuf"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/testutil"
)

const seed = 42

var sizes = []int{1000, 10000}

func formatCount(n int) string {
	switch {
	case n >= 1_000_000 && n%1_000_000 == 0:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n >= 1000 && n%1000 == 0:
		return fmt.Sprintf("%dK", n/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func setupPolygons(b *testing.B, rows int) *dataset.Dataset {
	b.Helper()
	ds, err := geobuf.NewPolygons(testutil.NewRNG(seed).MultiPolygons(rows, 16, 2, 1))
	if err != nil {
		b.Fatal(err)
	}
	return ds
}
