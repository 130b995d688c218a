package sorting

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/matst80/slask-view/pkg/types"
)

/*
Measures Sort for a few collection sizes on a numeric and a string field.
Record construction happens outside the timed loop.
*/

func makeRecords(n int) []types.Record {
	r := rand.New(rand.NewPCG(1, 2))
	records := make([]types.Record, n)
	for i := range records {
		records[i] = types.Record{
			"id":    i,
			"name":  fmt.Sprintf("Item %d", r.IntN(n)),
			"price": r.Float64() * 1000,
		}
	}
	return records
}

func BenchmarkSort(b *testing.B) {
	for _, n := range []int{100, 1_000, 10_000} {
		records := makeRecords(n)
		for _, key := range []string{"price", "name"} {
			b.Run(fmt.Sprintf("%s_%d", key, n), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					_ = Sort(records, key, types.SortDescending)
				}
			})
		}
	}
}
