package parser

import (
	"fmt"
	"testing"

	"github.com/quodlibetor/jsonlogprint/internal/model"
)

// BenchmarkParse measures single-line parsing throughput with the reusable
// field map, the shape of the hot per-line path.
func BenchmarkParse(b *testing.B) {
	m := model.NewFieldMap(24)
	line := `{"timestamp":1627494000123,"level":"error","message":"disk full","service":"api","request_id":"abc-123"}`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := Parse(line, m); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseNested measures parsing with nested objects and arrays.
func BenchmarkParseNested(b *testing.B) {
	m := model.NewFieldMap(24)
	line := `{"timestamp":1627494000,"level":"info","ctx":{"user":{"id":41,"name":"alice"},"tags":["a","b","c"]}}`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := Parse(line, m); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseThroughput measures sustained parsing over a diverse batch.
func BenchmarkParseThroughput(b *testing.B) {
	m := model.NewFieldMap(24)
	lines := make([]string, 1000)
	for i := range lines {
		switch i % 3 {
		case 0:
			lines[i] = fmt.Sprintf(`{"timestamp":%d,"level":"info","message":"request %d completed","latency_ms":42}`, 1627494000+i, i)
		case 1:
			lines[i] = fmt.Sprintf(`{"level":"warn","message":"slow query","query_ms":%d}`, i*10)
		case 2:
			lines[i] = fmt.Sprintf(`{"level":"error","err":"failed to process item %d","attempt":[1,2,3]}`, i)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := Parse(lines[i%1000], m); err != nil {
			b.Fatal(err)
		}
	}
}
