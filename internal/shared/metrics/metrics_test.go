package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var buf bytes.Buffer
	writeHistogram(&buf, "test_ms", "test", h.Snapshot())
	rendered := buf.String()
	for _, want := range []string{
		`test_ms_bucket{le="10"} 1`,
		`test_ms_bucket{le="100"} 2`,
		`test_ms_bucket{le="+Inf"} 3`,
		`test_ms_sum 555`,
		`test_ms_count 3`,
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in output:\n%s", want, rendered)
		}
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	IncResumeUploads()
	IncExtractionDegraded()
	out := Render()
	for _, name := range []string{
		"# TYPE resume_uploads_total counter",
		"# TYPE extraction_degraded_total counter",
		"# TYPE cover_letter_generation_duration_ms histogram",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %q in metrics output", name)
		}
	}
}
