package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	validationsTotal       atomic.Uint64
	validationsFailedTotal atomic.Uint64
	documentsCreatedTotal  atomic.Uint64

	transitions = newLabeledCounter()
	rejected    = newLabeledCounter()

	fileSizeMB = newHistogram([]float64{0.5, 1, 2, 5, 10, 20})
)

// IncValidation records a validation outcome.
func IncValidation(valid bool) {
	validationsTotal.Add(1)
	if !valid {
		validationsFailedTotal.Add(1)
	}
}

// IncDocumentCreated increments the created-documents counter.
func IncDocumentCreated() {
	documentsCreatedTotal.Add(1)
}

// ObserveFileSizeBytes records a candidate file size.
func ObserveFileSizeBytes(size int64) {
	if size < 0 {
		size = 0
	}
	fileSizeMB.Observe(float64(size) / (1 << 20))
}

// IncTransition counts an accepted status change for entity.
func IncTransition(entity, to string) {
	transitions.Inc(entity, to)
}

// IncTransitionRejected counts a status change refused by a state machine.
func IncTransitionRejected(entity, to string) {
	rejected.Inc(entity, to)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "document_validations_total", "Total candidate files validated", validationsTotal.Load())
	writeCounter(&buf, "document_validations_failed_total", "Total candidate files rejected by policy", validationsFailedTotal.Load())
	writeCounter(&buf, "documents_created_total", "Total document records created", documentsCreatedTotal.Load())
	writeLabeled(&buf, "status_transitions_total", "Accepted status transitions", transitions.Snapshot())
	writeLabeled(&buf, "status_transitions_rejected_total", "Rejected status transitions", rejected.Snapshot())
	writeHistogram(&buf, "document_file_size_mb", "Candidate file size in megabytes", fileSizeMB.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[[2]string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[[2]string]uint64)}
}

func (l *labeledCounter) Inc(entity, to string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[[2]string{entity, to}]++
}

type labeledValue struct {
	entity string
	to     string
	value  uint64
}

func (l *labeledCounter) Snapshot() []labeledValue {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]labeledValue, 0, len(l.values))
	for k, v := range l.values {
		out = append(out, labeledValue{entity: k[0], to: k[1], value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].entity != out[j].entity {
			return out[i].entity < out[j].entity
		}
		return out[i].to < out[j].to
	})
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket whose bound it fits; rendering accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeled(buf *bytes.Buffer, name, help string, values []labeledValue) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, v := range values {
		fmt.Fprintf(buf, "%s{entity=%q,to=%q} %d\n", name, v.entity, v.to, v.value)
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
