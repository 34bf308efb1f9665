// Package metrics is the in-process monitoring sink. Recording is
// fire-and-forget: nothing here can fail a pipeline run.
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
	detectionStartedTotal    atomic.Uint64
	detectionCompletedTotal  atomic.Uint64
	detectionFailedTotal     atomic.Uint64
	detectionLabelAITotal    atomic.Uint64
	detectionLabelHumanTotal atomic.Uint64
	verificationTotal        atomic.Uint64
	cacheHitTotal            atomic.Uint64
	cacheMissTotal           atomic.Uint64

	detectionKindTotal      = newLabeledCounter()
	verificationStatusTotal = newLabeledCounter()

	detectionDuration    = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	verificationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	detectionConfidence  = newHistogram([]float64{0.2, 0.4, 0.6, 0.8, 0.9, 0.95, 1})
)

// IncDetectionStarted increments the started counter.
func IncDetectionStarted() {
	detectionStartedTotal.Add(1)
}

// IncDetectionFailed increments the failed (validation-rejected) counter.
func IncDetectionFailed() {
	detectionFailedTotal.Add(1)
}

// IncCacheHit increments the fingerprint-cache hit counter.
func IncCacheHit() {
	cacheHitTotal.Add(1)
}

// IncCacheMiss increments the fingerprint-cache miss counter.
func IncCacheMiss() {
	cacheMissTotal.Add(1)
}

// RecordDetection emits one monitoring record for a completed
// classification run: kind, label, confidence, latency.
func RecordDetection(kind, label string, confidence float64, latencyMs float64) {
	detectionCompletedTotal.Add(1)
	detectionKindTotal.Inc(kind)
	switch label {
	case "ai":
		detectionLabelAITotal.Add(1)
	case "human":
		detectionLabelHumanTotal.Add(1)
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	detectionConfidence.Observe(confidence)
	if latencyMs < 0 {
		latencyMs = 0
	}
	detectionDuration.Observe(latencyMs)
}

// RecordVerification emits one monitoring record for a completed
// verification run.
func RecordVerification(status string, latencyMs float64) {
	verificationTotal.Add(1)
	verificationStatusTotal.Inc(status)
	if latencyMs < 0 {
		latencyMs = 0
	}
	verificationDuration.Observe(latencyMs)
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
	writeCounter(&buf, "detection_started_total", "Total detections started", detectionStartedTotal.Load())
	writeCounter(&buf, "detection_completed_total", "Total detections completed", detectionCompletedTotal.Load())
	writeCounter(&buf, "detection_failed_total", "Total detections rejected", detectionFailedTotal.Load())
	writeCounter(&buf, "detection_label_ai_total", "Detections labeled AI", detectionLabelAITotal.Load())
	writeCounter(&buf, "detection_label_human_total", "Detections labeled human", detectionLabelHumanTotal.Load())
	writeCounter(&buf, "verification_completed_total", "Total verifications completed", verificationTotal.Load())
	writeCounter(&buf, "fingerprint_cache_hit_total", "Fingerprint cache hits", cacheHitTotal.Load())
	writeCounter(&buf, "fingerprint_cache_miss_total", "Fingerprint cache misses", cacheMissTotal.Load())
	writeLabeledCounter(&buf, "detection_kind_total", "Detections by content kind", "kind", detectionKindTotal.Snapshot())
	writeLabeledCounter(&buf, "verification_status_total", "Verifications by final status", "status", verificationStatusTotal.Snapshot())
	writeHistogram(&buf, "detection_confidence", "Final confidence of completed detections", detectionConfidence.Snapshot())
	writeHistogram(&buf, "detection_duration_ms", "Detection duration in milliseconds", detectionDuration.Snapshot())
	writeHistogram(&buf, "verification_duration_ms", "Verification duration in milliseconds", verificationDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{counts: make(map[string]uint64)}
}

func (lc *labeledCounter) Inc(label string) {
	if label == "" {
		label = "unknown"
	}
	lc.mu.Lock()
	lc.counts[label]++
	lc.mu.Unlock()
}

func (lc *labeledCounter) Snapshot() map[string]uint64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	out := make(map[string]uint64, len(lc.counts))
	for label, count := range lc.counts {
		out[label] = count
	}
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
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

func writeLabeledCounter(buf *bytes.Buffer, name, help, labelName string, counts map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, labelName, label, counts[label])
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
