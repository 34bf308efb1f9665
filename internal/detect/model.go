package detect

import "time"

// ContentKind identifies what kind of content a request carries.
type ContentKind string

const (
	KindText     ContentKind = "text"
	KindImage    ContentKind = "image"
	KindVideo    ContentKind = "video"
	KindDocument ContentKind = "document"
)

// Label is a classifier verdict.
type Label string

const (
	LabelAI      Label = "ai"
	LabelHuman   Label = "human"
	LabelUnknown Label = "unknown"
)

// Stage status values. Every stage ends terminal (completed or failed)
// before a run produces its result.
const (
	StageRunning   = "running"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// Evidence source IDs. SourceWebSearch is the designated source the fusion
// engine interprets through its similarity rule instead of a direct label.
const (
	SourceReasoning = "reasoning"
	SourcePatterns  = "patterns"
	SourceWebSearch = "web-search"
	SourceHeuristic = "local-heuristic"
)

// AnalysisRequest is a classification request. Immutable once created.
type AnalysisRequest struct {
	Content  string      `json:"content"`
	Binary   []byte      `json:"-"`
	FileName string      `json:"fileName,omitempty"`
	MimeType string      `json:"mimeType,omitempty"`
	Kind     ContentKind `json:"kind"`
}

// ErrorInfo captures a stage failure without failing the run.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PipelineStage records one unit of pipeline work. Stages belong to the run
// that created them and are never reused.
type PipelineStage struct {
	Index      int        `json:"index"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
	Error      *ErrorInfo `json:"error,omitempty"`
}

// EvidenceItem is one classifier's opinion about a piece of content.
// Never mutated after a stage produces it.
type EvidenceItem struct {
	SourceID   string  `json:"sourceId"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Weight     float64 `json:"weight"`
	Rationale  string  `json:"rationale"`
	// Similarity is only meaningful for SourceWebSearch evidence, where the
	// fusion engine derives the label split from it.
	Similarity float64 `json:"similarity,omitempty"`
}

// AnalysisResult is the composed outcome of a classification run.
type AnalysisResult struct {
	ID                  string          `json:"id"`
	Kind                ContentKind     `json:"kind"`
	Label               Label           `json:"label"`
	Confidence          float64         `json:"confidence"`
	AIProbabilityPct    int             `json:"aiProbabilityPct"`
	HumanProbabilityPct int             `json:"humanProbabilityPct"`
	Explanation         string          `json:"explanation"`
	Stages              []PipelineStage `json:"stages"`
	Evidence            []EvidenceItem  `json:"evidence"`
	CreatedAt           time.Time       `json:"createdAt"`
}
