package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"detector-backend/internal/cache"
	"detector-backend/internal/extract"
	"detector-backend/internal/history"
	"detector-backend/internal/patterns"
	"detector-backend/internal/reasoning"
	"detector-backend/internal/search"
	"detector-backend/internal/shared/metrics"
	"detector-backend/internal/shared/telemetry"
	"detector-backend/internal/verify"
)

// candidate labels handed to the pattern-classification service.
var patternCandidateLabels = []string{"ai-generated", "human-written"}

const (
	maxPromptChars  = 6000
	searchHitCount  = 5
	verifyKeySuffix = ":verify"
)

// Service is the pipeline orchestrator. Stages run sequentially in fixed
// order; a failing stage is recorded and skipped past, never fatal. The
// cache is injected so tests and callers can swap backends.
type Service struct {
	Reasoner reasoning.Client
	Patterns patterns.Client
	Searcher search.Client
	Cache    cache.Cache
	History  *history.Service
	Tunables Tunables
}

type stageDef struct {
	name    string
	timeout time.Duration
	run     func(ctx context.Context) (*EvidenceItem, error)
}

// RunClassification validates the request, runs the classification stages,
// fuses the surviving evidence, and caches the result by fingerprint. Only
// a ValidationError is ever returned as an error; every collaborator
// failure is absorbed into the result's stage list.
func (s *Service) RunClassification(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	startedAt := time.Now().UTC()
	metrics.IncDetectionStarted()

	if err := validateRequest(req, s.Tunables); err != nil {
		metrics.IncDetectionFailed()
		return AnalysisResult{}, err
	}

	text, err := s.resolveText(ctx, req)
	if err != nil {
		metrics.IncDetectionFailed()
		return AnalysisResult{}, err
	}

	key := s.fingerprint(req, text)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var result AnalysisResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, nil
		}
	}

	stages := s.classificationStages(req, text)

	var records []PipelineStage
	var evidence []EvidenceItem
	for i, def := range stages {
		record, item := s.runStage(ctx, i, def)
		records = append(records, record)
		if item != nil {
			evidence = append(evidence, *item)
		}
	}

	result := Fuse(evidence, s.Tunables)
	result.ID = uuid.NewString()
	result.Kind = req.Kind
	result.Stages = records
	result.CreatedAt = time.Now().UTC()

	s.cacheSet(ctx, key, result, s.Tunables.ClassificationTTL)

	latencyMs := float64(time.Since(startedAt).Microseconds()) / 1000.0
	metrics.RecordDetection(string(req.Kind), string(result.Label), result.Confidence, latencyMs)
	telemetry.Info("detection.complete", map[string]any{
		"detection_id": result.ID,
		"kind":         string(req.Kind),
		"label":        string(result.Label),
		"confidence":   result.Confidence,
		"evidence":     len(evidence),
		"duration_ms":  latencyMs,
	})

	s.History.Save(ctx, history.Record{
		ID:          result.ID,
		Kind:        string(req.Kind),
		Label:       string(result.Label),
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
		CreatedAt:   result.CreatedAt,
	})

	return result, nil
}

// RunVerification scores how verifiable text content is against web
// sources. Sub-step failures contribute neutral factors; like
// classification, only validation rejects the call.
func (s *Service) RunVerification(ctx context.Context, content string, kind ContentKind) (verify.Report, error) {
	startedAt := time.Now().UTC()

	if kind == "" {
		kind = KindText
	}
	if kind != KindText && kind != KindDocument {
		return verify.Report{}, &ValidationError{Field: "kind", Reason: "verification supports text content only"}
	}
	if len(strings.TrimSpace(content)) < s.Tunables.MinTextLength {
		return verify.Report{}, &ValidationError{Field: "content", Reason: fmt.Sprintf("must be at least %d characters", s.Tunables.MinTextLength)}
	}

	key := cache.Fingerprint(content, string(kind)+verifyKeySuffix)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var report verify.Report
		if err := json.Unmarshal(cached, &report); err == nil {
			return report, nil
		}
	}

	hits, outcome := s.collectHits(ctx, content)

	inputs := verify.Inputs{}
	if outcome == searchSucceeded {
		similarity := verify.AnalyzeSimilarity(content, hits)
		credibility := verify.AnalyzeCredibility(hits, s.Tunables.CredibleDomains)
		plagiarism := verify.AnalyzePlagiarism(content, hits)
		factCheck := verify.AnalyzeFactCheck(content, hits)
		inputs = verify.Inputs{
			Similarity:  &similarity,
			Credibility: &credibility,
			Plagiarism:  &plagiarism,
			FactCheck:   &factCheck,
		}
	}

	report := verify.Score(inputs)
	switch outcome {
	case searchUnavailable:
		report.RiskFactors = append(report.RiskFactors, "Web search was unavailable; content could not be checked against external sources")
	case searchNoFragments:
		report.RiskFactors = append(report.RiskFactors, "Content had no searchable fragments; it could not be checked against external sources")
	}

	s.cacheSet(ctx, key, report, s.Tunables.VerificationTTL)

	latencyMs := float64(time.Since(startedAt).Microseconds()) / 1000.0
	metrics.RecordVerification(report.Status, latencyMs)
	telemetry.Info("verification.complete", map[string]any{
		"kind":        string(kind),
		"status":      report.Status,
		"score":       report.OverallScore,
		"risks":       len(report.RiskFactors),
		"duration_ms": latencyMs,
	})

	return report, nil
}

// classificationStages builds the fixed stage order for a request. When no
// reasoning client is wired, the local heuristic classifier takes the
// reasoning slot for text content; a configured-but-failing reasoning call
// degrades the evidence set instead.
func (s *Service) classificationStages(req AnalysisRequest, text string) []stageDef {
	prompt := text
	if len(prompt) > maxPromptChars {
		prompt = prompt[:maxPromptChars]
	}

	var stages []stageDef

	if s.Reasoner == nil && len(req.Binary) == 0 {
		stages = append(stages, stageDef{
			name:    SourceHeuristic,
			timeout: s.Tunables.ReasoningTimeout,
			run: func(ctx context.Context) (*EvidenceItem, error) {
				item := ClassifyHeuristic(text)
				return &item, nil
			},
		})
	} else {
		stages = append(stages, stageDef{
			name:    SourceReasoning,
			timeout: s.Tunables.ReasoningTimeout,
			run: func(ctx context.Context) (*EvidenceItem, error) {
				if s.Reasoner == nil {
					return nil, reasoning.ErrNotConfigured
				}
				res, err := s.Reasoner.Reason(ctx, reasoning.Input{
					Text:  prompt,
					Image: req.Binary,
					Kind:  string(req.Kind),
				})
				if err != nil {
					return nil, err
				}
				return &EvidenceItem{
					SourceID:   SourceReasoning,
					Label:      mapLabel(res.Label),
					Confidence: res.Confidence,
					Weight:     1,
					Rationale:  res.Rationale,
				}, nil
			},
		})
	}

	if req.Kind == KindImage || req.Kind == KindVideo {
		return stages
	}

	stages = append(stages, stageDef{
		name:    SourcePatterns,
		timeout: s.Tunables.PatternsTimeout,
		run: func(ctx context.Context) (*EvidenceItem, error) {
			if s.Patterns == nil {
				return nil, patterns.ErrNotConfigured
			}
			cls, err := s.Patterns.Classify(ctx, prompt, patternCandidateLabels)
			if err != nil {
				return nil, err
			}
			label, score, ok := cls.Top()
			if !ok {
				return nil, fmt.Errorf("malformed classification: empty label table")
			}
			return &EvidenceItem{
				SourceID:   SourcePatterns,
				Label:      mapLabel(label),
				Confidence: score,
				Weight:     1,
				Rationale:  fmt.Sprintf("Pattern classifier scored %q at %.0f%%", label, score*100),
			}, nil
		},
	})

	stages = append(stages, stageDef{
		name:    SourceWebSearch,
		timeout: s.Tunables.SearchTimeout,
		run: func(ctx context.Context) (*EvidenceItem, error) {
			if s.Searcher == nil {
				return nil, search.ErrNotConfigured
			}
			fragments := verify.ExtractFragments(text)
			if len(fragments) == 0 {
				return nil, fmt.Errorf("no searchable fragments in content")
			}
			results, err := s.Searcher.Search(ctx, fragments[0], searchHitCount)
			if err != nil {
				return nil, err
			}
			analysis := verify.AnalyzeSimilarity(text, results.Hits)
			item := WebSearchEvidence(analysis.Max, len(analysis.Sources))
			return &item, nil
		},
	})

	return stages
}

// runStage executes one stage under its own timeout, converting any error
// or panic into a recorded failure. The run always continues.
func (s *Service) runStage(ctx context.Context, index int, def stageDef) (PipelineStage, *EvidenceItem) {
	record := PipelineStage{
		Index:     index,
		Name:      def.name,
		Status:    StageRunning,
		StartedAt: time.Now().UTC(),
	}

	stageCtx, cancel := context.WithTimeout(ctx, def.timeout)
	item, err := runProtected(stageCtx, def.run)
	cancel()

	record.FinishedAt = time.Now().UTC()
	if err != nil {
		record.Status = StageFailed
		record.Error = classifyStageError(err)
		telemetry.Info("detection.stage", map[string]any{
			"stage":  def.name,
			"index":  index,
			"status": StageFailed,
			"code":   record.Error.Code,
			"error":  record.Error.Message,
		})
		return record, nil
	}

	record.Status = StageCompleted
	telemetry.Info("detection.stage", map[string]any{
		"stage":  def.name,
		"index":  index,
		"status": StageCompleted,
	})
	return record, item
}

func runProtected(ctx context.Context, run func(context.Context) (*EvidenceItem, error)) (item *EvidenceItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			item = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return run(ctx)
}

type searchOutcome int

const (
	searchSucceeded searchOutcome = iota
	searchUnavailable
	searchNoFragments
)

// collectHits fans the representative fragments out to the search service
// and pools the hits. Per-fragment failures are tolerated; the outcome is
// unavailable only when no fragment produced results and at least one call
// errored. Content yielding no fragments at all is reported separately so
// an outage is never blamed for unsearchable input.
func (s *Service) collectHits(ctx context.Context, content string) (hits []search.Hit, outcome searchOutcome) {
	if s.Searcher == nil {
		return nil, searchUnavailable
	}
	fragments := verify.ExtractFragments(content)
	if len(fragments) == 0 {
		return nil, searchNoFragments
	}

	errored := 0
	for _, fragment := range fragments {
		searchCtx, cancel := context.WithTimeout(ctx, s.Tunables.SearchTimeout)
		results, err := s.Searcher.Search(searchCtx, fragment, searchHitCount)
		cancel()
		if err != nil {
			errored++
			telemetry.Error("verification.search", map[string]any{
				"fragment_len": len(fragment),
				"error":        err.Error(),
			})
			continue
		}
		hits = append(hits, results.Hits...)
	}
	if len(hits) == 0 && errored > 0 {
		return nil, searchUnavailable
	}
	return hits, searchSucceeded
}

func (s *Service) resolveText(ctx context.Context, req AnalysisRequest) (string, error) {
	if req.Kind != KindDocument {
		return req.Content, nil
	}
	if len(req.Binary) == 0 {
		return req.Content, nil
	}
	text, err := extract.Text(ctx, req.Binary, req.MimeType, req.FileName)
	if err != nil {
		return "", &ValidationError{Field: "document", Reason: "could not extract text: " + sanitizeError(err)}
	}
	if len(strings.TrimSpace(text)) < s.Tunables.MinTextLength {
		return "", &ValidationError{Field: "document", Reason: fmt.Sprintf("extracted text must be at least %d characters", s.Tunables.MinTextLength)}
	}
	return text, nil
}

func (s *Service) fingerprint(req AnalysisRequest, text string) string {
	if req.Kind == KindImage || req.Kind == KindVideo {
		return cache.BinaryFingerprint(req.FileName, int64(len(req.Binary)), string(req.Kind))
	}
	return cache.Fingerprint(text, string(req.Kind))
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	payload, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		telemetry.Error("cache.get", map[string]any{"error": err.Error()})
		return nil, false
	}
	if ok {
		metrics.IncCacheHit()
		return payload, true
	}
	metrics.IncCacheMiss()
	return nil, false
}

func (s *Service) cacheSet(ctx context.Context, key string, payload any, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, raw, ttl); err != nil {
		telemetry.Error("cache.set", map[string]any{"error": err.Error()})
	}
}

func mapLabel(raw string) Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ai", "ai-generated", "ai_generated":
		return LabelAI
	case "human", "human-written", "human_written", "human-authored":
		return LabelHuman
	default:
		return LabelUnknown
	}
}
