package model

import "time"

// PipelineResult is the full-pipeline output consumed by the fact-check service
type PipelineResult struct {
	Claims              []string          `json:"claims"`
	DetailedReports     []DetailedReport  `json:"detailed_reports"`
	Assessments         []ClaimAssessment `json:"assessments"`
	ComprehensiveReport string            `json:"comprehensive_report"`
	OverallVerdict      Verdict           `json:"overall_verdict"`
	TotalEvidenceItems  int               `json:"total_evidence_items"`
}

// DetailedReport is the per-claim summary view of an assessment
type DetailedReport struct {
	Claim  string       `json:"claim"`
	Result ReportResult `json:"result"`
}

// ReportResult carries verdict and percentage confidence for one claim
type ReportResult struct {
	Verdict              Verdict `json:"verdict"`
	ConfidencePercentage float64 `json:"confidence_percentage"`
}

// CheckResult is what a single fact-check request returns to the presentation layer
type CheckResult struct {
	SessionID      string          `json:"session_id"`
	Input          string          `json:"input"`
	ProcessedInput string          `json:"processed_input"`
	Verdict        Verdict         `json:"verdict"`
	Confidence     float64         `json:"confidence"`
	Sentiment      SentimentResult `json:"sentiment"`
	Steps          []ThinkingStep  `json:"thinking_steps"`
	Report         string          `json:"report"`
	Cached         bool            `json:"cached"`
	Match          *CacheMatch     `json:"cache_match,omitempty"`
	Pipeline       *PipelineResult `json:"pipeline,omitempty"`
	Duration       time.Duration   `json:"duration_ns"`
}

// CacheMatch describes a reused cache row and how close it was to the query
type CacheMatch struct {
	Claim CachedClaim `json:"claim"`
	Ratio float64     `json:"ratio"`
}

// ThinkingStep is one visible stage of request processing
type ThinkingStep struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalEvidenceBalance SignalType = "evidence_balance" // Supporting vs refuting weight
	SignalEvidenceVolume  SignalType = "evidence_volume"  // Number of directional items
	SignalCohesion        SignalType = "cohesion"         // Strength dispersion in the majority stance
	SignalConflict        SignalType = "conflict"         // Competing stances
	SignalNoEvidence      SignalType = "no_evidence"
	SignalAggregateError  SignalType = "aggregate_error"
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
