package model

import "time"

// CachedClaim is a persisted verdict for a previously verified input
type CachedClaim struct {
	ID            int64     `json:"id"`
	ClaimText     string    `json:"claim_text"`
	Verdict       Verdict   `json:"verdict"`
	Confidence    float64   `json:"confidence"`
	RetrievedAt   time.Time `json:"retrieved_at"`
	EvidenceCount int       `json:"evidence_count"`
	SessionID     string    `json:"session_id"`
}

// Session groups the interactions of one user run
type Session struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Interaction is one logged query within a session
type Interaction struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id"`
	Query          string    `json:"query"`
	ProcessedInput string    `json:"processed_input"`
	Verdict        string    `json:"verdict"`
	Timestamp      time.Time `json:"timestamp"`
}

// Stats summarizes stored verification history
type Stats struct {
	TotalVerifiedClaims int            `json:"total_verified_claims"`
	AverageConfidence   float64        `json:"average_confidence"`
	TotalSessions       int            `json:"total_sessions"`
	VerdictDistribution map[string]int `json:"verdict_distribution"`
}
