package domain

// Kind é o tipo do conteúdo enviado.
type Kind string

const (
	KindURL  Kind = "url"
	KindText Kind = "text"
)

func (k Kind) Valid() bool {
	return k == KindURL || k == KindText
}

type ValidatedRequest struct {
	Content string
	Kind    Kind
}

type FindingKind string

const (
	FindingPositive FindingKind = "positive"
	FindingWarning  FindingKind = "warning"
	FindingNegative FindingKind = "negative"
)

func (k FindingKind) Valid() bool {
	return k == FindingPositive || k == FindingWarning || k == FindingNegative
}

type Reliability string

const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

func (r Reliability) Valid() bool {
	return r == ReliabilityHigh || r == ReliabilityMedium || r == ReliabilityLow
}

type Finding struct {
	Kind FindingKind `json:"type"`
	Text string      `json:"text"`
}

type Source struct {
	Name        string      `json:"name"`
	Reliability Reliability `json:"reliability"`
	URL         string      `json:"url,omitempty"`
}

// AnalysisResult é a avaliação de credibilidade devolvida ao cliente.
type AnalysisResult struct {
	Score    int       `json:"score"`
	Summary  string    `json:"summary"`
	Findings []Finding `json:"findings"`
	Sources  []Source  `json:"sources,omitempty"`
	Tips     []string  `json:"tips"`
}
