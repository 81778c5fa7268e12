package domain

import "strings"

// SentimentClass buckets the backend's free-form sentiment label.
type SentimentClass string

const (
	SentimentPositive SentimentClass = "positive"
	SentimentNegative SentimentClass = "negative"
	SentimentNeutral  SentimentClass = "neutral"
)

// VerdictClass buckets the PR strategist's free-form verdict.
type VerdictClass string

const (
	VerdictRespond VerdictClass = "respond"
	VerdictIgnore  VerdictClass = "ignore"
	VerdictMonitor VerdictClass = "monitor"
	VerdictOther   VerdictClass = "other"
)

// The backend emits free-form Russian labels; English variants are matched
// too so the shim survives a vocabulary switch. Substring matching is a
// compatibility measure, not a contract to extend.
var (
	positiveMarkers = []string{"позитив", "positive"}
	negativeMarkers = []string{"негатив", "negative"}

	ignoreMarkers  = []string{"игнор", "ignore"}
	respondMarkers = []string{"отвеча", "respond", "recommend", "ньюсджекинг", "newsjack"}
	monitorMarkers = []string{"монитор", "monitor", "watch"}
)

// ClassifySentiment maps a free-form sentiment label to a fixed class.
// Unrecognized labels are neutral.
func ClassifySentiment(label string) SentimentClass {
	l := strings.ToLower(label)
	if containsAny(l, positiveMarkers) {
		return SentimentPositive
	}
	if containsAny(l, negativeMarkers) {
		return SentimentNegative
	}
	return SentimentNeutral
}

// ClassifyVerdict maps a free-form PR verdict to a fixed class. Ignore
// wins over the other markers so a hedged verdict never looks actionable.
func ClassifyVerdict(verdict string) VerdictClass {
	v := strings.ToLower(verdict)
	switch {
	case containsAny(v, ignoreMarkers):
		return VerdictIgnore
	case containsAny(v, respondMarkers):
		return VerdictRespond
	case containsAny(v, monitorMarkers):
		return VerdictMonitor
	default:
		return VerdictOther
	}
}

// RelevanceThreshold is the score below which a plan is judged not worth
// reacting to.
const RelevanceThreshold = 30

// WorthReacting is the UI fitness judgment: low relevance or an ignore
// verdict flips it. Pure read, never mutates the analysis.
func (a *Analysis) WorthReacting() bool {
	if a == nil {
		return false
	}
	if a.RelevanceScore < RelevanceThreshold {
		return false
	}
	return ClassifyVerdict(a.PRVerdict) != VerdictIgnore
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
