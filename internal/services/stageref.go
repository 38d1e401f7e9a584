package services

import "strconv"

type StageRefKind string

const (
	StageRefOrdinal  StageRefKind = "ordinal"
	StageRefStableID StageRefKind = "stable_id"
)

// StageRef is the decoded form of an externally supplied stage reference.
// All-digit strings are 1-based ordinals; anything else is a stable id.
type StageRef struct {
	Kind     StageRefKind
	Ordinal  int
	StableID string
}

// ParseStageRef is total: every input decodes to one of the two kinds.
func ParseStageRef(raw string) StageRef {
	if isAllDigits(raw) {
		n, _ := strconv.Atoi(raw)
		return StageRef{Kind: StageRefOrdinal, Ordinal: n}
	}
	return StageRef{Kind: StageRefStableID, StableID: raw}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
