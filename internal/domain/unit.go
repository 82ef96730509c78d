package domain

import "fmt"

// UnitTitleFallback is shown when no usable title text exists on a
// learning unit.
const UnitTitleFallback = "（未設定）"

// LearningUnit is the atomic entity progress is tracked against:
// a whole word, one grouped candidate, or one left/right pair.
// LeftUnitKey and RightUnitKey are the stable identities used in stat
// and lock persistence; for non-paired units both keys coincide.
type LearningUnit struct {
	ID           string
	Title        string
	WordID       int64
	LeftUnitKey  string
	RightUnitKey string
}

// WordUnitKey is the unit key of a whole-record unit.
func WordUnitKey(wordID int64) string {
	return fmt.Sprintf("word:%d", wordID)
}

// MemberUnitKey is the unit key of one grouped candidate.
func MemberUnitKey(wordID int64, index int) string {
	return fmt.Sprintf("member:%d:%d", wordID, index)
}

// PairUnitID is the unit id of a left/right pair unit. It is an id
// only, never a unit key: the pair's sides are keyed by MemberUnitKey.
func PairUnitID(wordID int64) string {
	return fmt.Sprintf("pair:%d", wordID)
}

// MemberUnitID is the unit id of a per-member unit.
func MemberUnitID(wordID int64, index int) string {
	return fmt.Sprintf("member:%d:%d", wordID, index)
}
