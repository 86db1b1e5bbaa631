package dice

import (
	"math"

	"go.uber.org/zap"
)

// Tier is the outcome of an ability roll, ordered worst to best.
type Tier int

const (
	BigFail Tier = iota
	NormalFail
	SmallFail
	SmallSuccess
	NormalSuccess
	CriticalSuccess
)

func (t Tier) String() string {
	switch t {
	case BigFail:
		return "big_fail"
	case NormalFail:
		return "normal_fail"
	case SmallFail:
		return "small_fail"
	case SmallSuccess:
		return "small_success"
	case NormalSuccess:
		return "normal_success"
	case CriticalSuccess:
		return "critical_success"
	default:
		return "unknown"
	}
}

// Success reports whether t is SmallSuccess or better.
func (t Tier) Success() bool {
	return t >= SmallSuccess
}

// TierFor maps a d100 roll onto an outcome tier for the given skill.
//
//	roll <= ceil(skill/20)            critical success
//	roll <= ceil(skill*4/5)           normal success
//	roll <= skill                     small success
//	roll <= 2*skill - ceil(skill*4/5) small fail
//	roll <= 98                        normal fail
//	otherwise                         big fail
func TierFor(roll, skill int) Tier {
	critLimit := ceilFrac(skill, 20)
	normLimit := ceilFrac(skill*4, 5)
	smallFailLimit := 2*skill - normLimit
	switch {
	case roll <= critLimit:
		return CriticalSuccess
	case roll <= normLimit:
		return NormalSuccess
	case roll <= skill:
		return SmallSuccess
	case roll <= smallFailLimit:
		return SmallFail
	case roll <= 98:
		return NormalFail
	default:
		return BigFail
	}
}

func ceilFrac(num, den int) int {
	return int(math.Ceil(float64(num) / float64(den)))
}

// Ability rolls d100 against skill.
func (r *Roller) Ability(skill int) Tier {
	roll := r.src.Intn(100) + 1
	t := TierFor(roll, skill)
	r.logger.Debug("ability roll", zap.Int("skill", skill), zap.Int("roll", roll), zap.Stringer("tier", t))
	return t
}
