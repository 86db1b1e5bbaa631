package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// fixedSrc always returns v, clamped to the requested range.
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestParse(t *testing.T) {
	cases := map[string]dice.Expression{
		"d6":    {Raw: "d6", Count: 1, Sides: 6},
		"2d6":   {Raw: "2d6", Count: 2, Sides: 6},
		"2d6+3": {Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3},
		"1d4-1": {Raw: "1d4-1", Count: 1, Sides: 4, Modifier: -1},
	}
	for in, want := range cases {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "xd6", "2dx", "2d0", "2d6+x"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "%q should not parse", in)
	}
}

func TestExpression_Max(t *testing.T) {
	assert.Equal(t, 15, dice.MustParse("2d6+3").Max())
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for range 1000 {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for range 100 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestRoller_Range_Property(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(7), nil)
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+100).Draw(rt, "hi")
		v := r.Range(lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestRoller_Dice_Extremes(t *testing.T) {
	lo := dice.NewLoggedRoller(fixedSrc{0}, nil)
	hi := dice.NewLoggedRoller(fixedSrc{1 << 20}, nil)
	assert.Equal(t, 2, lo.Dice(2, 6))
	assert.Equal(t, 12, hi.Dice(2, 6))
	assert.Equal(t, 0, hi.Dice(0, 6))
}

func TestRoller_PercentAndFraction(t *testing.T) {
	low := dice.NewLoggedRoller(fixedSrc{0}, nil)
	high := dice.NewLoggedRoller(fixedSrc{1 << 20}, nil)
	assert.True(t, low.Percent(1))
	assert.False(t, high.Percent(99))
	assert.True(t, low.Fraction(2, 3))
	assert.False(t, high.Fraction(2, 3))
}

func TestRoller_LogsRolls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(fixedSrc{2}, zap.New(core))
	res, err := r.RollExpr("2d6+1")
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total())
	require.Equal(t, 1, logs.FilterMessage("dice roll").Len())
	assert.Equal(t, int64(7), logs.FilterMessage("dice roll").All()[0].ContextMap()["total"])
}

func TestTierFor_Boundaries(t *testing.T) {
	// skill 50: crit <= 3, normal <= 40, small success <= 50, small fail <= 60.
	assert.Equal(t, dice.CriticalSuccess, dice.TierFor(3, 50))
	assert.Equal(t, dice.NormalSuccess, dice.TierFor(4, 50))
	assert.Equal(t, dice.NormalSuccess, dice.TierFor(40, 50))
	assert.Equal(t, dice.SmallSuccess, dice.TierFor(41, 50))
	assert.Equal(t, dice.SmallSuccess, dice.TierFor(50, 50))
	assert.Equal(t, dice.SmallFail, dice.TierFor(51, 50))
	assert.Equal(t, dice.SmallFail, dice.TierFor(60, 50))
	assert.Equal(t, dice.NormalFail, dice.TierFor(61, 50))
	assert.Equal(t, dice.NormalFail, dice.TierFor(98, 50))
	assert.Equal(t, dice.BigFail, dice.TierFor(99, 50))
}

func TestTierFor_Property_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		skill := rapid.IntRange(0, 150).Draw(rt, "skill")
		roll := rapid.IntRange(1, 99).Draw(rt, "roll")
		assert.GreaterOrEqual(rt, dice.TierFor(roll, skill), dice.TierFor(roll+1, skill))
		assert.Equal(rt, roll <= skill, dice.TierFor(roll, skill).Success())
	})
}

func TestRoller_Ability_MinimumRollIsCritical(t *testing.T) {
	r := dice.NewLoggedRoller(fixedSrc{0}, nil)
	assert.Equal(t, dice.CriticalSuccess, r.Ability(1))
	assert.Equal(t, "critical_success", dice.CriticalSuccess.String())
}
