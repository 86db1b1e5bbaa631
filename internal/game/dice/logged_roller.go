package dice

import "go.uber.org/zap"

// Roller wraps a Source with the roll primitives the simulation consumes.
// Every roll is logged at debug level.
//
// Roller is not safe for concurrent use unless its Source is.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to
// logger. A nil logger disables logging.
//
// Precondition: src must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Range returns a uniform int in [lo, hi].
//
// Precondition: lo <= hi.
func (r *Roller) Range(lo, hi int) int {
	if hi < lo {
		panic("dice: Range called with hi < lo")
	}
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("range roll", zap.Int("lo", lo), zap.Int("hi", hi), zap.Int("result", v))
	return v
}

// Dice rolls `rolls` dice of `sides` faces and returns their sum.
// Zero rolls or sides return 0.
func (r *Roller) Dice(rolls, sides int) int {
	if rolls <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for range rolls {
		total += r.src.Intn(sides) + 1
	}
	r.logger.Debug("dice roll", zap.Int("rolls", rolls), zap.Int("sides", sides), zap.Int("total", total))
	return total
}

// Percent reports whether a d100 roll lands at or below pct.
func (r *Roller) Percent(pct int) bool {
	return r.Range(1, 100) <= pct
}

// Fraction reports whether a roll of 1..den lands at or below num.
//
// Precondition: den > 0.
func (r *Roller) Fraction(num, den int) bool {
	return r.Range(1, den) <= num
}

// Roll evaluates expr and logs the result at debug level.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
