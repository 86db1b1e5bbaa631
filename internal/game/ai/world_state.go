package ai

// SelfState captures the planning actor's own state.
type SelfState struct {
	ID      string
	Species string
	Player  bool
	HP      int
	MaxHP   int
	Aware   bool
	// Nailed actors cannot move.
	Nailed   bool
	HasMelee bool
	// HasRanged is true when the wielded weapon can shoot; CanFire when it
	// holds enough ammunition for one discharge.
	HasRanged bool
	CanFire   bool
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (s *SelfState) HPPercent() float64 {
	if s.MaxHP <= 0 {
		return 0
	}
	return float64(s.HP) / float64(s.MaxHP) * 100
}

// FoeState captures a foe the actor knows of at planning time.
type FoeState struct {
	ID       string
	Species  string
	HP       int
	MaxHP    int
	Distance int
	// Seen is false for a foe an aware monster hunts out of sight.
	Seen bool
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (f *FoeState) HPPercent() float64 {
	if f.MaxHP <= 0 {
		return 0
	}
	return float64(f.HP) / float64(f.MaxHP) * 100
}

// WorldState is the snapshot passed to the HTN planner for one actor.
//
// Invariant: Self must not be nil.
type WorldState struct {
	Self *SelfState
	Foes []*FoeState
}

// NearestFoe returns the closest foe, the earliest on ties, or nil.
func (ws *WorldState) NearestFoe() *FoeState {
	var best *FoeState
	for _, f := range ws.Foes {
		if best == nil || f.Distance < best.Distance {
			best = f
		}
	}
	return best
}

// WeakestFoe returns the foe with the lowest HP percentage, the earliest on
// ties, or nil.
func (ws *WorldState) WeakestFoe() *FoeState {
	var weakest *FoeState
	for _, f := range ws.Foes {
		if weakest == nil || f.HPPercent() < weakest.HPPercent() {
			weakest = f
		}
	}
	return weakest
}

// ResolveTarget maps a target token to a foe, nil for "" or when there is
// no foe.
func (ws *WorldState) ResolveTarget(token string) *FoeState {
	switch token {
	case TargetNearest:
		return ws.NearestFoe()
	case TargetWeakest:
		return ws.WeakestFoe()
	default:
		return nil
	}
}
