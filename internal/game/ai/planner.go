package ai

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ScriptCaller is the interface required by the Planner to evaluate Lua preconditions.
type ScriptCaller interface {
	// CallHook calls a named Lua function.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(hook string, args ...lua.LValue) (lua.LValue, error)
}

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	Action string
	// Target is the resolved foe ID; empty when the operator names none.
	Target string
}

// Built-in precondition names, evaluated without Lua.
const (
	PredHasFoe      = "has_foe"
	PredAdjacent    = "adjacent"
	PredCanFire     = "can_fire"
	PredNeedsReload = "needs_reload"
	PredHurt        = "hurt"
	PredCanMove     = "can_move"
)

// hurtPercent is the HP percentage below which PredHurt holds.
const hurtPercent = 50

var builtinPreds = map[string]func(ws *WorldState) bool{
	PredHasFoe: func(ws *WorldState) bool { return ws.NearestFoe() != nil },
	PredAdjacent: func(ws *WorldState) bool {
		f := ws.NearestFoe()
		return f != nil && f.Distance == 1 && ws.Self.HasMelee
	},
	PredCanFire: func(ws *WorldState) bool {
		f := ws.NearestFoe()
		return f != nil && f.Seen && ws.Self.HasRanged && ws.Self.CanFire
	},
	PredNeedsReload: func(ws *WorldState) bool { return ws.Self.HasRanged && !ws.Self.CanFire },
	PredHurt:        func(ws *WorldState) bool { return ws.Self.HPPercent() < hurtPercent },
	PredCanMove:     func(ws *WorldState) bool { return !ws.Self.Nailed },
}

// Planner evaluates an HTN domain for one actor and produces an ordered
// action plan for its next action.
//
// Invariant: domain must not be nil.
type Planner struct {
	domain *Domain
	caller ScriptCaller
}

// NewPlanner constructs a Planner. caller may be nil, in which case every
// Lua precondition fails.
//
// Precondition: domain must not be nil.
func NewPlanner(domain *Domain, caller ScriptCaller) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	return &Planner{domain: domain, caller: caller}
}

// Domain returns the domain the planner evaluates.
func (p *Planner) Domain() *Domain {
	return p.domain
}

// Plan evaluates the HTN domain against state and returns an ordered plan.
//
// Precondition: state and state.Self must not be nil.
// Postcondition: returns non-nil slice (may be empty); never returns error for Lua failures
// (they are treated as precondition-false).
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.Self == nil {
		return nil, fmt.Errorf("ai.Planner.Plan: state and state.Self must not be nil")
	}

	taskQueue := []string{RootTask}
	var result []PlannedAction

	const maxDepth = 32 // guard against infinite loops
	steps := 0

	for len(taskQueue) > 0 && steps < maxDepth {
		steps++
		current := taskQueue[0]
		taskQueue = taskQueue[1:]

		// Primitive operator: resolve and emit.
		if op, ok := p.domain.OperatorByID(current); ok {
			pa := PlannedAction{Action: op.Action}
			if f := state.ResolveTarget(op.Target); f != nil {
				pa.Target = f.ID
			}
			result = append(result, pa)
			continue
		}

		// Abstract task: find applicable method.
		method := p.findApplicableMethod(current, state)
		if method == nil {
			continue
		}

		// Prepend subtasks (preserves ordered decomposition).
		taskQueue = append(append([]string{}, method.Subtasks...), taskQueue...)
	}

	if result == nil {
		result = []PlannedAction{}
	}
	return result, nil
}

// findApplicableMethod returns the first Method for taskID whose precondition passes,
// or nil if none applies.
//
// Methods are tried in declaration order. An empty Precondition always passes.
// A Lua precondition receives the actor's species, HP, max HP and the
// distance to its nearest foe (-1 when it knows of none).
func (p *Planner) findApplicableMethod(taskID string, state *WorldState) *Method {
	for _, m := range p.domain.MethodsForTask(taskID) {
		if m.Precondition == "" {
			return m
		}
		if pred, ok := builtinPreds[m.Precondition]; ok {
			if pred(state) {
				return m
			}
			continue
		}
		if p.caller == nil {
			continue
		}
		dist := -1
		if f := state.NearestFoe(); f != nil {
			dist = f.Distance
		}
		val, _ := p.caller.CallHook(m.Precondition,
			lua.LString(state.Self.Species),
			lua.LNumber(state.Self.HP),
			lua.LNumber(state.Self.MaxHP),
			lua.LNumber(dist))
		if val == lua.LTrue {
			return m
		}
	}
	return nil
}
