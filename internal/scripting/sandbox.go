// Package scripting runs the Lua hooks of conditions and behaviour domains
// in a sandboxed GopherLua VM. It has no dependency on the actor model; the
// engine reaches it through Manager.TransformDamage and Manager.CallHook.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode allowance of one script file load
// or one hook call when engine.script_instruction_limit is 0.
const DefaultInstructionLimit = 100_000

// blockedGlobals are the base library functions that reach the file system,
// load code at run time or tune the collector.
var blockedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// safeLibs are the only standard libraries a hook can use.
var safeLibs = []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath}

// opBudget cancels itself once the VM has polled it left times. GopherLua
// polls Done once per opcode, so the allowance is an exact opcode count and
// a runaway on-hit transform or ai precondition stops at the same point on
// every run.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// grantBudget installs a fresh allowance of limit opcodes on L, or of
// DefaultInstructionLimit when limit is 0. The Manager grants one before
// every file it loads and every hook it calls, so a hook never inherits
// what an earlier call left over. The returned func releases the allowance.
func grantBudget(L *lua.LState, limit int) context.CancelFunc {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	L.SetContext(b)
	return cancel
}

// NewSandboxedState returns a VM with only the base, table, string and math
// libraries, the blocked globals removed and a first allowance of instLimit
// opcodes.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: the caller owns the state and must Close it.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range safeLibs {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	grantBudget(L, instLimit)
	return L
}
