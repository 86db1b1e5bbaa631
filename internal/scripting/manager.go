package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// Manager owns the sandboxed VM holding every condition script and
// dispatches hooks into it.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting: NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting: NewManager: logger must not be nil")
	}
	return &Manager{roller: roller, logger: logger}
}

// Load creates a fresh VM, registers the engine.* modules, then executes
// every *.lua file in scriptDir in lexicographic order. The VM replaces any
// previously loaded one only when every file loads. instLimit bounds each
// file and each later hook call.
//
// Precondition: scriptDir must be a readable directory.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		cancel := grantBudget(L, instLimit)
		err := L.DoFile(path)
		cancel()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.instLimit = instLimit
	m.mu.Unlock()

	m.logger.Debug("scripting: scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or nothing is loaded. Lua runtime errors, including a
// spent instruction allowance, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L := m.state
	if L == nil {
		m.logger.Debug("scripting: no scripts loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := grantBudget(L, m.instLimit)
	defer cancel()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// TransformDamage runs hook(amount, dmgType) and returns the number it
// yields. ok is false when the hook is missing, fails or does not return a
// number.
func (m *Manager) TransformDamage(hook string, amount int, dmgType string) (int, bool) {
	ret, err := m.CallHook(hook, lua.LNumber(amount), lua.LString(dmgType))
	if err != nil {
		return amount, false
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		if ret != lua.LNil {
			m.logger.Warn("scripting: damage hook returned a non-number",
				zap.String("hook", hook),
				zap.String("type", ret.Type().String()),
			)
		}
		return amount, false
	}
	return int(n), true
}

// Close releases the VM. Later hook calls are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
