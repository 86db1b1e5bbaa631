package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.log and engine.dice tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, log := range levels {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			log(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

// diceModule exposes engine.dice.roll(expr), returning a table with the dice
// sum, the modifier and the total, and engine.dice.percent(p).
func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		res, err := m.roller.RollExpr(L.CheckString(1))
		if err != nil {
			L.RaiseError("engine.dice.roll: %s", err.Error())
			return 0
		}
		sum := 0
		for _, d := range res.Dice {
			sum += d
		}
		t := L.NewTable()
		L.SetField(t, "dice", lua.LNumber(sum))
		L.SetField(t, "modifier", lua.LNumber(res.Modifier))
		L.SetField(t, "total", lua.LNumber(res.Total()))
		L.Push(t)
		return 1
	}))
	L.SetField(mod, "percent", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(m.roller.Percent(L.CheckInt(1))))
		return 1
	}))
	return mod
}
