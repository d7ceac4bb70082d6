package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/arcade/internal/agent"
)

// decideFn is the global every agent script must define.
const decideFn = "agent_decide"

// Engine wraps a single gopher-lua VM running the agent scripts.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir:
// shared helpers from core/ first, then agent/.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "agent"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	if e.vm.GetGlobal(decideFn) == lua.LNil {
		vm.Close()
		return nil, fmt.Errorf("lua function %s not defined under %s", decideFn, scriptsDir)
	}
	return e, nil
}

// NewEngineFromString builds an engine from inline source. Used for tests and
// for embedding a script without a scripts directory.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	if vm.GetGlobal(decideFn) == lua.LNil {
		vm.Close()
		return nil, fmt.Errorf("lua function %s not defined", decideFn)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Decide calls agent_decide(state). Script failures are logged and yield an
// idle decision so a broken script never stalls the frame loop.
func (e *Engine) Decide(s agent.State) agent.Decision {
	fn := e.vm.GetGlobal(decideFn)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("fn", decideFn))
		return agent.Decision{}
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, e.packState(s)); err != nil {
		e.log.Error("lua agent_decide error", zap.Error(err))
		return agent.Decision{}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua agent_decide returned non-table", zap.String("type", result.Type().String()))
		return agent.Decision{}
	}

	move := int(lua.LVAsNumber(rt.RawGetString("move")))
	switch {
	case move < 0:
		move = -1
	case move > 0:
		move = 1
	}
	return agent.Decision{
		Move:  move,
		Shoot: rt.RawGetString("shoot") == lua.LTrue,
	}
}

func (e *Engine) packState(s agent.State) *lua.LTable {
	t := e.vm.NewTable()

	field := e.vm.NewTable()
	field.RawSetString("width", lua.LNumber(s.FieldWidth))
	field.RawSetString("height", lua.LNumber(s.FieldHeight))
	t.RawSetString("field", field)

	ship := e.vm.NewTable()
	ship.RawSetString("x", lua.LNumber(s.ShipX))
	ship.RawSetString("y", lua.LNumber(s.ShipY))
	ship.RawSetString("width", lua.LNumber(s.ShipWidth))
	ship.RawSetString("center", lua.LNumber(s.ShipCenter()))
	ship.RawSetString("can_fire", lua.LBool(s.CanFire))
	t.RawSetString("ship", ship)

	t.RawSetString("projectile_speed", lua.LNumber(s.ProjectileSpeed))

	targets := e.vm.CreateTable(len(s.Targets), 0)
	for _, tg := range s.Targets {
		row := e.vm.NewTable()
		row.RawSetString("x", lua.LNumber(tg.X))
		row.RawSetString("y", lua.LNumber(tg.Y))
		row.RawSetString("radius", lua.LNumber(tg.Radius))
		row.RawSetString("speed", lua.LNumber(tg.Speed))
		targets.Append(row)
	}
	t.RawSetString("targets", targets)

	return t
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
