package simulate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/ai"
	"github.com/cory-johannsen/crawl/internal/game/combat"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// Options configures the player of an encounter. Empty ids leave the slot
// unfilled.
type Options struct {
	PlayerSpecies string
	PlayerWeapon  string
	PlayerArmor   string
	Bonus         actor.PlayerBonus
}

// energyPerRound is what each speed tier gains per round; an action costs
// actionCost.
var energyPerRound = map[actor.Speed]int{
	actor.Sluggish: 50,
	actor.Slow:     75,
	actor.Normal:   100,
	actor.Fast:     150,
	actor.Fastest:  200,
}

const actionCost = 100

// Summary is the outcome of Run.
type Summary struct {
	Rounds      int
	PlayerAlive bool
	Kills       int
	// KilledSpecies lists each species killed at least once, sorted.
	KilledSpecies []string
	// SparedSpecies lists each species the player saw but never killed,
	// sorted.
	SparedSpecies []string
}

// Runner plays an encounter on a level. It plays on the level's map in
// place, so each Runner needs freshly loaded content.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	World   *actor.World
	Journal *world.Journal

	planners *ai.Registry
	energy   map[actor.ID]int
	rounds   int
	logger   *zap.Logger
}

// pacedRenderer records frames into the journal and sleeps through every
// animation delay.
type pacedRenderer struct {
	*world.Journal
}

func (r pacedRenderer) Delay(d time.Duration) {
	r.Journal.Delay(d)
	if d > 0 {
		time.Sleep(d)
	}
}

// NewRunner builds the world for content.Level, spawns its population and
// the player, and computes the player's first field of view.
//
// Precondition: content comes from LoadContent and content.Validate() == nil;
// rng and logger must be non-nil.
// Postcondition: Returns a Runner with a living player, or an error if an
// option names unknown content.
func NewRunner(content *Content, rng *dice.Roller, logger *zap.Logger, engine config.EngineConfig, opts Options) (*Runner, error) {
	if opts.PlayerSpecies == "" {
		opts.PlayerSpecies = PlayerSpeciesID
	}
	playerSp := content.Bestiary[opts.PlayerSpecies]
	if playerSp == nil {
		return nil, fmt.Errorf("simulate: unknown player species %q", opts.PlayerSpecies)
	}

	level := content.Level
	w := actor.NewWorld(level.Map, rng, logger)
	j := world.NewJournal()
	w.Log, w.Clock = j, j
	w.Render = pacedRenderer{Journal: j}
	w.Sound = NewSoundBus(w, j)
	w.Conditions = content.Conditions
	if content.Scripts != nil {
		w.Hooks = content.Scripts
	}
	w.Items = content.Items
	w.Bonus = opts.Bonus
	w.BotMode = engine.BotMode
	w.ProjectileDelay = engine.ProjectileDelay()
	w.ShotgunDelay = engine.ShotgunDelay()

	for _, s := range level.Spawns {
		a := actor.Spawn(w, s.Pos, content.Bestiary[s.Species])
		if err := equip(content, a, s.Weapon, s.Armor); err != nil {
			return nil, err
		}
		if s.Aware {
			a.AwareCounter = a.Species.TurnsAware
		}
		a.Stealth = s.Stealth
	}
	p := actor.SpawnPlayer(w, level.PlayerStart, playerSp)
	if err := equip(content, p, opts.PlayerWeapon, opts.PlayerArmor); err != nil {
		return nil, err
	}
	w.UpdatePlayerFOV()

	return &Runner{
		World:    w,
		Journal:  j,
		planners: content.Planners,
		energy:   make(map[actor.ID]int),
		logger:   logger,
	}, nil
}

func equip(content *Content, a *actor.Actor, weaponID, armorID string) error {
	if weaponID != "" {
		wpn, err := content.Items.NewWeapon(weaponID)
		if err != nil {
			return fmt.Errorf("simulate: equipping %s: %w", a.Species.ID, err)
		}
		a.Inv.Wielded = wpn
	}
	if armorID != "" {
		arm, err := content.Items.NewArmor(armorID)
		if err != nil {
			return fmt.Errorf("simulate: equipping %s: %w", a.Species.ID, err)
		}
		a.Inv.Body = arm
	}
	return nil
}

// Done reports whether the encounter is over: the player is dead or no
// living monster remains.
func (r *Runner) Done() bool {
	if !r.World.PlayerAlive() {
		return true
	}
	for _, a := range r.World.Actors.All() {
		if !a.IsPlayer() && a.IsAlive() {
			return false
		}
	}
	return true
}

// Round plays one round: the player searches for hidden monsters, every
// living actor, player first, spends its accumulated energy on actions,
// then conditions and awareness count down.
func (r *Runner) Round() {
	w := r.World
	r.rounds++
	r.spotHidden()
	order := append([]*actor.Actor{w.Player}, monsters(w)...)
	for _, a := range order {
		r.energy[a.ID] += energyPerRound[a.Speed()]
		for r.energy[a.ID] >= actionCost {
			r.energy[a.ID] -= actionCost
			if !a.IsAlive() || !w.PlayerAlive() {
				break
			}
			r.act(a)
		}
	}
	r.endRound()
}

func monsters(w *actor.World) []*actor.Actor {
	var out []*actor.Actor
	for _, a := range w.Actors.All() {
		if !a.IsPlayer() {
			out = append(out, a)
		}
	}
	return out
}

// spotHidden rolls once for each hidden monster in the player's field of
// view; a spotted monster stays visible until it hides again.
func (r *Runner) spotHidden() {
	w := r.World
	if !w.PlayerAlive() || !w.Player.Conditions.AllowSee() {
		return
	}
	for _, m := range monsters(w) {
		if !m.IsAlive() || !m.Stealth || !w.Map.IsSeenByPlayer(m.Pos) {
			continue
		}
		if !w.Player.IsSpottingHiddenActor(w, m) {
			continue
		}
		m.Stealth = false
		w.Log.Post("I spot "+lowerFirst(m.NameThe())+".", world.ColorNote, false)
		r.logger.Debug("hidden monster spotted", zap.String("species", m.Species.ID))
	}
}

// act plans and performs one action for a. A monster that sees the player
// becomes aware of it first, and while aware hunts it even out of sight.
func (r *Runner) act(a *actor.Actor) {
	w := r.World
	if a.Conditions.Has(condition.Paralyzed) || a.Conditions.Has(condition.Fainted) {
		return
	}
	if !a.IsPlayer() {
		for _, f := range a.SeenFoes(w) {
			if f.IsPlayer() {
				a.AwareCounter = max(a.AwareCounter, a.Species.TurnsAware)
			}
		}
	}

	domain := aiDomain(a.Species)
	planner, ok := r.planners.PlannerFor(domain)
	if !ok {
		r.logger.Warn("no planner for species", zap.String("species", a.Species.ID), zap.String("domain", domain))
		return
	}
	plan, err := planner.Plan(ai.BuildWorldState(w, a))
	if err != nil {
		r.logger.Warn("planning failed", zap.String("species", a.Species.ID), zap.Error(err))
		return
	}
	if len(plan) == 0 {
		return
	}
	next := plan[0]
	target := r.resolveTarget(next.Target)
	if a.IsPlayer() && target != nil {
		w.PlayerTarget = target.ID
	}
	r.logger.Debug("action planned",
		zap.String("species", a.Species.ID),
		zap.String("domain", domain),
		zap.String("action", next.Action),
		zap.Bool("has_target", target != nil))

	switch next.Action {
	case ai.ActionMelee:
		wpn := a.Inv.MeleeWeapon()
		if target == nil || wpn == nil || geom.KingDist(a.Pos, target.Pos) != 1 {
			return
		}
		combat.Melee(w, a, wpn, target)
	case ai.ActionFire:
		wpn := a.Inv.Wielded
		if target == nil || wpn == nil || !wpn.Def.IsRanged() {
			return
		}
		if !combat.Ranged(w, a, wpn, target.Pos) {
			r.reload(a)
		}
	case ai.ActionReload:
		if wpn := a.Inv.Wielded; wpn != nil && wpn.Def.IsRanged() {
			r.reload(a)
		}
	case ai.ActionApproach:
		if target != nil && !a.Conditions.Has(condition.Nailed) {
			r.step(a, target.Pos)
		}
	case ai.ActionFlee:
		if target != nil && !a.Conditions.Has(condition.Nailed) {
			r.step(a, a.Pos.Add(a.Pos.Sub(target.Pos)))
		}
	}
}

// resolveTarget maps a planned target id to a living actor, nil for none.
func (r *Runner) resolveTarget(id string) *actor.Actor {
	if id == "" {
		return nil
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	a := r.World.Actors.Get(uid)
	if a == nil || !a.IsAlive() {
		return nil
	}
	return a
}

func (r *Runner) reload(a *actor.Actor) {
	w := r.World
	wpn := a.Inv.Wielded
	wpn.Reload()
	switch {
	case a.IsPlayer():
		w.Log.Post("I reload my "+wpn.Def.Name+".", world.ColorDefault, false)
	case w.PlayerSees(a):
		w.Log.Post(a.NameThe()+" reloads.", world.ColorDefault, false)
	}
	r.logger.Debug("reload", zap.String("actor", a.Species.ID), zap.Int("ammo", wpn.Ammo))
	w.Clock.Tick()
}

// step moves a one cell toward dest, trying the diagonal first and then
// each axis. A closed door in the way is opened instead. An actor caught
// in a web spends the step tearing free, and walking into a web gets it
// caught.
func (r *Runner) step(a *actor.Actor, dest geom.Pos) {
	w := r.World
	if here := w.Map.FeatureAt(a.Pos); here.IsHoldingWeb() {
		here.Trap.Holding = false
		switch {
		case a.IsPlayer():
			w.Log.Post("I tear free of the web.", world.ColorDefault, false)
		case w.PlayerSees(a):
			w.Log.Post(a.NameThe()+" tears free of the web.", world.ColorDefault, false)
		}
		r.afterMove()
		return
	}
	dx, dy := geom.Sign(dest.X-a.Pos.X), geom.Sign(dest.Y-a.Pos.Y)
	for _, d := range [][2]int{{dx, dy}, {dx, 0}, {0, dy}} {
		if d == [2]int{0, 0} {
			continue
		}
		p := geom.Pos{X: a.Pos.X + d[0], Y: a.Pos.Y + d[1]}
		if !geom.InsideMap(p) || w.Actors.AliveAt(p) != nil {
			continue
		}
		f := w.Map.FeatureAt(p)
		if f.Kind == world.Door && !f.Door.Open && !f.Door.Secret && !f.Door.Stuck {
			f.Door.Open = true
			if w.Map.IsSeenByPlayer(p) {
				w.Log.Post(actorNameThe(w, a)+" opens a door.", world.ColorDefault, false)
			}
			r.afterMove()
			return
		}
		if !f.IsMovePassable() {
			continue
		}
		a.Pos = p
		if f.Kind == world.Trap && f.Trap.Kind == world.TrapWeb {
			f.Trap.Hidden = false
			f.Trap.Holding = true
			switch {
			case a.IsPlayer():
				w.Log.Post("I am caught in a web.", world.ColorDefault, false)
			case w.PlayerSees(a):
				w.Log.Post(a.NameThe()+" is caught in a web.", world.ColorDefault, false)
			}
		}
		r.afterMove()
		return
	}
}

func (r *Runner) afterMove() {
	w := r.World
	w.UpdatePlayerFOV()
	w.Render.Redraw()
	w.Clock.Tick()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func actorNameThe(w *actor.World, a *actor.Actor) string {
	if a.IsPlayer() || w.PlayerSees(a) {
		return a.NameThe()
	}
	return "It"
}

// endRound ticks conditions, counts awareness down and clears destroyed
// actors from the roster.
func (r *Runner) endRound() {
	w := r.World
	for _, a := range w.Actors.All() {
		if !a.IsAlive() {
			continue
		}
		for _, id := range a.Conditions.Tick() {
			if !a.IsPlayer() || w.Conditions == nil {
				continue
			}
			if def, ok := w.Conditions.Get(id); ok && def.MsgEnd != "" {
				w.Log.Post(def.MsgEnd, world.ColorNote, false)
			}
		}
		if !a.IsPlayer() && a.AwareCounter > 0 {
			a.AwareCounter--
		}
	}
	w.Actors.PurgeDestroyed()
	w.UpdatePlayerFOV()
}

// Run plays rounds until the encounter is over, maxRounds have been
// played, or ctx is cancelled.
//
// Precondition: maxRounds >= 0.
func (r *Runner) Run(ctx context.Context, maxRounds int) Summary {
	for r.rounds < maxRounds && !r.Done() {
		if ctx.Err() != nil {
			r.logger.Info("encounter interrupted", zap.Int("rounds", r.rounds))
			break
		}
		r.Round()
	}
	w := r.World
	s := Summary{
		Rounds:        r.rounds,
		PlayerAlive:   w.PlayerAlive(),
		Kills:         w.Kills.Total(),
		KilledSpecies: w.Kills.UniqueSpecies(),
		SparedSpecies: w.Kills.SparedSpecies(),
	}
	r.logger.Info("encounter finished",
		zap.Int("rounds", s.Rounds),
		zap.Bool("player_alive", s.PlayerAlive),
		zap.Int("kills", s.Kills),
		zap.Strings("killed_species", s.KilledSpecies),
		zap.Strings("spared_species", s.SparedSpecies),
	)
	return s
}
