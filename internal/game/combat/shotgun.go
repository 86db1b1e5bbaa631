package combat

import (
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/damage"
	"github.com/cory-johannsen/crawl/internal/game/geom"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
	"github.com/cory-johannsen/crawl/internal/game/world"
)

// maxShotgunHits is how many actors one blast can strike.
const maxShotgunHits = 2

// fireShotgun walks one blast towards aimPos. Every actor tall enough to
// be hit, or standing on the aim cell, gets its own roll. The blast stops
// at a surviving target, after two hits, at the aim cell when aimed at the
// floor, one cell past a kill, or at a blocking feature, which it damages.
func fireShotgun(w *actor.World, attacker *actor.Actor, wpn *inventory.Weapon, aimPos geom.Pos) {
	def := wpn.Def
	aimSize := aimSizeAt(w, aimPos)
	maxDmg := def.RangedExpr().Max()

	postFireMsg(w, attacker, def)
	emitFireSound(w, attacker, def)

	path := geom.Line(attacker.Pos, aimPos, false, shotgunTravelLimit, false)
	killedAt := -1
	nrHit := 0

	for i := 1; i < len(path); i++ {
		if killedAt != -1 && i > killedAt+1 {
			break
		}
		pos := path[i]
		seen := w.Map.IsSeenByPlayer(pos)

		if cur := w.Actors.AliveAt(pos); cur != nil && (cur.Species.Size >= actor.SizeHumanoid || pos == aimPos) {
			data := NewRangedData(w, attacker, wpn, aimPos, pos, aimSize)
			if data.Result.Success() && !data.EtherealMiss {
				if seen {
					w.Render.DrawProjectiles([]world.ProjectileMark{{Pos: pos, Glyph: '*'}}, true)
					w.Render.Delay(w.ShotgunDelay)
					postRangedHit(w, &data, maxDmg)
				}
				died := cur.Hit(w, data.Dmg, def.DmgType(), damage.Shotgun)
				nrHit++
				w.Render.Redraw()
				if died {
					killedAt = i
				}
				if !died || nrHit >= maxShotgunHits || (aimSize == actor.SizeFloor && pos == aimPos) {
					break
				}
			}
		}

		if world.BlocksProjectiles(w.Map.FeatureAt(pos)) {
			emitRicochet(w, pos)
			if seen {
				w.Render.DrawProjectiles([]world.ProjectileMark{{Pos: pos, Glyph: '*'}}, true)
				w.Render.Delay(w.ShotgunDelay)
			}
			w.Map.HitFeature(world.HitEnv{Rng: w.Rng, Sound: w.Sound, Log: w.Log}, pos, damage.Physical, damage.Shotgun,
				world.HitSource{
					IsPlayer:     attacker.IsPlayer(),
					Weak:         attacker.Conditions.Has(condition.Weakened),
					SeenByPlayer: w.PlayerSees(attacker),
					ID:           attacker.ID.String(),
				})
			break
		}

		if pos == aimPos && aimSize == actor.SizeFloor {
			emitRicochet(w, pos)
			break
		}
	}
}
