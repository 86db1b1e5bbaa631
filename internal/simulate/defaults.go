package simulate

import (
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/ai"
	"github.com/cory-johannsen/crawl/internal/game/condition"
	"github.com/cory-johannsen/crawl/internal/game/inventory"
)

// PlayerSpeciesID is the species the player is spawned as.
const PlayerSpeciesID = "player"

// DefaultAI is the behaviour domain of species that name none.
const DefaultAI = "brute"

func builtinSpecies() []*actor.Species {
	return []*actor.Species{
		{
			ID: PlayerSpeciesID, Name: "Player", NameThe: "The player", Glyph: "@",
			HP: 16, Spirit: 6, Speed: actor.Normal, Size: actor.SizeHumanoid,
			Abilities:      actor.Abilities{Melee: 55, Ranged: 60, Dodge: 10, Stealth: 20, Searching: 10},
			CanLeaveCorpse: true, CanBleed: true, Humanoid: true,
			Intrinsic: "fists",
		},
		{
			ID: "ghoul", Name: "Ghoul", NameThe: "The Ghoul", Glyph: "M",
			HP: 14, Spirit: 12, Speed: actor.Normal, Size: actor.SizeHumanoid,
			Abilities:      actor.Abilities{Melee: 50, Dodge: 5},
			CanLeaveCorpse: true, CanBleed: true, Undead: true, SeeInDarkness: true,
			TurnsAware: 8, Intrinsic: "claws",
		},
		{
			ID: "rat", Name: "Rat", NameThe: "The Rat", Glyph: "r",
			HP: 3, Spirit: 1, Speed: actor.Fast, Size: actor.SizeFloor,
			Abilities:      actor.Abilities{Melee: 35, Dodge: 20, Stealth: 40},
			CanLeaveCorpse: true, CanBleed: true, SeeInDarkness: true,
			TurnsAware: 5, Intrinsic: "bite", AI: "skittish",
		},
		{
			ID: "cultist", Name: "Cultist", NameThe: "The Cultist", Glyph: "P",
			HP: 10, Spirit: 10, Speed: actor.Normal, Size: actor.SizeHumanoid,
			Abilities:      actor.Abilities{Melee: 40, Ranged: 45, Dodge: 10},
			CanLeaveCorpse: true, CanBleed: true, Humanoid: true,
			TurnsAware: 10, Intrinsic: "fists",
		},
		{
			ID: "zombie", Name: "Zombie", NameThe: "The Zombie", Glyph: "Z",
			HP: 18, Spirit: 1, Speed: actor.Slow, Size: actor.SizeHumanoid,
			Abilities:      actor.Abilities{Melee: 45},
			CanLeaveCorpse: true, CanBleed: true, Undead: true,
			DeathMsg:   "The Zombie collapses.",
			TurnsAware: 12, Intrinsic: "claws",
		},
	}
}

func builtinWeapons() []*inventory.WeaponDef {
	return []*inventory.WeaponDef{
		{
			ID: "fists", Name: "Fists", MeleeDice: "1d2", DamageType: "physical",
			MeleeMethod: "blunt_medium", Weight: inventory.WeightNone, Intrinsic: true,
			PlayerMeleeVerb: "punch", MonsterMeleeVerb: "punches", EffectiveRange: -1,
		},
		{
			ID: "claws", Name: "Claws", MeleeDice: "1d6", DamageType: "physical",
			MeleeMethod: "slashing", Weight: inventory.WeightNone, Intrinsic: true,
			PlayerMeleeVerb: "claw", MonsterMeleeVerb: "claws", EffectiveRange: -1,
		},
		{
			ID: "bite", Name: "Bite", MeleeDice: "1d3", DamageType: "physical",
			MeleeMethod: "piercing", Weight: inventory.WeightNone, Intrinsic: true,
			PlayerMeleeVerb: "bite", MonsterMeleeVerb: "bites", EffectiveRange: -1,
			OnHit: []inventory.OnHitEffect{{Condition: "poisoned", Turns: 4, Chance: 25}},
		},
		{
			ID: "machete", Name: "Machete", NameA: "a Machete", MeleeDice: "2d4",
			DamageType: "physical", MeleeMethod: "slashing", Weight: inventory.WeightMedium,
			MeleeSfx: "hit_medium", EffectiveRange: -1,
		},
		{
			ID: "pistol", Name: "Colt", NameA: "a Colt", MeleeDice: "1d4", RangedDice: "1d8+4",
			DamageType: "physical", MeleeMethod: "blunt_medium", Weight: inventory.WeightLight,
			AmmoCapacity: 6, EffectiveRange: -1, Ricochet: true, Glyph: "/",
			RangedSound: "I hear a gunshot.", MeleeSfx: "hit_small",
		},
		{
			ID: "sawed_off", Name: "Sawed-off Shotgun", NameA: "a Sawed-off Shotgun", MeleeDice: "1d6",
			RangedDice: "8d3", DamageType: "physical", MeleeMethod: "blunt_medium",
			Weight: inventory.WeightMedium, Shotgun: true, AmmoCapacity: 2, EffectiveRange: -1,
			RangedSound: "I hear a shotgun blast.", SoundLoud: true, MeleeSfx: "hit_medium",
		},
		{
			ID: "tommy_gun", Name: "Tommy Gun", NameA: "a Tommy Gun", MeleeDice: "1d6",
			RangedDice: "2d2+2", DamageType: "physical", MeleeMethod: "blunt_medium",
			Weight: inventory.WeightMedium, MachineGun: true, AmmoCapacity: 50, EffectiveRange: -1,
			RangedSound: "I hear the burst of a machine gun.", SoundLoud: true, Glyph: "/",
			MeleeSfx: "hit_medium",
		},
		{
			ID: "spike_gun", Name: "Spike Gun", NameA: "a Spike Gun", RangedDice: "1d7",
			DamageType: "physical", Weight: inventory.WeightMedium, Knockback: true,
			AmmoCapacity: 12, EffectiveRange: 3, Glyph: "/", RangedSound: "I hear a very crude gun.",
			Traits: []string{inventory.TraitNails},
		},
	}
}

func builtinArmor() []*inventory.ArmorDef {
	return []*inventory.ArmorDef{
		{ID: "leather_jacket", Name: "Leather Jacket", ArmorPoints: 1, DurabilityFactor: 1.0, Weight: inventory.WeightLight},
		{ID: "iron_suit", Name: "Iron Suit", ArmorPoints: 4, DurabilityFactor: 0.5, Weight: inventory.WeightHeavy},
	}
}

func builtinConditions() []*condition.Def {
	return []*condition.Def{
		{ID: "burning", Name: "Burning", MsgStart: "I am burning!", MsgEnd: "I am no longer burning."},
		{ID: "poisoned", Name: "Poisoned", MsgStart: "I am poisoned!", MsgEnd: "I am no longer poisoned."},
		{ID: "nailed", Name: "Nailed", MsgEnd: "I tear free."},
		{ID: "confused", Name: "Confused", MsgStart: "I am confused!", MsgEnd: "I come to my senses."},
		{ID: "r_fire", Name: "Fire resistance", Resists: []string{"fire"}},
	}
}

// fightMethods make up the "fight" task shared by the built-in domains:
// strike in reach, shoot, reload an empty gun, otherwise close in.
func fightMethods() []*ai.Method {
	return []*ai.Method{
		{TaskID: "fight", ID: "strike", Precondition: ai.PredAdjacent, Subtasks: []string{"melee_nearest"}},
		{TaskID: "fight", ID: "shoot", Precondition: ai.PredCanFire, Subtasks: []string{"fire_nearest"}},
		{TaskID: "fight", ID: "load", Precondition: ai.PredNeedsReload, Subtasks: []string{"reload"}},
		{TaskID: "fight", ID: "close_in", Precondition: ai.PredCanMove, Subtasks: []string{"approach_nearest"}},
	}
}

func fightOperators() []*ai.Operator {
	return []*ai.Operator{
		{ID: "melee_nearest", Action: ai.ActionMelee, Target: ai.TargetNearest},
		{ID: "fire_nearest", Action: ai.ActionFire, Target: ai.TargetNearest},
		{ID: "reload", Action: ai.ActionReload},
		{ID: "approach_nearest", Action: ai.ActionApproach, Target: ai.TargetNearest},
		{ID: "wait", Action: ai.ActionWait},
	}
}

func builtinDomains() []*ai.Domain {
	brute := &ai.Domain{
		ID:          DefaultAI,
		Description: "Fights whatever it knows of until one of them is dead.",
		Tasks:       []*ai.Task{{ID: ai.RootTask}, {ID: "fight"}},
		Methods: append([]*ai.Method{
			{TaskID: ai.RootTask, ID: "engage", Precondition: ai.PredHasFoe, Subtasks: []string{"fight"}},
			{TaskID: ai.RootTask, ID: "idle", Subtasks: []string{"wait"}},
		}, fightMethods()...),
		Operators: fightOperators(),
	}
	skittish := &ai.Domain{
		ID:          "skittish",
		Description: "Fights like a brute but runs once badly hurt.",
		Tasks:       []*ai.Task{{ID: ai.RootTask}, {ID: "fight"}, {ID: "escape"}},
		Methods: append([]*ai.Method{
			{TaskID: ai.RootTask, ID: "panic", Precondition: ai.PredHurt, Subtasks: []string{"escape"}},
			{TaskID: ai.RootTask, ID: "engage", Precondition: ai.PredHasFoe, Subtasks: []string{"fight"}},
			{TaskID: ai.RootTask, ID: "idle", Subtasks: []string{"wait"}},
			{TaskID: "escape", ID: "run", Precondition: ai.PredCanMove, Subtasks: []string{"flee_nearest"}},
		}, fightMethods()...),
		Operators: append(fightOperators(), &ai.Operator{ID: "flee_nearest", Action: ai.ActionFlee, Target: ai.TargetNearest}),
	}
	return []*ai.Domain{brute, skittish}
}

// arenaYAML is the level used when no level file is configured.
const arenaYAML = `
level:
  name: arena
  description: "A pillared hall behind a wooden door."
  rows:
    - "##############################"
    - "#............................#"
    - "#............................#"
    - "#.....##.............##......#"
    - "#.....##.............##......#"
    - "#............................#"
    - "#............%...............#"
    - "#............................#"
    - "##########+###################"
    - "#............................#"
    - "#............................#"
    - "##############################"
  lit:
    - {x0: 1, y0: 1, x1: 28, y1: 10}
  player: {x: 10, y: 10}
  spawns:
    - {species: ghoul, x: 4, y: 2, aware: true}
    - {species: rat, x: 25, y: 6}
    - {species: cultist, x: 15, y: 1, weapon: pistol, aware: true}
    - {species: zombie, x: 20, y: 9, armor: leather_jacket}
`
