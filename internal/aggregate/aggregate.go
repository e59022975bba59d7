// Package aggregate computes the reporting views of a match from its events.
// Every function is pure and deterministic for a given event order.
package aggregate

import (
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

// HeroKills is the number of heroes a hero killed
type HeroKills struct {
	Hero  string
	Kills int
}

// HeroItem is one item purchase by a hero
type HeroItem struct {
	Item      string
	Timestamp int64
}

// HeroSpells is how many times a hero cast an ability
type HeroSpells struct {
	Ability string
	Casts   int
}

// HeroDamage is the damage another actor landed on a hero
type HeroDamage struct {
	OtherActor  string
	Instances   int
	TotalDamage int64
}

// Kills counts HERO_KILLED events per actor, ordered by first appearance
func Kills(events []domain.Event) []HeroKills {
	groups := newOrderedGroups[string, int]()
	for _, e := range events {
		if kill, ok := e.(domain.HeroKilled); ok {
			*groups.at(kill.Actor)++
		}
	}

	out := make([]HeroKills, 0, groups.len())
	groups.each(func(hero string, kills int) {
		out = append(out, HeroKills{Hero: hero, Kills: kills})
	})
	return out
}

// Items lists every item hero purchased, in event order
func Items(events []domain.Event, hero string) []HeroItem {
	out := make([]HeroItem, 0)
	for _, e := range events {
		if purchase, ok := e.(domain.ItemPurchased); ok && purchase.Actor == hero {
			out = append(out, HeroItem{Item: purchase.Item, Timestamp: purchase.Timestamp})
		}
	}
	return out
}

// Spells counts the abilities hero cast, ordered by first cast
func Spells(events []domain.Event, hero string) []HeroSpells {
	groups := newOrderedGroups[string, int]()
	for _, e := range events {
		if cast, ok := e.(domain.SpellCast); ok && cast.Actor == hero {
			*groups.at(cast.Ability)++
		}
	}

	out := make([]HeroSpells, 0, groups.len())
	groups.each(func(ability string, casts int) {
		out = append(out, HeroSpells{Ability: ability, Casts: casts})
	})
	return out
}

// DamageTaken groups the damage landed on hero by the actor that dealt it.
// Events without an actor are ignored.
func DamageTaken(events []domain.Event, hero string) []HeroDamage {
	type tally struct {
		instances int
		total     int64
	}

	groups := newOrderedGroups[string, tally]()
	for _, e := range events {
		hit, ok := e.(domain.DamageDone)
		if !ok || hit.Target != hero || hit.Actor == "" {
			continue
		}
		t := groups.at(hit.Actor)
		t.instances++
		t.total += int64(hit.Damage)
	}

	out := make([]HeroDamage, 0, groups.len())
	groups.each(func(actor string, t tally) {
		out = append(out, HeroDamage{OtherActor: actor, Instances: t.instances, TotalDamage: t.total})
	})
	return out
}
