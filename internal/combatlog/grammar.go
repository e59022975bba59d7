package combatlog

import (
	"regexp"
	"strconv"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

const (
	heroPrefix = "npc_dota_hero_"
	itemPrefix = "item_"

	// optional "[HH:mm:ss.SSS] " token in front of every grammar.
	// Lines are not anchored at the end, trailing text after a recognized shape is ignored.
	linePrefix = `^(?:\[[^\]]*\]\s*)?`

	// ability levels are stored as 32-bit integers
	levelBits  = 32
	damageBits = strconv.IntSize
)

var (
	itemPurchasedPattern = regexp.MustCompile(linePrefix +
		heroPrefix + `(?P<actor>\S+) buys item ` + itemPrefix + `(?P<item>\S+)`)
	heroKilledPattern = regexp.MustCompile(linePrefix +
		heroPrefix + `(?P<actor>\S+) kills ` + heroPrefix + `(?P<target>\S+) with (?P<ability>\S+) Level (?P<level>\d+)`)
	spellCastPattern = regexp.MustCompile(linePrefix +
		heroPrefix + `(?P<actor>\S+) casts ability (?P<ability>\S+) \(lvl (?P<level>\d+)\) on ` + heroPrefix + `(?P<target>\S+)`)
	damageDonePattern = regexp.MustCompile(linePrefix +
		heroPrefix + `(?P<actor>\S+) hits ` + heroPrefix + `(?P<target>\S+) with (?P<damage>\d+) damage`)
)

// grammar pairs a line pattern with the builder that reads its own submatches
type grammar struct {
	kind    domain.Kind
	pattern *regexp.Regexp
	build   func(c captures, h domain.Header) (domain.Event, bool)
}

// grammars are tried in order; the first match wins
var grammars = []grammar{
	{
		kind:    domain.KindItemPurchased,
		pattern: itemPurchasedPattern,
		build: func(c captures, h domain.Header) (domain.Event, bool) {
			return domain.ItemPurchased{Header: h, Item: c.get("item")}, true
		},
	},
	{
		kind:    domain.KindHeroKilled,
		pattern: heroKilledPattern,
		build: func(c captures, h domain.Header) (domain.Event, bool) {
			level, ok := c.integer("level", levelBits)
			if !ok {
				return nil, false
			}
			return domain.HeroKilled{
				Header:       h,
				Target:       c.get("target"),
				Ability:      c.get("ability"),
				AbilityLevel: level,
			}, true
		},
	},
	{
		kind:    domain.KindSpellCast,
		pattern: spellCastPattern,
		build: func(c captures, h domain.Header) (domain.Event, bool) {
			level, ok := c.integer("level", levelBits)
			if !ok {
				return nil, false
			}
			return domain.SpellCast{
				Header:       h,
				Target:       c.get("target"),
				Ability:      c.get("ability"),
				AbilityLevel: level,
			}, true
		},
	},
	{
		kind:    domain.KindDamageDone,
		pattern: damageDonePattern,
		build: func(c captures, h domain.Header) (domain.Event, bool) {
			damage, ok := c.integer("damage", damageBits)
			if !ok {
				return nil, false
			}
			return domain.DamageDone{
				Header: h,
				Target: c.get("target"),
				Damage: damage,
			}, true
		},
	},
}

// captures is the submatch set of one pattern against one line
type captures struct {
	pattern *regexp.Regexp
	groups  []string
}

func (c captures) get(name string) string {
	idx := c.pattern.SubexpIndex(name)
	if idx < 0 || idx >= len(c.groups) {
		return ""
	}
	return c.groups[idx]
}

// integer reads a decimal capture, failing when it overflows bitSize
func (c captures) integer(name string, bitSize int) (int, bool) {
	n, err := strconv.ParseInt(c.get(name), 10, bitSize)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
