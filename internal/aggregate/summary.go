package aggregate

import (
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

// Summary is an overview of a whole match
type Summary struct {
	TotalEvents int
	ByKind      map[domain.Kind]int
	// Heroes appearing as actor or target, in first-appearance order
	Heroes     []string
	DurationMs int64
}

// Summarize counts events per kind and collects the heroes involved
func Summarize(events []domain.Event) Summary {
	s := Summary{
		TotalEvents: len(events),
		ByKind:      make(map[domain.Kind]int, len(domain.Kinds)),
		Heroes:      make([]string, 0),
	}
	for _, k := range domain.Kinds {
		s.ByKind[k] = 0
	}

	seen := make(map[string]struct{})
	addHero := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		s.Heroes = append(s.Heroes, name)
	}

	for _, e := range events {
		s.ByKind[e.Kind()]++

		h := e.EventHeader()
		if h.Timestamp > s.DurationMs {
			s.DurationMs = h.Timestamp
		}
		addHero(h.Actor)

		switch v := e.(type) {
		case domain.HeroKilled:
			addHero(v.Target)
		case domain.SpellCast:
			addHero(v.Target)
		case domain.DamageDone:
			addHero(v.Target)
		}
	}

	return s
}
