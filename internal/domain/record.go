package domain

import (
	"fmt"
	"time"
)

// Record is the flat storage row of an Event, shared by the SQL backends.
// Fields outside the event kind's subset are nil.
type Record struct {
	MatchID      string  `ch:"match_id" db:"match_id"`
	Seq          uint32  `ch:"seq" db:"seq"`
	Kind         string  `ch:"kind" db:"kind"`
	Timestamp    int64   `ch:"timestamp" db:"timestamp"`
	Actor        string  `ch:"actor" db:"actor"`
	Target       *string `ch:"target" db:"target"`
	Ability      *string `ch:"ability" db:"ability"`
	AbilityLevel *int32  `ch:"ability_level" db:"ability_level"`
	Item         *string `ch:"item" db:"item"`
	Damage       *int64  `ch:"damage" db:"damage"`
}

// MatchRecord is the storage row of a Match
type MatchRecord struct {
	MatchID    string    `ch:"match_id" db:"match_id"`
	EventCount uint32    `ch:"event_count" db:"event_count"`
	IngestedAt time.Time `ch:"ingested_at" db:"ingested_at"`
}

// ToRecord flattens e into a storage row at position seq of its match
func ToRecord(matchID string, seq int, e Event) Record {
	h := e.EventHeader()
	r := Record{
		MatchID:   matchID,
		Seq:       uint32(seq),
		Kind:      string(e.Kind()),
		Timestamp: h.Timestamp,
		Actor:     h.Actor,
	}

	switch v := e.(type) {
	case ItemPurchased:
		r.Item = &v.Item
	case HeroKilled:
		level := int32(v.AbilityLevel)
		r.Target, r.Ability, r.AbilityLevel = &v.Target, &v.Ability, &level
	case SpellCast:
		level := int32(v.AbilityLevel)
		r.Target, r.Ability, r.AbilityLevel = &v.Target, &v.Ability, &level
	case DamageDone:
		damage := int64(v.Damage)
		r.Target, r.Damage = &v.Target, &damage
	}

	return r
}

// ToRecords flattens every event of m, preserving order
func ToRecords(m *Match) []Record {
	records := make([]Record, len(m.Events))
	for i, e := range m.Events {
		records[i] = ToRecord(m.ID, i, e)
	}
	return records
}

// FromRecord rebuilds the Event a row was flattened from
func FromRecord(r Record) (Event, error) {
	h := Header{Timestamp: r.Timestamp, Actor: r.Actor}

	switch Kind(r.Kind) {
	case KindItemPurchased:
		if r.Item == nil {
			return nil, fmt.Errorf("%s record %d is missing item", r.Kind, r.Seq)
		}
		return ItemPurchased{Header: h, Item: *r.Item}, nil
	case KindHeroKilled:
		if r.Target == nil || r.Ability == nil || r.AbilityLevel == nil {
			return nil, fmt.Errorf("%s record %d is missing target, ability or level", r.Kind, r.Seq)
		}
		return HeroKilled{Header: h, Target: *r.Target, Ability: *r.Ability, AbilityLevel: int(*r.AbilityLevel)}, nil
	case KindSpellCast:
		if r.Target == nil || r.Ability == nil || r.AbilityLevel == nil {
			return nil, fmt.Errorf("%s record %d is missing target, ability or level", r.Kind, r.Seq)
		}
		return SpellCast{Header: h, Target: *r.Target, Ability: *r.Ability, AbilityLevel: int(*r.AbilityLevel)}, nil
	case KindDamageDone:
		if r.Target == nil || r.Damage == nil {
			return nil, fmt.Errorf("%s record %d is missing target or damage", r.Kind, r.Seq)
		}
		return DamageDone{Header: h, Target: *r.Target, Damage: int(*r.Damage)}, nil
	}

	return nil, fmt.Errorf("unknown event kind %q in record %d", r.Kind, r.Seq)
}

// FromRecords rebuilds events from rows already sorted by Seq
func FromRecords(records []Record) ([]Event, error) {
	events := make([]Event, 0, len(records))
	for _, r := range records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
