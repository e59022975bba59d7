package domain

// Kind identifies which variant of Event a value is
type Kind string

const (
	KindItemPurchased Kind = "ITEM_PURCHASED"
	KindHeroKilled    Kind = "HERO_KILLED"
	KindSpellCast     Kind = "SPELL_CAST"
	KindDamageDone    Kind = "DAMAGE_DONE"
)

// Kinds lists every event kind in parser precedence order
var Kinds = []Kind{KindItemPurchased, KindHeroKilled, KindSpellCast, KindDamageDone}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindItemPurchased, KindHeroKilled, KindSpellCast, KindDamageDone:
		return true
	}
	return false
}

// Event is a single occurrence parsed from one combat log line.
// The set of implementations is closed: ItemPurchased, HeroKilled,
// SpellCast and DamageDone.
type Event interface {
	Kind() Kind
	EventHeader() Header
	isEvent()
}

// Header holds the fields every event kind carries
type Header struct {
	// Timestamp is milliseconds since the start of the session clock
	Timestamp int64
	Actor     string
}

// EventHeader returns the common fields
func (h Header) EventHeader() Header { return h }

// ItemPurchased is emitted for "<actor> buys item <item>"
type ItemPurchased struct {
	Header
	Item string
}

// HeroKilled is emitted for "<actor> kills <target> with <ability> Level <n>"
type HeroKilled struct {
	Header
	Target       string
	Ability      string
	AbilityLevel int
}

// SpellCast is emitted for "<actor> casts ability <ability> (lvl <n>) on <target>"
type SpellCast struct {
	Header
	Target       string
	Ability      string
	AbilityLevel int
}

// DamageDone is emitted for "<actor> hits <target> with <n> damage"
type DamageDone struct {
	Header
	Target string
	Damage int
}

func (ItemPurchased) Kind() Kind { return KindItemPurchased }
func (HeroKilled) Kind() Kind    { return KindHeroKilled }
func (SpellCast) Kind() Kind     { return KindSpellCast }
func (DamageDone) Kind() Kind    { return KindDamageDone }

func (ItemPurchased) isEvent() {}
func (HeroKilled) isEvent()    {}
func (SpellCast) isEvent()     {}
func (DamageDone) isEvent()    {}
