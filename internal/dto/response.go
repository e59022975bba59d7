package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"combat log must not be blank"`
}

// IngestMatchResponse represents a successful combat log ingestion
type IngestMatchResponse struct {
	MatchID string `json:"match_id" example:"5b0c1e0e-3f53-4b7a-9c0d-7d8f0e6c2a11"`
	Status  string `json:"status,omitempty" example:"queued"`
}

// HeroKills represents the kill count of one hero
type HeroKills struct {
	Hero  string `json:"hero" example:"snapfire"`
	Kills int    `json:"kills" example:"4"`
}

// HeroItem represents one item purchase
type HeroItem struct {
	Item      string `json:"item" example:"blink"`
	Timestamp int64  `json:"timestamp" example:"750500"`
}

// HeroSpells represents how often a hero cast one spell
type HeroSpells struct {
	Spell string `json:"spell" example:"snapfire_scatterblast"`
	Casts int    `json:"casts" example:"12"`
}

// HeroDamage represents the damage one attacker dealt to the queried hero.
// Target names the attacker to stay compatible with existing consumers.
type HeroDamage struct {
	Target          string `json:"target" example:"bloodseeker"`
	DamageInstances int    `json:"damage_instances" example:"21"`
	TotalDamage     int64  `json:"total_damage" example:"1894"`
}

// MatchSummary represents an overview of a match
type MatchSummary struct {
	MatchID     string         `json:"match_id" example:"5b0c1e0e-3f53-4b7a-9c0d-7d8f0e6c2a11"`
	TotalEvents int            `json:"total_events" example:"3412"`
	Events      map[string]int `json:"events"`
	Heroes      []string       `json:"heroes" example:"snapfire,mars"`
	DurationMs  int64          `json:"duration_ms" example:"2541812"`
}
