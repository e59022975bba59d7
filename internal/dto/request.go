package dto

// MatchURI binds the match id path parameter
type MatchURI struct {
	MatchID string `uri:"matchId" binding:"required" example:"5b0c1e0e-3f53-4b7a-9c0d-7d8f0e6c2a11"`
}

// HeroURI binds the match id and hero name path parameters
type HeroURI struct {
	MatchID  string `uri:"matchId" binding:"required" example:"5b0c1e0e-3f53-4b7a-9c0d-7d8f0e6c2a11"`
	HeroName string `uri:"heroName" binding:"required" example:"snapfire"`
}
