// Package combatlog turns raw combat log text into typed domain events.
package combatlog

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

// Stats describes the outcome of parsing one log
type Stats struct {
	Lines   int
	Events  int
	Skipped int
}

// Parser converts combat log text into matches.
// It holds no per-call state and is safe for concurrent use.
type Parser struct {
	log   *zap.Logger
	newID func() string
}

// NewParser creates a parser that assigns random UUID match ids
func NewParser(log *zap.Logger) *Parser {
	return &Parser{
		log:   log,
		newID: uuid.NewString,
	}
}

// Parse parses text into a match with a freshly generated id
func (p *Parser) Parse(text string) *domain.Match {
	match, _ := p.ParseWithStats(p.newID(), text)
	return match
}

// ParseWithID parses text into a match carrying the given id
func (p *Parser) ParseWithID(matchID, text string) *domain.Match {
	match, _ := p.ParseWithStats(matchID, text)
	return match
}

// ParseWithStats parses text into a match and reports how many lines were recognized.
// Unrecognized lines are skipped; they never fail the parse.
func (p *Parser) ParseWithStats(matchID, text string) (*domain.Match, Stats) {
	var stats Stats
	match := &domain.Match{ID: matchID}

	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		event, ok := ParseLine(line)
		if !ok {
			stats.Skipped++
			p.log.Debug("Skipping unrecognized combat log line",
				zap.String("match_id", matchID),
				zap.Int("line", i+1))
			continue
		}

		match.Events = append(match.Events, event)
	}

	stats.Events = len(match.Events)
	return match, stats
}

// ParseLine classifies a single line. It returns false when no grammar matches.
func ParseLine(line string) (domain.Event, bool) {
	line = strings.TrimLeft(line, " \t")

	for _, g := range grammars {
		groups := g.pattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}

		c := captures{pattern: g.pattern, groups: groups}
		header := domain.Header{
			Timestamp: lineTimestamp(line),
			Actor:     c.get("actor"),
		}
		return g.build(c, header)
	}

	return nil, false
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
