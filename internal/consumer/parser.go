package consumer

import (
	"fmt"
	"time"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/combatlog"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue"
)

// CombatLogMessageParser implements MessageParser for queued combat log payloads
type CombatLogMessageParser struct {
	parser *combatlog.Parser
	now    func() time.Time
}

// NewCombatLogMessageParser creates a parser that keeps the match id chosen by the API
func NewCombatLogMessageParser(parser *combatlog.Parser) *CombatLogMessageParser {
	return &CombatLogMessageParser{
		parser: parser,
		now:    time.Now,
	}
}

// Parse decodes the payload and parses the combat log it carries
func (p *CombatLogMessageParser) Parse(body []byte) (*domain.Match, error) {
	matchID, combatLog, err := queue.DecodeCombatLog(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode message body: %w", err)
	}

	match := p.parser.ParseWithID(matchID, combatLog)
	match.IngestedAt = p.now().UTC()

	return match, nil
}
