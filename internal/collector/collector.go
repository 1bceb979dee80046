package collector

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ChartBalance/internal/model"
	"ChartBalance/internal/parser"
	"ChartBalance/internal/scoring"
)

// Collector runs the parse-and-score pipeline over a text source.
type Collector struct {
	Parser *parser.Parser
	Logger *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(p *parser.Parser, logger *zap.Logger) *Collector {
	return &Collector{Parser: p, Logger: logger}
}

// Collect reads src and assesses its text.
func (c *Collector) Collect(src Source) (*model.Assessment, error) {
	text, err := src.ReadText()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	return c.Assess(src.Name(), text)
}

// Assess parses and scores text. Blank text is the only failure; every
// unresolved point just contributes nothing.
func (c *Collector) Assess(name, text string) (*model.Assessment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNoText)
	}

	pos := c.Parser.Parse(text)
	for _, pt := range pos.Unresolved() {
		c.Logger.Warn("point unresolved, scoring without it",
			zap.String("source", name), zap.String("point", string(pt)))
	}

	a := scoring.Evaluate(pos)
	if a.RulerBonus == nil {
		c.Logger.Debug("no rulership bonus", zap.String("source", name))
	}
	a.ID = uuid.NewString()
	a.Source = name
	a.CreatedAt = time.Now().UTC()

	c.Logger.Info("chart assessed",
		zap.String("id", a.ID),
		zap.String("source", name),
		zap.Int("resolved", pos.Resolved()),
		zap.Int("element_total", a.ElementTotal()),
		zap.Bool("balanced", a.Balance.Balanced))
	return a, nil
}
