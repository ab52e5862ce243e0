package usecase

import (
	"context"
	"log/slog"

	"TootBot/internal/composer"
	"TootBot/internal/domain"
	"TootBot/internal/planets"
	"TootBot/internal/ports"
)

// KindPlanets names the planetary distance composer.
const KindPlanets = "planets"

// Planets posts the current distance of Earth to the other planets.
type Planets struct {
	ephemeris ports.Ephemeris
	bodies    []domain.Body
	logger    *slog.Logger
}

var _ composer.Composer = (*Planets)(nil)

// NewPlanets wires the ephemeris; nil bodies means domain.Planets.
func NewPlanets(eph ports.Ephemeris, bodies []domain.Body, logger *slog.Logger) *Planets {
	if bodies == nil {
		bodies = domain.Planets
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planets{ephemeris: eph, bodies: bodies, logger: logger}
}

// Name identifies the composer inside the registry.
func (p *Planets) Name() string {
	return KindPlanets
}

// Compose measures all bodies at req.Now.
func (p *Planets) Compose(ctx context.Context, req composer.Request) (*domain.Post, error) {
	distances, err := planets.Snapshot(ctx, p.ephemeris, p.bodies, req.Now)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("snapshot computed", "bodies", len(distances))

	return &domain.Post{
		Kind: KindPlanets,
		Text: planets.Format(distances),
	}, nil
}
