package planets

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"TootBot/internal/domain"
	"TootBot/internal/ports"
)

const (
	IncreaseIcon = "📈"
	DecreaseIcon = "📉"

	header = "Current distance of Earth to the other planets in the solar system:\n\n"
)

// Snapshot measures the distance of every body to Earth at now and one hour
// later, sorted by ascending current distance.
func Snapshot(ctx context.Context, eph ports.Ephemeris, bodies []domain.Body, now time.Time) ([]domain.PlanetDistance, error) {
	if eph == nil {
		return nil, fmt.Errorf("ephemeris is not configured")
	}

	next := now.Add(time.Hour)
	distances := make([]domain.PlanetDistance, 0, len(bodies))
	for _, body := range bodies {
		current, err := eph.Distance(ctx, domain.Earth, body, now)
		if err != nil {
			return nil, fmt.Errorf("distance to %s: %w", body.Name, err)
		}
		later, err := eph.Distance(ctx, domain.Earth, body, next)
		if err != nil {
			return nil, fmt.Errorf("distance to %s in one hour: %w", body.Name, err)
		}
		distances = append(distances, domain.PlanetDistance{
			Name:       body.Name,
			Distance:   current,
			Increasing: current < later,
		})
	}

	sort.SliceStable(distances, func(i, j int) bool {
		return distances[i].Distance < distances[j].Distance
	})
	return distances, nil
}

// Format renders a snapshot as post text.
func Format(distances []domain.PlanetDistance) string {
	lines := make([]string, 0, len(distances))
	for _, d := range distances {
		icon := DecreaseIcon
		if d.Increasing {
			icon = IncreaseIcon
		}
		lines = append(lines, fmt.Sprintf("%s: %.3f au %s", d.Name, d.Distance, icon))
	}
	return header + strings.Join(lines, "\n")
}
