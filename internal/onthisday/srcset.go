package onthisday

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"TootBot/internal/domain"
)

// Candidate is one alternate resolution of a responsive image.
type Candidate struct {
	URL   string
	Scale float64
}

// ParseSrcset splits a srcset attribute into its "<url> <scale>x" candidates.
// A candidate without descriptor has scale 1. Width descriptors and
// unparsable scales are rejected with domain.ErrMalformedSrcset.
func ParseSrcset(srcset string) ([]Candidate, error) {
	var (
		candidates []Candidate
		rest       = srcset
	)

	for {
		rest = strings.TrimLeftFunc(rest, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if rest == "" {
			return candidates, nil
		}

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		url := rest[:end]
		rest = rest[end:]

		// "a.jpg, b.jpg 2x": the comma sticks to the URL when no descriptor follows.
		if strings.HasSuffix(url, ",") {
			candidates = append(candidates, Candidate{URL: strings.TrimRight(url, ","), Scale: 1})
			continue
		}

		var descriptor string
		if comma := strings.IndexByte(rest, ','); comma >= 0 {
			descriptor, rest = rest[:comma], rest[comma+1:]
		} else {
			descriptor, rest = rest, ""
		}
		descriptor = strings.TrimSpace(descriptor)

		if descriptor == "" {
			candidates = append(candidates, Candidate{URL: url, Scale: 1})
			continue
		}

		scale, err := parseScale(descriptor)
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %q: %v", domain.ErrMalformedSrcset, url, err)
		}
		candidates = append(candidates, Candidate{URL: url, Scale: scale})
	}
}

func parseScale(descriptor string) (float64, error) {
	if !strings.HasSuffix(descriptor, "x") {
		return 0, fmt.Errorf("descriptor %q is not a scale", descriptor)
	}
	scale, err := strconv.ParseFloat(strings.TrimSuffix(descriptor, "x"), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return 0, fmt.Errorf("scale %q out of range", descriptor)
	}
	return scale, nil
}

// Largest returns the candidate with the highest scale. Among equal scales the
// last one wins. The input is not modified.
func Largest(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Scale < sorted[j].Scale })
	return sorted[len(sorted)-1], true
}
