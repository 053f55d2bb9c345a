package services

import (
	"sort"
	"strings"
	"sync"

	"hotelhub/dto"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	scoreNameContains = 30
	scoreNameSimilar  = 20
	scoreCity         = 13
	scoreAmenity      = 4
	maxAmenityScore   = 12
	similarityCutoff  = 0.7
)

// NormalizeInput lower-cases and transliterates to ASCII so "Jeju", "JEJU"
// and "제주" compare on the same footing.
func NormalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Similarity is 1 - levenshtein distance / longer length, in [0, 1].
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	// substitutions cost 2, so very different strings can go below zero
	if sim := 1.0 - float64(distance)/float64(maxLen); sim > 0 {
		return sim
	}
	return 0
}

type hotelScorer struct {
	cities *closestmatch.ClosestMatch
}

func newHotelScorer(hotels []dto.HotelSummary) *hotelScorer {
	seen := make(map[string]struct{})
	var cities []string
	for _, h := range hotels {
		c := NormalizeInput(h.City)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			cities = append(cities, c)
		}
	}
	s := &hotelScorer{}
	if len(cities) > 0 {
		s.cities = closestmatch.New(cities, []int{2, 3})
	}
	return s
}

func (s *hotelScorer) score(query string, h *dto.HotelSummary) int {
	q := NormalizeInput(query)
	if q == "" {
		return 0
	}
	score := 0

	name := NormalizeInput(h.Name)
	switch {
	case strings.Contains(name, q):
		score += scoreNameContains
	case Similarity(q, name) > similarityCutoff:
		score += scoreNameSimilar
	}

	city := NormalizeInput(h.City)
	if city != "" {
		if strings.Contains(q, city) || strings.Contains(city, q) {
			score += scoreCity
		} else if s.cities != nil && s.cities.Closest(q) == city && Similarity(q, city) >= 0.5 {
			score += scoreCity
		}
	}

	amenityScore := 0
	for _, a := range h.Amenities {
		na := NormalizeInput(a)
		if na == "" {
			continue
		}
		if strings.Contains(q, na) || Similarity(q, na) > similarityCutoff {
			amenityScore += scoreAmenity
			if amenityScore >= maxAmenityScore {
				break
			}
		}
	}
	return score + amenityScore
}

// ScoreHotels keeps hotels matching the free-text query, best match first and
// rating as the tie breaker.
func ScoreHotels(query string, hotels []dto.HotelSummary) []dto.HotelSummary {
	scorer := newHotelScorer(hotels)
	scored := make([]dto.HotelSummary, len(hotels))

	var wg sync.WaitGroup
	for i := range hotels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := hotels[i]
			h.Score = scorer.score(query, &h)
			scored[i] = h
		}(i)
	}
	wg.Wait()

	out := make([]dto.HotelSummary, 0, len(scored))
	for _, h := range scored {
		if h.Score > 0 {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Rating > out[j].Rating
	})
	return out
}
