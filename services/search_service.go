package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"parkeasy/models"
	"parkeasy/utils"
)

// Keyword search over listings. Queries are normalized to ASCII lowercase,
// matched fuzzily against location names, and scored per listing so results
// come back in relevance order.

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

var evKeywords = []string{"ev", "charger", "charging", "electric", "tesla"}

// prepareLocationList collects the unique simplified location names in the
// result set for the closest-match index.
func prepareLocationList(listings []models.Listing) []string {
	uniqueValues := make(map[string]bool)
	for i := range listings {
		name := utils.SimplifyLocation(listings[i].Location)
		if name != "" {
			uniqueValues[normalizeInput(name)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

func queryWantsEVCharger(query string) bool {
	for _, kw := range evKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

func calculateListingScore(query string, listing *models.Listing, cmLocation *closestmatch.ClosestMatch) int {
	score := 0

	title := normalizeInput(listing.Title)
	if strings.Contains(title, query) || strings.Contains(query, title) {
		score += 20
	} else if calculateSimilarity(query, title) > 0.7 {
		score += 14
	}

	location := normalizeInput(utils.SimplifyLocation(listing.Location))
	if location != "" && cmLocation.Closest(query) == location {
		score += 13
	}
	for _, word := range strings.Fields(query) {
		if len(word) >= 3 && strings.Contains(location, word) {
			score += 5
			break
		}
	}

	if queryWantsEVCharger(query) && listing.HasEVCharger {
		score += 15
	}

	description := normalizeInput(listing.Description)
	for _, word := range strings.Fields(query) {
		if len(word) >= 4 && strings.Contains(description, word) {
			score += 4
		}
	}

	return score
}

// SearchListingsByKeyword returns the listings matching a free-text query,
// best match first. Listings that score zero are dropped.
func SearchListingsByKeyword(query string, listings []models.Listing) []models.Listing {
	normalizedQuery := normalizeInput(query)
	if normalizedQuery == "" {
		return listings
	}

	cmLocation := createMatcher(prepareLocationList(listings))

	type scored struct {
		listing models.Listing
		score   int
	}

	scoreCh := make(chan scored, len(listings))
	var wg sync.WaitGroup
	for i := range listings {
		wg.Add(1)
		go func(listing models.Listing) {
			defer wg.Done()
			score := calculateListingScore(normalizedQuery, &listing, cmLocation)
			if score > 0 {
				scoreCh <- scored{listing: listing, score: score}
			}
		}(listings[i])
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	var results []scored
	for sc := range scoreCh {
		results = append(results, sc)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	matched := make([]models.Listing, 0, len(results))
	for _, sc := range results {
		matched = append(matched, sc.listing)
	}
	return matched
}
