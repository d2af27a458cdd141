// Package recommendation ranks potential mentors for a learner.
//
// Scores are independent per-mentor evaluations built from four parts:
// skill overlap, rating, recent activity and coin balance.
package recommendation

import (
	"math"
	"sort"
	"strings"
	"time"
)

// DefaultLimit is how many mentors a learner is shown
const DefaultLimit = 5

const (
	overlapBase     = 50
	overlapPerSkill = 10
	overlapBonusCap = 50
	ratingWeight    = 4
	coinDivisor     = 10
	coinCap         = 10
)

// Candidate is the slice of a mentor's profile the scorer looks at
type Candidate struct {
	AccountID     int64
	OfferedSkills []string
	AverageRating float64
	LastActiveAt  time.Time
	Coins         int
}

// Result is a scored candidate
type Result struct {
	AccountID     int64
	Score         int
	MatchedSkills []string
}

// Overlap returns the lower-cased skill names present in both lists, sorted
func Overlap(wanted, offered []string) []string {
	want := make(map[string]struct{}, len(wanted))
	for _, name := range wanted {
		want[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	seen := make(map[string]struct{})
	matched := []string{}
	for _, name := range offered {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := want[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		matched = append(matched, key)
	}
	sort.Strings(matched)
	return matched
}

// activityPoints steps down with whole days since the last activity, partial days rounded up
func activityPoints(lastActive, now time.Time) float64 {
	if lastActive.IsZero() {
		return 0
	}
	elapsed := now.Sub(lastActive)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := math.Ceil(elapsed.Hours() / 24)

	switch {
	case days <= 1:
		return 20
	case days <= 3:
		return 15
	case days <= 7:
		return 10
	case days <= 30:
		return 5
	}
	return 0
}

// Score rates one candidate against the learner's wanted skills
func Score(wanted []string, c Candidate, now time.Time) Result {
	matched := Overlap(wanted, c.OfferedSkills)

	var total float64
	if len(matched) > 0 {
		total += overlapBase + math.Min(float64(len(matched)*overlapPerSkill), overlapBonusCap)
	}
	total += c.AverageRating * ratingWeight
	total += activityPoints(c.LastActiveAt, now)
	total += math.Min(float64(c.Coins)/coinDivisor, coinCap)

	return Result{
		AccountID:     c.AccountID,
		Score:         int(math.Round(total)),
		MatchedSkills: matched,
	}
}

// Rank scores every candidate and returns the best limit results, highest first.
// Equal scores are ordered by account id. A limit <= 0 uses DefaultLimit.
func Rank(wanted []string, candidates []Candidate, now time.Time, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, Score(wanted, c, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].AccountID < results[j].AccountID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
