package recommendation

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a learner who wants five skills", t, func() {
		wanted := []string{"Go", "SQL", "Docker", "React", "Rust"}

		Convey("a perfect mentor gets every part of the score", func() {
			c := Candidate{
				AccountID:     1,
				OfferedSkills: []string{"go", "sql", "docker", "react", "rust"},
				AverageRating: 5,
				LastActiveAt:  now,
				Coins:         100,
			}
			r := Score(wanted, c, now)
			So(r.Score, ShouldEqual, 50+50+20+20+10)
			So(r.MatchedSkills, ShouldResemble, []string{"docker", "go", "react", "rust", "sql"})
		})

		Convey("no overlap contributes nothing from skills", func() {
			c := Candidate{AccountID: 2, OfferedSkills: []string{"Figma"}, AverageRating: 5, LastActiveAt: now, Coins: 100}
			r := Score(wanted, c, now)
			So(r.Score, ShouldEqual, 50)
			So(r.MatchedSkills, ShouldBeEmpty)
		})

		Convey("the score never drops as overlap grows", func() {
			offered := []string{}
			prev := -1
			for _, s := range wanted {
				offered = append(offered, s)
				r := Score(wanted, Candidate{OfferedSkills: offered, LastActiveAt: now}, now)
				So(r.Score, ShouldBeGreaterThanOrEqualTo, prev)
				prev = r.Score
			}
		})

		Convey("coins and rating are fractional before rounding", func() {
			c := Candidate{OfferedSkills: []string{"go"}, AverageRating: 3.7, Coins: 25}
			// 50 + 10 + 14.8 + 0 + 2.5 = 77.3
			So(Score(wanted, c, now).Score, ShouldEqual, 77)
		})
	})

	Convey("Activity steps down with days since last seen", t, func() {
		cases := []struct {
			ago    time.Duration
			points float64
		}{
			{0, 20},
			{23 * time.Hour, 20},
			{25 * time.Hour, 15},
			{3 * 24 * time.Hour, 15},
			{5 * 24 * time.Hour, 10},
			{20 * 24 * time.Hour, 5},
			{31 * 24 * time.Hour, 0},
		}
		for _, tc := range cases {
			So(activityPoints(now.Add(-tc.ago), now), ShouldEqual, tc.points)
		}
		So(activityPoints(time.Time{}, now), ShouldEqual, 0)
	})
}

func TestRank(t *testing.T) {
	now := time.Now()

	Convey("Rank sorts descending, breaks ties by id and keeps the top five", t, func() {
		wanted := []string{"go"}
		candidates := []Candidate{
			{AccountID: 9, OfferedSkills: []string{"go"}},
			{AccountID: 3, OfferedSkills: []string{"go"}},
			{AccountID: 4},
			{AccountID: 5, OfferedSkills: []string{"go"}, AverageRating: 5},
			{AccountID: 6},
			{AccountID: 7},
			{AccountID: 8},
		}

		results := Rank(wanted, candidates, now, 0)
		So(results, ShouldHaveLength, DefaultLimit)

		ids := []int64{}
		for _, r := range results {
			ids = append(ids, r.AccountID)
		}
		So(ids, ShouldResemble, []int64{5, 3, 9, 4, 6})
	})

	Convey("Rank of nothing is empty", t, func() {
		So(Rank(nil, nil, now, 5), ShouldBeEmpty)
	})
}
