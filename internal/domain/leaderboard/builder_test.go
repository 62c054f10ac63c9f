package leaderboard_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/standards-dev/propdash/internal/domain/leaderboard"
	"github.com/standards-dev/propdash/internal/domain/model"
)

func candidate(handle string, commits, score int64) model.Candidate {
	return model.Candidate{
		Rollup:  model.ContributorRollup{Handle: handle, DisplayName: handle},
		Metrics: model.ContributorMetrics{Commits: commits, Score: score},
	}
}

func TestBuildOrdering(t *testing.T) {
	Convey("Given candidates with distinct metric values", t, func() {
		candidates := []model.Candidate{
			candidate("low", 1, 100),
			candidate("high", 9, 1),
			candidate("mid", 5, 50),
		}

		Convey("When building the commits board", func() {
			entries := leaderboard.Build(candidates, leaderboard.DimCommits, 10)

			Convey("Then the board orders by metric value descending", func() {
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Handle, ShouldEqual, "high")
				So(entries[1].Handle, ShouldEqual, "mid")
				So(entries[2].Handle, ShouldEqual, "low")
			})

			Convey("And the ordering metric is surfaced as the entry value", func() {
				So(entries[0].Value, ShouldEqual, 9)
				So(entries[0].Score, ShouldEqual, 1)
			})
		})

		Convey("When building the overall board", func() {
			entries := leaderboard.Build(candidates, leaderboard.DimOverall, 10)

			Convey("Then it orders by composite score instead", func() {
				So(entries[0].Handle, ShouldEqual, "low")
				So(entries[0].Value, ShouldEqual, 100)
			})
		})
	})
}

func TestBuildTieBreaks(t *testing.T) {
	Convey("Given candidates tied on the ordering metric", t, func() {
		candidates := []model.Candidate{
			candidate("zoe", 5, 10),
			candidate("amy", 5, 20),
			candidate("bea", 5, 10),
		}

		Convey("When building the commits board", func() {
			entries := leaderboard.Build(candidates, leaderboard.DimCommits, 10)

			Convey("Then score breaks the first tie and handle the second", func() {
				So(entries[0].Handle, ShouldEqual, "amy")
				So(entries[1].Handle, ShouldEqual, "bea")
				So(entries[2].Handle, ShouldEqual, "zoe")
			})
		})
	})
}

func TestBuildRanksAndTruncation(t *testing.T) {
	Convey("Given more candidates than the limit", t, func() {
		candidates := []model.Candidate{
			candidate("a", 4, 0),
			candidate("b", 3, 0),
			candidate("c", 2, 0),
			candidate("d", 1, 0),
		}

		Convey("When building with limit 2", func() {
			entries := leaderboard.Build(candidates, leaderboard.DimCommits, 2)

			Convey("Then the board is truncated and ranks are dense 1-based", func() {
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When building with a negative limit", func() {
			entries := leaderboard.Build(candidates, leaderboard.DimCommits, -1)

			So(entries, ShouldBeEmpty)
		})

		Convey("When building from an empty candidate set", func() {
			entries := leaderboard.Build(nil, leaderboard.DimCommits, 10)

			So(entries, ShouldBeEmpty)
		})
	})
}

func TestBuildLeavesInputIntact(t *testing.T) {
	Convey("Given a candidate slice", t, func() {
		candidates := []model.Candidate{
			candidate("b", 1, 0),
			candidate("a", 2, 0),
		}

		Convey("When building a board", func() {
			_ = leaderboard.Build(candidates, leaderboard.DimCommits, 10)

			Convey("Then the caller's slice keeps its order", func() {
				So(candidates[0].Rollup.Handle, ShouldEqual, "b")
				So(candidates[1].Rollup.Handle, ShouldEqual, "a")
			})
		})
	})
}
