package normalize_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/standards-dev/propdash/internal/domain/model"
	"github.com/standards-dev/propdash/internal/domain/normalize"
)

func TestDecodeRollupAggregateSchema(t *testing.T) {
	Convey("Given a document in the aggregate schema", t, func() {
		doc := map[string]any{
			"handle":            "alice",
			"displayName":       "Alice",
			"avatarUrl":         "https://avatars.example.com/alice",
			"activityStatus":    "active",
			"totalCommits":      json.Number("10"),
			"totalPRsOpened":    json.Number("2"),
			"totalPRsMerged":    json.Number("1"),
			"totalPRsClosed":    json.Number("1"),
			"totalReviews":      json.Number("5"),
			"totalComments":     json.Number("7"),
			"totalIssuesOpened": json.Number("3"),
			"avgResponseHours":  json.Number("4.5"),
		}

		Convey("When decoding", func() {
			r, err := normalize.DecodeRollup(doc)

			Convey("Then every counter lands on the canonical record", func() {
				So(err, ShouldBeNil)
				So(r.Handle, ShouldEqual, "alice")
				So(r.DisplayName, ShouldEqual, "Alice")
				So(r.Status, ShouldEqual, "active")
				So(r.Totals.Commits, ShouldEqual, 10)
				So(r.Totals.PRsOpened, ShouldEqual, 2)
				So(r.Totals.PRsMerged, ShouldEqual, 1)
				So(r.Totals.PRsClosed, ShouldEqual, 1)
				So(r.Totals.Reviews, ShouldEqual, 5)
				So(r.Totals.Comments, ShouldEqual, 7)
				So(r.Totals.IssuesOpened, ShouldEqual, 3)
				So(r.AvgResponseHours, ShouldNotBeNil)
				So(*r.AvgResponseHours, ShouldAlmostEqual, 4.5)
			})
		})
	})
}

func TestDecodeRollupLegacySchema(t *testing.T) {
	Convey("Given a document in the legacy flat schema", t, func() {
		doc := map[string]any{
			"username":     "bob",
			"name":         "Bob",
			"avatar":       "https://avatars.example.com/bob",
			"status":       "inactive",
			"commits":      int64(4),
			"prsOpened":    int64(1),
			"reviews":      int64(2),
			"comments":     int64(9),
			"issuesOpened": int64(1),
		}

		Convey("When decoding", func() {
			r, err := normalize.DecodeRollup(doc)

			Convey("Then legacy field names are honored", func() {
				So(err, ShouldBeNil)
				So(r.Handle, ShouldEqual, "bob")
				So(r.DisplayName, ShouldEqual, "Bob")
				So(r.AvatarURL, ShouldEqual, "https://avatars.example.com/bob")
				So(r.Status, ShouldEqual, "inactive")
				So(r.Totals.Commits, ShouldEqual, 4)
				So(r.Totals.Reviews, ShouldEqual, 2)
				So(r.Totals.Comments, ShouldEqual, 9)
			})

			Convey("And counters absent from the document resolve to zero", func() {
				So(r.Totals.PRsMerged, ShouldEqual, 0)
				So(r.Totals.PRsClosed, ShouldEqual, 0)
				So(r.AvgResponseHours, ShouldBeNil)
			})
		})
	})
}

func TestDecodeRollupPrecedence(t *testing.T) {
	Convey("Given a document carrying both schemas for one counter", t, func() {
		doc := map[string]any{
			"handle":       "carol",
			"totalCommits": int64(10),
			"commits":      int64(3),
		}

		Convey("When decoding", func() {
			r, err := normalize.DecodeRollup(doc)

			Convey("Then the aggregate field wins", func() {
				So(err, ShouldBeNil)
				So(r.Totals.Commits, ShouldEqual, 10)
			})
		})
	})

	Convey("Given a null aggregate field next to a legacy one", t, func() {
		doc := map[string]any{
			"handle":       "dave",
			"totalCommits": nil,
			"commits":      int64(6),
		}

		Convey("When decoding", func() {
			r, err := normalize.DecodeRollup(doc)

			Convey("Then null falls through to the legacy value", func() {
				So(err, ShouldBeNil)
				So(r.Totals.Commits, ShouldEqual, 6)
			})
		})
	})
}

func TestDecodeRollupMalformed(t *testing.T) {
	Convey("Given documents with unusable values", t, func() {
		Convey("When a count is not numeric", func() {
			_, err := normalize.DecodeRollup(map[string]any{
				"handle":       "erin",
				"totalCommits": "ten",
			})

			Convey("Then decoding fails hard", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, normalize.ErrMalformedRecord), ShouldBeTrue)
			})
		})

		Convey("When the document has no handle", func() {
			_, err := normalize.DecodeRollup(map[string]any{"totalCommits": int64(1)})

			So(errors.Is(err, normalize.ErrMalformedRecord), ShouldBeTrue)
		})

		Convey("When the timeline is not an array", func() {
			_, err := normalize.DecodeRollup(map[string]any{
				"handle":   "frank",
				"timeline": "oops",
			})

			So(errors.Is(err, normalize.ErrMalformedRecord), ShouldBeTrue)
		})

		Convey("When a count is negative", func() {
			r, err := normalize.DecodeRollup(map[string]any{
				"handle":       "grace",
				"totalCommits": int64(-5),
			})

			Convey("Then it is clamped to zero rather than rejected", func() {
				So(err, ShouldBeNil)
				So(r.Totals.Commits, ShouldEqual, 0)
			})
		})
	})
}

func TestDecodeTimeline(t *testing.T) {
	Convey("Given a document with a mixed-quality timeline", t, func() {
		doc := map[string]any{
			"handle": "heidi",
			"timeline": []any{
				map[string]any{"kind": "commit", "repo": "proposals", "ts": "2024-06-01T10:00:00Z"},
				map[string]any{"type": "review", "repository": "website", "timestamp": "2024-05-20T08:00:00Z"},
				map[string]any{"kind": "teleport", "ts": "2024-06-01T10:00:00Z"},
				map[string]any{"kind": "comment", "ts": "not-a-time"},
				"not-an-object",
			},
		}

		Convey("When decoding", func() {
			r, err := normalize.DecodeRollup(doc)

			Convey("Then valid entries survive in both schemas and junk is dropped", func() {
				So(err, ShouldBeNil)
				So(r.Timeline, ShouldHaveLength, 2)
				So(r.Timeline[0].Kind, ShouldEqual, model.KindCommit)
				So(r.Timeline[0].Repo, ShouldEqual, model.RepoProposals)
				So(r.Timeline[0].TS, ShouldEqual, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
				So(r.Timeline[1].Kind, ShouldEqual, model.KindReview)
				So(r.Timeline[1].Repo, ShouldEqual, model.RepoWebsite)
			})
		})
	})
}

func TestDecodeRollupPurity(t *testing.T) {
	Convey("Given any document", t, func() {
		doc := map[string]any{
			"handle":       "ivan",
			"totalCommits": int64(2),
		}

		Convey("When decoding twice", func() {
			a, errA := normalize.DecodeRollup(doc)
			b, errB := normalize.DecodeRollup(doc)

			Convey("Then the results agree and the input is untouched", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
				So(doc, ShouldHaveLength, 2)
				So(doc["totalCommits"], ShouldEqual, int64(2))
			})
		})
	})
}

func TestMetricsFromTotals(t *testing.T) {
	Convey("Given lifetime totals", t, func() {
		totals := model.Totals{
			Commits:      10,
			PRsOpened:    2,
			PRsMerged:    3,
			PRsClosed:    1,
			Reviews:      5,
			Comments:     7,
			IssuesOpened: 4,
		}

		Convey("When mapping to metrics", func() {
			m := normalize.MetricsFromTotals(totals)

			Convey("Then the PR sum is derived and the score left unset", func() {
				So(m.PRs, ShouldEqual, 6)
				So(m.Commits, ShouldEqual, 10)
				So(m.Score, ShouldEqual, 0)
			})
		})
	})
}
