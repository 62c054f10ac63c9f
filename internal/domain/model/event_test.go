package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/standards-dev/propdash/internal/domain/model"
)

func TestActivityKind(t *testing.T) {
	Convey("Given the closed set of activity kinds", t, func() {
		Convey("Then every listed kind is valid", func() {
			for _, k := range model.Kinds() {
				So(k.Valid(), ShouldBeTrue)
			}
		})

		Convey("And anything outside the set is not", func() {
			So(model.ActivityKind("deploy").Valid(), ShouldBeFalse)
			So(model.ActivityKind("").Valid(), ShouldBeFalse)
		})
	})
}

func TestRepo(t *testing.T) {
	Convey("Given the closed set of repositories", t, func() {
		Convey("Then every listed repo is valid", func() {
			for _, r := range model.Repos() {
				So(r.Valid(), ShouldBeTrue)
			}
		})

		Convey("And anything outside the set is not", func() {
			So(model.Repo("forum").Valid(), ShouldBeFalse)
		})
	})
}

func TestMetricsTotal(t *testing.T) {
	Convey("Given a metrics record", t, func() {
		m := model.ContributorMetrics{
			Commits:      1,
			PRsOpened:    2,
			PRsMerged:    3,
			PRsClosed:    4,
			Reviews:      5,
			Comments:     6,
			IssuesOpened: 7,
		}

		Convey("Then Total maps each kind to its counter", func() {
			So(m.Total(model.KindCommit), ShouldEqual, 1)
			So(m.Total(model.KindPROpened), ShouldEqual, 2)
			So(m.Total(model.KindPRMerged), ShouldEqual, 3)
			So(m.Total(model.KindPRClosed), ShouldEqual, 4)
			So(m.Total(model.KindReview), ShouldEqual, 5)
			So(m.Total(model.KindComment), ShouldEqual, 6)
			So(m.Total(model.KindIssueOpened), ShouldEqual, 7)
			So(m.Total(model.ActivityKind("deploy")), ShouldEqual, 0)
		})
	})
}
