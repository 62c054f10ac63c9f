package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/standards-dev/propdash/internal/adapters/repository"
)

func TestMemStore(t *testing.T) {
	Convey("Given a seeded in-memory store", t, func() {
		docs := []map[string]any{
			{"handle": "alice", "totalCommits": int64(3)},
			{"username": "bob", "commits": int64(1)},
		}
		store := repository.NewMemStore(repository.WithDocs(docs))

		Convey("When listing rollups", func() {
			got, err := store.ListRollups(context.Background())

			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)
		})

		Convey("When fetching by handle", func() {
			doc, err := store.GetRollup(context.Background(), "alice")

			So(err, ShouldBeNil)
			So(doc["handle"], ShouldEqual, "alice")
		})

		Convey("When fetching by a legacy username field", func() {
			doc, err := store.GetRollup(context.Background(), "bob")

			So(err, ShouldBeNil)
			So(doc["username"], ShouldEqual, "bob")
		})

		Convey("When fetching an unknown handle", func() {
			_, err := store.GetRollup(context.Background(), "nobody")

			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When counting", func() {
			So(store.Count(context.Background()), ShouldEqual, 2)
		})

		Convey("When closing", func() {
			So(store.Close(), ShouldBeNil)
		})
	})

	Convey("Given a canceled context", t, func() {
		store := repository.NewMemStore()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When listing rollups", func() {
			_, err := store.ListRollups(ctx)

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("When fetching a rollup", func() {
			_, err := store.GetRollup(ctx, "alice")

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()

		Convey("When listing rollups", func() {
			got, err := store.ListRollups(context.Background())

			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}
