package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fairway/pickem/internal/adapters/kv"
	"github.com/fairway/pickem/internal/adapters/repository"
	"github.com/fairway/pickem/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var testSeason = []string{"Genesis", "Cognizant", "Players"}

func newTestPool(t *testing.T) (*repository.Pool, *kv.Memory, *clockwork.FakeClock) {
	t.Helper()
	store := kv.NewMemory()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC))
	pool := repository.New(store,
		repository.WithClock(clock),
		repository.WithSeason(testSeason),
		repository.WithDefaultSettings(model.Settings{
			CurrentWeek: 1, AutoReveal: true, RevealDow: 3, RevealHour: 21,
		}),
	)
	return pool, store, clock
}

func TestSettingsGetOrCreate(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		pool, store, _ := newTestPool(t)

		Convey("First access creates and persists defaults", func() {
			s, err := pool.Settings(ctx)
			So(err, ShouldBeNil)
			So(s.CurrentWeek, ShouldEqual, 1)
			So(s.AutoReveal, ShouldBeTrue)
			So(s.RevealDow, ShouldEqual, 3)
			So(store.Len(), ShouldEqual, 1)

			Convey("And repeated access is idempotent", func() {
				again, err := pool.Settings(ctx)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, s)
				So(store.Len(), ShouldEqual, 1)
			})
		})

		Convey("PutSettings round-trips through the store", func() {
			s, _ := pool.Settings(ctx)
			s.CurrentWeek = 4
			So(pool.PutSettings(ctx, s), ShouldBeNil)

			got, err := pool.Settings(ctx)
			So(err, ShouldBeNil)
			So(got.CurrentWeek, ShouldEqual, 4)
		})
	})
}

func TestWeekIndexGetOrCreate(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		pool, _, _ := newTestPool(t)

		Convey("First access seeds week 1 as active", func() {
			idx, err := pool.WeekIndex(ctx)
			So(err, ShouldBeNil)
			So(len(idx), ShouldEqual, 1)
			So(idx[0], ShouldResemble, model.WeekIndexEntry{
				Week: 1, Tournament: "Genesis", Status: model.StatusActive,
			})
		})
	})
}

func TestWeekMetaGetOrCreate(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		pool, _, clock := newTestPool(t)

		Convey("First access creates an unlocked, unrevealed record", func() {
			meta, err := pool.WeekMeta(ctx, 2)
			So(err, ShouldBeNil)
			So(meta.Week, ShouldEqual, 2)
			So(meta.Tournament, ShouldEqual, "Cognizant")
			So(meta.Locked, ShouldBeFalse)
			So(meta.Revealed, ShouldBeFalse)
			So(meta.RevealedAt, ShouldBeNil)
			So(meta.CreatedAt.Equal(clock.Now().UTC()), ShouldBeTrue)
			So(meta.CheckInvariants(), ShouldBeTrue)
		})

		Convey("Weeks past the season get a generic tournament label", func() {
			meta, err := pool.WeekMeta(ctx, 9)
			So(err, ShouldBeNil)
			So(meta.Tournament, ShouldEqual, "Week 9")
		})

		Convey("Repeated access returns the stored record unchanged", func() {
			first, _ := pool.WeekMeta(ctx, 1)
			clock.Advance(48 * time.Hour)
			second, err := pool.WeekMeta(ctx, 1)
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
		})
	})
}

func TestPicks(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		pool, store, clock := newTestPool(t)

		Convey("Missing picks yield an empty set without persisting", func() {
			picks, err := pool.Picks(ctx, 1)
			So(err, ShouldBeNil)
			So(picks, ShouldResemble, model.PickSet{})
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("PutPicks then Picks round-trips", func() {
			picks := model.PickSet{"Tim": {Pick: "Scheffler", SubmittedAt: clock.Now().UTC()}}
			So(pool.PutPicks(ctx, 1, picks), ShouldBeNil)

			got, err := pool.Picks(ctx, 1)
			So(err, ShouldBeNil)
			So(got["Tim"].Pick, ShouldEqual, "Scheffler")
		})
	})
}

func TestCorruptRecord(t *testing.T) {
	Convey("Given a corrupt stored record", t, func() {
		ctx := context.Background()
		pool, store, _ := newTestPool(t)
		So(store.Put(ctx, "global:settings", []byte("{not json")), ShouldBeNil)

		Convey("The sentinel error surfaces", func() {
			_, err := pool.Settings(ctx)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, repository.ErrCorruptRecord), ShouldBeTrue)
		})
	})
}

func TestTournamentLookup(t *testing.T) {
	Convey("Given a three-week season", t, func() {
		pool, _, _ := newTestPool(t)

		So(pool.SeasonLength(), ShouldEqual, 3)
		So(pool.Tournament(1), ShouldEqual, "Genesis")
		So(pool.Tournament(3), ShouldEqual, "Players")
		So(pool.Tournament(4), ShouldEqual, "Week 4")
		So(pool.Tournament(0), ShouldEqual, "Week 0")
	})
}
