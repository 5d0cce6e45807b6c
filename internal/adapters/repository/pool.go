// Package repository provides the week lifecycle store: typed, get-or-create
// accessors over the key-value store for settings, the week index, week
// metadata and pick sets.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fairway/pickem/internal/adapters/kv"
	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/pkg/metrics"
)

// Store keys. These are the wire-level names in the key-value store and must
// not change across deployments.
const (
	settingsKey = "global:settings"
	weeksKey    = "global:weeks"
)

func metaKey(week int) string  { return fmt.Sprintf("week:%d:meta", week) }
func picksKey(week int) string { return fmt.Sprintf("week:%d:picks", week) }

// Pool is the week lifecycle store. Every getter initializes and persists a
// default value on first call and returns the stored value thereafter.
type Pool struct {
	store    kv.Store
	clock    clockwork.Clock
	season   []string
	defaults model.Settings
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithClock sets the clock used for createdAt stamps.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Pool) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithSeason sets the ordered tournament list, one entry per week.
func WithSeason(season []string) Option {
	return func(p *Pool) {
		if len(season) > 0 {
			p.season = season
		}
	}
}

// WithDefaultSettings sets the Settings record created on first access.
func WithDefaultSettings(defaults model.Settings) Option {
	return func(p *Pool) {
		p.defaults = defaults
	}
}

// New creates a Pool over the given store.
func New(store kv.Store, opts ...Option) *Pool {
	p := &Pool{
		store: store,
		clock: clockwork.NewRealClock(),
		defaults: model.Settings{
			CurrentWeek:  1,
			AutoReveal:   true,
			RevealDow:    3,
			RevealHour:   21,
			RevealMinute: 0,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SeasonLength returns the number of configured weeks.
func (p *Pool) SeasonLength() int {
	return len(p.season)
}

// Tournament returns the tournament name for a week, falling back to a
// generic label past the configured season.
func (p *Pool) Tournament(week int) string {
	if week >= 1 && week <= len(p.season) {
		return p.season[week-1]
	}
	return fmt.Sprintf("Week %d", week)
}

// Settings returns the singleton settings record, creating it with the
// configured defaults on first access.
func (p *Pool) Settings(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	found, err := p.get(ctx, settingsKey, &s)
	if err != nil {
		return model.Settings{}, err
	}
	if found {
		return s, nil
	}

	s = p.defaults
	if err := p.put(ctx, settingsKey, s); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// PutSettings persists the settings record.
func (p *Pool) PutSettings(ctx context.Context, s model.Settings) error {
	return p.put(ctx, settingsKey, s)
}

// WeekIndex returns the ordered week index, creating a single active week 1
// entry on first access.
func (p *Pool) WeekIndex(ctx context.Context) (model.WeekIndex, error) {
	var idx model.WeekIndex
	found, err := p.get(ctx, weeksKey, &idx)
	if err != nil {
		return nil, err
	}
	if found {
		return idx, nil
	}

	idx = model.WeekIndex{{Week: 1, Tournament: p.Tournament(1), Status: model.StatusActive}}
	if err := p.put(ctx, weeksKey, idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// PutWeekIndex persists the week index.
func (p *Pool) PutWeekIndex(ctx context.Context, idx model.WeekIndex) error {
	return p.put(ctx, weeksKey, idx)
}

// WeekMeta returns the metadata record for a week, creating an unlocked,
// unrevealed record on first access.
func (p *Pool) WeekMeta(ctx context.Context, week int) (model.WeekMeta, error) {
	var meta model.WeekMeta
	found, err := p.get(ctx, metaKey(week), &meta)
	if err != nil {
		return model.WeekMeta{}, err
	}
	if found {
		return meta, nil
	}

	meta = model.WeekMeta{
		Week:       week,
		Tournament: p.Tournament(week),
		CreatedAt:  p.clock.Now().UTC(),
	}
	if err := p.put(ctx, metaKey(week), meta); err != nil {
		return model.WeekMeta{}, err
	}
	return meta, nil
}

// PutWeekMeta persists a week's metadata record.
func (p *Pool) PutWeekMeta(ctx context.Context, meta model.WeekMeta) error {
	return p.put(ctx, metaKey(meta.Week), meta)
}

// Picks returns the pick set for a week. A missing record yields an empty
// set without persisting anything; the set is only written on first submit.
func (p *Pool) Picks(ctx context.Context, week int) (model.PickSet, error) {
	var picks model.PickSet
	found, err := p.get(ctx, picksKey(week), &picks)
	if err != nil {
		return nil, err
	}
	if !found || picks == nil {
		return model.PickSet{}, nil
	}
	return picks, nil
}

// PutPicks persists a week's pick set.
func (p *Pool) PutPicks(ctx context.Context, week int, picks model.PickSet) error {
	return p.put(ctx, picksKey(week), picks)
}

func (p *Pool) get(ctx context.Context, key string, out any) (bool, error) {
	start := time.Now()
	data, found, err := p.store.Get(ctx, key)
	metrics.RecordStoreOp("get", float64(time.Since(start).Microseconds())/1000, err)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrCorruptRecord, key, err)
	}
	return true, nil
}

func (p *Pool) put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrEncodeRecord, key, err)
	}
	start := time.Now()
	err = p.store.Put(ctx, key, data)
	metrics.RecordStoreOp("put", float64(time.Since(start).Microseconds())/1000, err)
	return err
}
