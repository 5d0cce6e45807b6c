package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/pkg/logger"
	"github.com/fairway/pickem/pkg/metrics"
)

// CheckAutoReveal evaluates the reveal guard against the current week and
// applies the transition when due. It runs on every inbound request before
// routing; settings and the week index are lazily initialized here, which
// makes this the pool's ensure-initialized step as well. Idempotent.
func (s *Service) CheckAutoReveal(ctx context.Context) error {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return err
	}
	metrics.UpdateCurrentWeek(settings.CurrentWeek)

	meta, err := s.pool.WeekMeta(ctx, settings.CurrentWeek)
	if err != nil {
		return err
	}
	if !s.engine.Due(settings, meta) {
		return nil
	}

	idx, err := s.pool.WeekIndex(ctx)
	if err != nil {
		return err
	}
	if !s.engine.Apply(&meta, idx) {
		return nil
	}
	if err := s.pool.PutWeekMeta(ctx, meta); err != nil {
		return err
	}
	if err := s.pool.PutWeekIndex(ctx, idx); err != nil {
		return err
	}

	metrics.RecordReveal(TriggerAuto)
	s.logger.Info(ctx, "week auto-revealed",
		logger.Int("week", meta.Week),
		logger.String("tournament", meta.Tournament))
	return nil
}

// Status returns the current week's public status.
func (s *Service) Status(ctx context.Context) (Status, error) {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return Status{}, err
	}
	meta, err := s.pool.WeekMeta(ctx, settings.CurrentWeek)
	if err != nil {
		return Status{}, err
	}

	status := Status{
		CurrentWeek: settings.CurrentWeek,
		Tournament:  meta.Tournament,
		Locked:      meta.Locked,
		Revealed:    meta.Revealed,
		AutoReveal: AutoRevealInfo{
			Enabled:      settings.AutoReveal,
			RevealDow:    settings.RevealDow,
			RevealHour:   settings.RevealHour,
			RevealMinute: settings.RevealMinute,
		},
	}
	if settings.AutoReveal && !meta.Revealed {
		next := s.engine.NextOccurrence(settings)
		if meta.RevealAfter != nil {
			next = *meta.RevealAfter
		}
		status.NextReveal = &next
	}
	return status, nil
}

// Weeks returns the ordered week index.
func (s *Service) Weeks(ctx context.Context) (model.WeekIndex, error) {
	return s.pool.WeekIndex(ctx)
}

// Picks returns a week's picks view. week <= 0 means the current week.
// Hidden weeks expose only the submitted names unless admin is set.
func (s *Service) Picks(ctx context.Context, week int, admin bool) (PicksView, error) {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return PicksView{}, err
	}
	if week <= 0 {
		week = settings.CurrentWeek
	}

	meta, err := s.pool.WeekMeta(ctx, week)
	if err != nil {
		return PicksView{}, err
	}
	picks, err := s.pool.Picks(ctx, week)
	if err != nil {
		return PicksView{}, err
	}

	view := PicksView{
		Week:       meta.Week,
		Tournament: meta.Tournament,
		Locked:     meta.Locked,
		Revealed:   meta.Revealed,
		RevealedAt: meta.RevealedAt,
	}
	if meta.Revealed || admin {
		view.Picks = picks
	} else {
		view.Submitted = picks.Names()
	}
	return view, nil
}

// Submit records one participant's pick for the current week, overwriting
// any earlier pick. The week must not be locked.
func (s *Service) Submit(ctx context.Context, name, pick string) (SubmitReceipt, error) {
	if !s.isMember(name) {
		metrics.RecordSubmissionRejected("roster")
		return SubmitReceipt{}, fmt.Errorf("%w: %q; must be one of: %s",
			ErrUnknownParticipant, name, strings.Join(s.roster, ", "))
	}
	pick = strings.TrimSpace(pick)
	if pick == "" {
		metrics.RecordSubmissionRejected("empty_pick")
		return SubmitReceipt{}, ErrEmptyPick
	}

	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return SubmitReceipt{}, err
	}
	meta, err := s.pool.WeekMeta(ctx, settings.CurrentWeek)
	if err != nil {
		return SubmitReceipt{}, err
	}
	if meta.Locked {
		metrics.RecordSubmissionRejected("locked")
		return SubmitReceipt{}, fmt.Errorf("%w: week %d (%s); no more picks allowed",
			ErrWeekLocked, meta.Week, meta.Tournament)
	}

	// Read-modify-write; safe at this pool's concurrency level.
	picks, err := s.pool.Picks(ctx, settings.CurrentWeek)
	if err != nil {
		return SubmitReceipt{}, err
	}
	picks[name] = model.Pick{Pick: pick, SubmittedAt: s.clock.Now().UTC()}
	if err := s.pool.PutPicks(ctx, settings.CurrentWeek, picks); err != nil {
		return SubmitReceipt{}, err
	}

	metrics.RecordSubmissionAccepted()
	metrics.UpdatePicksSubmitted(len(picks))
	s.logger.Info(ctx, "pick recorded",
		logger.Int("week", meta.Week),
		logger.String("name", name))

	return SubmitReceipt{
		Week:       meta.Week,
		Tournament: meta.Tournament,
		Name:       name,
		Pick:       pick,
	}, nil
}

// Reveal forces the current week through the reveal transition regardless of
// the guard and returns the full pick set.
func (s *Service) Reveal(ctx context.Context) (RevealResult, error) {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return RevealResult{}, err
	}
	meta, err := s.forceReveal(ctx, settings.CurrentWeek, TriggerManual)
	if err != nil {
		return RevealResult{}, err
	}
	picks, err := s.pool.Picks(ctx, settings.CurrentWeek)
	if err != nil {
		return RevealResult{}, err
	}
	return RevealResult{Week: meta.Week, Tournament: meta.Tournament, Picks: picks}, nil
}

// AdvanceWeek moves the pool to the next week: the season-length check runs
// first so a rejected advance leaves all state untouched, then the current
// week is force-revealed and the next week's records are created.
func (s *Service) AdvanceWeek(ctx context.Context) (AdvanceResult, error) {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return AdvanceResult{}, err
	}

	next := settings.CurrentWeek + 1
	if next > s.pool.SeasonLength() {
		return AdvanceResult{}, fmt.Errorf("%w: season has %d weeks",
			ErrSeasonComplete, s.pool.SeasonLength())
	}

	if _, err := s.forceReveal(ctx, settings.CurrentWeek, TriggerAdvance); err != nil {
		return AdvanceResult{}, err
	}

	// The writes below are not atomic as a group; a crash mid-sequence is
	// repaired by the setWeek escape hatch.
	nextMeta := model.WeekMeta{
		Week:       next,
		Tournament: s.pool.Tournament(next),
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.pool.PutWeekMeta(ctx, nextMeta); err != nil {
		return AdvanceResult{}, err
	}
	if err := s.pool.PutPicks(ctx, next, model.PickSet{}); err != nil {
		return AdvanceResult{}, err
	}

	idx, err := s.pool.WeekIndex(ctx)
	if err != nil {
		return AdvanceResult{}, err
	}
	if entry := idx.Find(settings.CurrentWeek); entry != nil {
		entry.Status = model.StatusRevealed
	}
	idx = append(idx, model.WeekIndexEntry{
		Week: next, Tournament: nextMeta.Tournament, Status: model.StatusActive,
	})
	if err := s.pool.PutWeekIndex(ctx, idx); err != nil {
		return AdvanceResult{}, err
	}

	settings.CurrentWeek = next
	if err := s.pool.PutSettings(ctx, settings); err != nil {
		return AdvanceResult{}, err
	}

	metrics.RecordWeekAdvanced()
	metrics.UpdateCurrentWeek(next)
	metrics.UpdatePicksSubmitted(0)
	s.logger.Info(ctx, "advanced to next week",
		logger.Int("week", next),
		logger.String("tournament", nextMeta.Tournament))

	return AdvanceResult{
		PreviousWeek: next - 1,
		CurrentWeek:  next,
		Tournament:   nextMeta.Tournament,
	}, nil
}

// ViewAll returns meta and the full pick set for an arbitrary week,
// bypassing the reveal gate. week <= 0 means the current week.
func (s *Service) ViewAll(ctx context.Context, week int) (WeekView, error) {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return WeekView{}, err
	}
	if week <= 0 {
		week = settings.CurrentWeek
	}

	meta, err := s.pool.WeekMeta(ctx, week)
	if err != nil {
		return WeekView{}, err
	}
	picks, err := s.pool.Picks(ctx, week)
	if err != nil {
		return WeekView{}, err
	}
	return WeekView{
		Week:       meta.Week,
		Tournament: meta.Tournament,
		Locked:     meta.Locked,
		Revealed:   meta.Revealed,
		RevealedAt: meta.RevealedAt,
		Picks:      picks,
	}, nil
}

// SetWeek force-configures an arbitrary week as the active one: overwrites
// its metadata, marks earlier index entries revealed, re-sorts the index and
// repoints currentWeek. An escape hatch for correcting misconfiguration;
// bypasses sequential advancement and leaves existing picks untouched.
func (s *Service) SetWeek(ctx context.Context, week int, tournament string) (WeekView, error) {
	if week < 1 {
		return WeekView{}, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}
	if tournament = strings.TrimSpace(tournament); tournament == "" {
		tournament = s.pool.Tournament(week)
	}

	meta := model.WeekMeta{
		Week:       week,
		Tournament: tournament,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.pool.PutWeekMeta(ctx, meta); err != nil {
		return WeekView{}, err
	}

	idx, err := s.pool.WeekIndex(ctx)
	if err != nil {
		return WeekView{}, err
	}
	idx.MarkRevealedBefore(week)
	if entry := idx.Find(week); entry != nil {
		entry.Tournament = tournament
		entry.Status = model.StatusActive
	} else {
		idx = append(idx, model.WeekIndexEntry{
			Week: week, Tournament: tournament, Status: model.StatusActive,
		})
	}
	idx.Sort()
	if err := s.pool.PutWeekIndex(ctx, idx); err != nil {
		return WeekView{}, err
	}

	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return WeekView{}, err
	}
	settings.CurrentWeek = week
	if err := s.pool.PutSettings(ctx, settings); err != nil {
		return WeekView{}, err
	}

	metrics.UpdateCurrentWeek(week)
	s.logger.Warn(ctx, "week force-configured",
		logger.Int("week", week),
		logger.String("tournament", tournament))

	picks, err := s.pool.Picks(ctx, week)
	if err != nil {
		return WeekView{}, err
	}
	return WeekView{
		Week:       week,
		Tournament: tournament,
		Picks:      picks,
	}, nil
}

// SetAutoReveal toggles the scheduled reveal flag and returns the updated
// settings.
func (s *Service) SetAutoReveal(ctx context.Context, enabled bool) (model.Settings, error) {
	settings, err := s.pool.Settings(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	settings.AutoReveal = enabled
	if err := s.pool.PutSettings(ctx, settings); err != nil {
		return model.Settings{}, err
	}
	s.logger.Info(ctx, "auto-reveal toggled", logger.Bool("enabled", enabled))
	return settings, nil
}

// forceReveal applies the reveal transition to a week regardless of the
// guard, updating meta and the index. Idempotent.
func (s *Service) forceReveal(ctx context.Context, week int, trigger string) (model.WeekMeta, error) {
	meta, err := s.pool.WeekMeta(ctx, week)
	if err != nil {
		return model.WeekMeta{}, err
	}
	idx, err := s.pool.WeekIndex(ctx)
	if err != nil {
		return model.WeekMeta{}, err
	}
	if !s.engine.Apply(&meta, idx) {
		return meta, nil
	}
	if err := s.pool.PutWeekMeta(ctx, meta); err != nil {
		return model.WeekMeta{}, err
	}
	if err := s.pool.PutWeekIndex(ctx, idx); err != nil {
		return model.WeekMeta{}, err
	}

	metrics.RecordReveal(trigger)
	s.logger.Info(ctx, "week revealed",
		logger.Int("week", meta.Week),
		logger.String("trigger", trigger))
	return meta, nil
}
