// Package service orchestrates the engines and collaborators: it owns the
// call-ordering contracts (streak before last-contacted overwrite) and the
// deferred-removal undo window. All collaborators are injected; nothing here
// reaches for process-wide state.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lowhung/wagwan/internal/calendar"
	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/roster"
	"github.com/lowhung/wagwan/internal/schedule"
	"github.com/lowhung/wagwan/internal/store"
	"github.com/lowhung/wagwan/internal/streak"
)

var (
	// ErrRemovalPending signals a second removal request during the undo window.
	ErrRemovalPending = errors.New(config.ErrRemovalPending)

	// ErrNoRemovalPending signals an undo with nothing to cancel.
	ErrNoRemovalPending = errors.New(config.ErrNoRemovalPending)
)

// Deps wires a Tracker. Store is required; Reminders may be nil when no
// calendar collaborator is configured; zero values fall back to defaults.
type Deps struct {
	Store               store.Store
	Reminders           calendar.Reminders
	Clock               schedule.Clock
	DefaultIntervalDays int
	UndoWindow          time.Duration
}

// Tracker is the single entry point the CLI talks to.
type Tracker struct {
	store           store.Store
	reminders       calendar.Reminders
	clock           schedule.Clock
	defaultInterval int
	undoWindow      time.Duration

	mu      sync.Mutex
	pending map[string]*pendingRemoval
}

type pendingRemoval struct {
	timer *time.Timer
	done  chan struct{}
}

// NewTracker builds a Tracker from its dependencies.
func NewTracker(deps Deps) *Tracker {
	if deps.Clock == nil {
		deps.Clock = schedule.RealClock{}
	}
	if deps.DefaultIntervalDays <= 0 {
		deps.DefaultIntervalDays = config.DefaultIntervalDays
	}
	if deps.UndoWindow <= 0 {
		deps.UndoWindow = config.UndoWindow
	}
	return &Tracker{
		store:           deps.Store,
		reminders:       deps.Reminders,
		clock:           deps.Clock,
		defaultInterval: deps.DefaultIntervalDays,
		undoWindow:      deps.UndoWindow,
		pending:         make(map[string]*pendingRemoval),
	}
}

// AddParams holds the user input for creating a friend.
type AddParams struct {
	Name         string
	Phone        string
	Email        string
	Notes        string
	Photo        []byte
	IntervalDays int // 0 applies the configured default
}

// AddFriend validates input, applies the default cadence, persists the friend
// with zeroed streak fields, and requests a reminder artifact. A calendar
// failure is logged and reported nowhere else; the friend is saved either way.
func (t *Tracker) AddFriend(ctx context.Context, p AddParams) (*model.Friend, error) {
	interval := p.IntervalDays
	if interval == 0 {
		interval = t.defaultInterval
	}

	f := &model.Friend{
		Name:                 strings.TrimSpace(p.Name),
		Phone:                p.Phone,
		Email:                p.Email,
		Notes:                p.Notes,
		Photo:                p.Photo,
		ReminderIntervalDays: interval,
		CreatedAt:            t.clock.Now(),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if err := t.store.CreateFriend(ctx, f); err != nil {
		return nil, err
	}
	t.refreshReminder(ctx, f)

	slog.Info(config.MsgFriendAdded,
		config.LogKeyComponent, config.CompService,
		config.LogKeyFriendID, f.ID,
		config.LogKeyFriend, f.Name,
	)
	return f, nil
}

// EditParams carries optional field updates; nil pointers leave the field
// untouched.
type EditParams struct {
	ID           string
	Name         *string
	Phone        *string
	Email        *string
	Notes        *string
	Photo        []byte
	IntervalDays *int
}

// EditFriend applies the given updates. Interval edits take effect on the
// next status derivation; status is never stored.
func (t *Tracker) EditFriend(ctx context.Context, p EditParams) (*model.Friend, error) {
	f, err := t.store.GetFriend(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		f.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		f.Phone = *p.Phone
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	if p.Photo != nil {
		f.Photo = p.Photo
	}
	if p.IntervalDays != nil {
		f.ReminderIntervalDays = *p.IntervalDays
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := t.store.UpdateFriend(ctx, f); err != nil {
		return nil, err
	}
	t.refreshReminder(ctx, f)
	return f, nil
}

// LogParams holds the user input for recording one interaction.
type LogParams struct {
	FriendID string
	At       time.Time // zero means now
	Method   model.Method
	Notes    string
}

// LogContact records an interaction and updates the streak. The streak engine
// runs against the due date derived from the previous contact, so it must run
// before LastContactedAt is overwritten; that ordering lives here and nowhere
// else. Returns the updated friend and the milestone, if one fired.
func (t *Tracker) LogContact(ctx context.Context, p LogParams) (*model.Friend, model.Milestone, bool, error) {
	f, err := t.store.GetFriend(ctx, p.FriendID)
	if err != nil {
		return nil, 0, false, err
	}

	at := p.At
	if at.IsZero() {
		at = t.clock.Now()
	}

	milestone, fired := streak.Update(f, at)
	f.LastContactedAt = &at

	log := &model.ContactLog{
		FriendID:    f.ID,
		ContactedAt: at,
		Method:      p.Method,
		Notes:       p.Notes,
	}
	if err := t.store.AppendContactLog(ctx, log); err != nil {
		return nil, 0, false, err
	}
	if err := t.store.UpdateFriend(ctx, f); err != nil {
		return nil, 0, false, err
	}
	t.refreshReminder(ctx, f)

	slog.Info(config.MsgContactLogged,
		config.LogKeyComponent, config.CompService,
		config.LogKeyFriendID, f.ID,
		config.LogKeyMethod, string(p.Method),
		config.LogKeyStreak, f.CurrentStreak,
	)
	if fired {
		slog.Info(config.MsgMilestone,
			config.LogKeyComponent, config.CompService,
			config.LogKeyFriendID, f.ID,
			config.LogKeyMilestone, milestone.String(),
		)
	}
	return f, milestone, fired, nil
}

// RemoveFriend starts the undo window: the destructive cascade is deferred by
// a timer owned here, reads keep working on the still-present entity, and
// UndoRemove cancels with no residual changes. The returned channel closes
// once the cascade has actually run. It never closes after a successful undo.
func (t *Tracker) RemoveFriend(ctx context.Context, id string) (<-chan struct{}, error) {
	f, err := t.store.GetFriend(ctx, id)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.pending[id]; exists {
		return nil, ErrRemovalPending
	}

	done := make(chan struct{})
	p := &pendingRemoval{done: done}
	p.timer = time.AfterFunc(t.undoWindow, func() {
		// The caller's context may be long gone when the timer fires.
		t.finishRemoval(context.Background(), id)
	})
	t.pending[id] = p

	slog.Info(config.MsgRemovalPending,
		config.LogKeyComponent, config.CompService,
		config.LogKeyFriendID, id,
		config.LogKeyFriend, f.Name,
	)
	return done, nil
}

// RemoveFriendNow skips the undo window and cascades immediately.
func (t *Tracker) RemoveFriendNow(ctx context.Context, id string) error {
	if _, err := t.store.GetFriend(ctx, id); err != nil {
		return err
	}
	return t.removeNow(ctx, id)
}

// UndoRemove cancels a pending removal. The friend and its logs are untouched.
func (t *Tracker) UndoRemove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, exists := t.pending[id]
	if !exists {
		return ErrNoRemovalPending
	}
	if !p.timer.Stop() {
		// Timer already fired; the cascade won the race.
		return ErrNoRemovalPending
	}
	delete(t.pending, id)

	slog.Info(config.MsgRemovalUndone,
		config.LogKeyComponent, config.CompService,
		config.LogKeyFriendID, id,
	)
	return nil
}

// RemovalPending reports whether the friend is inside an undo window.
func (t *Tracker) RemovalPending(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, exists := t.pending[id]
	return exists
}

func (t *Tracker) finishRemoval(ctx context.Context, id string) {
	t.mu.Lock()
	p, exists := t.pending[id]
	if !exists {
		t.mu.Unlock()
		return
	}
	delete(t.pending, id)
	t.mu.Unlock()

	if err := t.removeNow(ctx, id); err != nil {
		slog.Error(config.MsgRemovalFailed,
			config.LogKeyComponent, config.CompService,
			config.LogKeyFriendID, id,
			config.LogKeyError, err,
		)
	}
	close(p.done)
}

func (t *Tracker) removeNow(ctx context.Context, id string) error {
	// Best effort: the reminder artifact goes with the friend, but a calendar
	// failure must not block the cascade.
	if t.reminders != nil {
		if f, err := t.store.GetFriend(ctx, id); err == nil && f.CalendarEventID != "" {
			if err := t.reminders.Remove(f.CalendarEventID); err != nil {
				slog.Warn(config.MsgReminderFail,
					config.LogKeyComponent, config.CompCalendar,
					config.LogKeyError, err,
				)
			}
		}
	}

	if err := t.store.DeleteFriend(ctx, id); err != nil {
		return err
	}
	slog.Info(config.MsgFriendRemoved,
		config.LogKeyComponent, config.CompService,
		config.LogKeyFriendID, id,
	)
	return nil
}

// Roster lists friends with derived status, filtered and sorted, plus the
// per-status counts for the summary line.
func (t *Tracker) Roster(ctx context.Context, filter roster.Filter) ([]roster.Entry, map[model.Status]int, error) {
	friends, err := t.store.ListFriends(ctx)
	if err != nil {
		return nil, nil, err
	}
	now := t.clock.Now()
	return roster.Build(friends, now, filter), roster.Counts(friends, now), nil
}

// FriendDetail loads one friend with its full contact history.
func (t *Tracker) FriendDetail(ctx context.Context, id string) (*model.Friend, []*model.ContactLog, error) {
	f, err := t.store.GetFriend(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	logs, err := t.store.ListContactLogs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return f, logs, nil
}

// Resolve finds a friend by ID first, then by exact name.
func (t *Tracker) Resolve(ctx context.Context, ref string) (*model.Friend, error) {
	f, err := t.store.GetFriend(ctx, ref)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return t.store.FindFriendByName(ctx, ref)
}

// SyncReminders rebuilds every friend's reminder artifact, persisting any
// newly assigned artifact handle. Used by the feed server on each refresh.
func (t *Tracker) SyncReminders(ctx context.Context) error {
	if t.reminders == nil {
		return nil
	}
	friends, err := t.store.ListFriends(ctx)
	if err != nil {
		return err
	}
	now := t.clock.Now()
	for _, f := range friends {
		id, err := t.reminders.CreateOrUpdate(f, now)
		if err != nil {
			slog.Warn(config.MsgReminderFail,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyFriendID, f.ID,
				config.LogKeyError, err,
			)
			continue
		}
		if id != f.CalendarEventID {
			f.CalendarEventID = id
			if err := t.store.UpdateFriend(ctx, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// refreshReminder recreates one friend's artifact. Calendar failures are
// non-fatal to core state: the friend record stays valid and usable.
func (t *Tracker) refreshReminder(ctx context.Context, f *model.Friend) {
	if t.reminders == nil {
		return
	}
	id, err := t.reminders.CreateOrUpdate(f, t.clock.Now())
	if err != nil {
		slog.Warn(config.MsgReminderFail,
			config.LogKeyComponent, config.CompCalendar,
			config.LogKeyFriendID, f.ID,
			config.LogKeyError, err,
		)
		return
	}
	if id != f.CalendarEventID {
		f.CalendarEventID = id
		if err := t.store.UpdateFriend(ctx, f); err != nil {
			slog.Warn(config.MsgHandlePersist,
				config.LogKeyComponent, config.CompService,
				config.LogKeyFriendID, f.ID,
				config.LogKeyError, err,
			)
		}
	}
}
