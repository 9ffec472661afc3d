// Package calendar is the external-reminder collaborator: it turns friends
// into iCalendar artifacts and renders the subscription feed served to
// calendar clients. Failures here never touch core friend state.
package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/emersion/go-ical"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/schedule"
)

// Reminders is the collaborator contract consumed by the service layer. The
// returned artifact identifier is opaque to the caller; it is stored on the
// friend and passed back when the reminder is recreated or removed.
type Reminders interface {
	CreateOrUpdate(f *model.Friend, now time.Time) (string, error)
	Remove(artifactID string) error
}

// ArtifactID derives the deterministic reminder identifier for a friend.
// Hashing keeps it stable across feed rebuilds without exposing the raw ID.
func ArtifactID(friendID string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf(config.FormatHashInput, config.UIDSalt, friendID)))
	base := fmt.Sprintf("%x", hash[:config.UIDHashLength])
	return fmt.Sprintf(config.FormatUID, base, config.ICalDomain)
}

// ReminderBook implements Reminders as an in-memory event set rendered into
// a single ICS feed.
type ReminderBook struct {
	mu     sync.Mutex
	events map[string]*ical.Event
}

// NewReminderBook creates an empty reminder set.
func NewReminderBook() *ReminderBook {
	return &ReminderBook{events: make(map[string]*ical.Event)}
}

// CreateOrUpdate replaces the friend's reminder artifact and returns its
// identifier. The event is all-day at max(next contact date, today): an
// already-overdue friend is surfaced today, never back-dated.
func (b *ReminderBook) CreateOrUpdate(f *model.Friend, now time.Time) (string, error) {
	id := ArtifactID(f.ID)
	event := buildEvent(f, now, id)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[id] = event
	return id, nil
}

// Remove drops the artifact. Removing an unknown identifier is not an error;
// the friend may never have had a reminder created.
func (b *ReminderBook) Remove(artifactID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.events, artifactID)
	return nil
}

// Feed renders the current artifact set as an iCalendar document. An empty
// set yields a valid stub calendar so clients never flag the feed as broken.
func (b *ReminderBook) Feed(now time.Time) ([]byte, error) {
	b.mu.Lock()
	events := make([]*ical.Event, 0, len(b.events))
	for _, e := range b.events {
		events = append(events, e)
	}
	b.mu.Unlock()

	if len(events) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, e := range events {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// buildEvent constructs the all-day VEVENT with its display alarm.
// The alarm fires one hour before the event per the default reminder rule.
func buildEvent(f *model.Friend, now time.Time, artifactID string) *ical.Event {
	summary := fmt.Sprintf(config.ReminderSummaryFmt, f.Name)

	eventDay := schedule.DayStart(now)
	if due, ok := schedule.NextContactDate(f); ok {
		if d := schedule.DayStart(due); d.After(eventDay) {
			eventDay = d
		}
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, artifactID)
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(eventDay)
	event.Props.Set(dtStartProp)

	addAlarm(event, config.ReminderTrigger, summary)
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
