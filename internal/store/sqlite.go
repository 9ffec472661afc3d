package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
)

// ErrNotFound is returned when a friend does not exist (or its removal
// cascade has already run).
var ErrNotFound = errors.New(config.ErrFriendNotFound)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS friends (
		id                     TEXT PRIMARY KEY,
		name                   TEXT NOT NULL,
		phone                  TEXT NOT NULL DEFAULT '',
		email                  TEXT NOT NULL DEFAULT '',
		notes                  TEXT NOT NULL DEFAULT '',
		photo                  BLOB,
		reminder_interval_days INTEGER NOT NULL,
		created_at             TEXT NOT NULL,
		last_contacted_at      TEXT,
		calendar_event_id      TEXT NOT NULL DEFAULT '',
		current_streak         INTEGER NOT NULL DEFAULT 0,
		longest_streak         INTEGER NOT NULL DEFAULT 0,
		last_streak_date       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_friends_name ON friends(name COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_friends_created ON friends(created_at);

	CREATE TABLE IF NOT EXISTS contact_logs (
		id           TEXT PRIMARY KEY,
		friend_id    TEXT NOT NULL REFERENCES friends(id),
		contacted_at TEXT NOT NULL,
		method       TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_logs_friend ON contact_logs(friend_id);
	CREATE INDEX IF NOT EXISTS idx_logs_contacted ON contact_logs(friend_id, contacted_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Timestamps are stored as RFC3339Nano text so save/load cycles preserve the
// instant exactly.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLiteStore) CreateFriend(ctx context.Context, f *model.Friend) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.ID == "" {
		f.ID = s.newID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO friends (id, name, phone, email, notes, photo, reminder_interval_days,
		                      created_at, last_contacted_at, calendar_event_id,
		                      current_streak, longest_streak, last_streak_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.Phone, f.Email, f.Notes, f.Photo, f.ReminderIntervalDays,
		formatTime(f.CreatedAt), formatTimePtr(f.LastContactedAt), f.CalendarEventID,
		f.CurrentStreak, f.LongestStreak, formatTimePtr(f.LastStreakDate))
	if err != nil {
		return fmt.Errorf("insert friend: %w", err)
	}
	return nil
}

const friendColumns = `id, name, phone, email, notes, photo, reminder_interval_days,
	created_at, last_contacted_at, calendar_event_id,
	current_streak, longest_streak, last_streak_date`

func scanFriend(row interface{ Scan(...any) error }) (*model.Friend, error) {
	var f model.Friend
	var createdAt string
	var lastContacted, lastStreak *string

	err := row.Scan(&f.ID, &f.Name, &f.Phone, &f.Email, &f.Notes, &f.Photo,
		&f.ReminderIntervalDays, &createdAt, &lastContacted, &f.CalendarEventID,
		&f.CurrentStreak, &f.LongestStreak, &lastStreak)
	if err != nil {
		return nil, err
	}

	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if f.LastContactedAt, err = parseTimePtr(lastContacted); err != nil {
		return nil, fmt.Errorf("parse last_contacted_at: %w", err)
	}
	if f.LastStreakDate, err = parseTimePtr(lastStreak); err != nil {
		return nil, fmt.Errorf("parse last_streak_date: %w", err)
	}
	return &f, nil
}

func (s *SQLiteStore) GetFriend(ctx context.Context, id string) (*model.Friend, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+friendColumns+` FROM friends WHERE id = ?`, id)
	f, err := scanFriend(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get friend: %w", err)
	}
	return f, nil
}

func (s *SQLiteStore) FindFriendByName(ctx context.Context, name string) (*model.Friend, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+friendColumns+` FROM friends WHERE name = ? COLLATE NOCASE LIMIT 1`, name)
	f, err := scanFriend(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find friend: %w", err)
	}
	return f, nil
}

func (s *SQLiteStore) UpdateFriend(ctx context.Context, f *model.Friend) error {
	if err := f.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE friends SET name = ?, phone = ?, email = ?, notes = ?, photo = ?,
		        reminder_interval_days = ?, last_contacted_at = ?, calendar_event_id = ?,
		        current_streak = ?, longest_streak = ?, last_streak_date = ?
		 WHERE id = ?`,
		f.Name, f.Phone, f.Email, f.Notes, f.Photo,
		f.ReminderIntervalDays, formatTimePtr(f.LastContactedAt), f.CalendarEventID,
		f.CurrentStreak, f.LongestStreak, formatTimePtr(f.LastStreakDate),
		f.ID)
	if err != nil {
		return fmt.Errorf("update friend: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFriend removes a friend and its contact logs. The cascade is an
// explicit two-step inside one transaction: a ContactLog without its owning
// Friend is meaningless and must never survive it.
func (s *SQLiteStore) DeleteFriend(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contact_logs WHERE friend_id = ?`, id); err != nil {
		return fmt.Errorf("delete contact logs: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM friends WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListFriends(ctx context.Context) ([]*model.Friend, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+friendColumns+` FROM friends ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []*model.Friend
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func (s *SQLiteStore) AppendContactLog(ctx context.Context, l *model.ContactLog) error {
	if l.ID == "" {
		l.ID = s.newID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_logs (id, friend_id, contacted_at, method, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.FriendID, formatTime(l.ContactedAt), string(l.Method), l.Notes)
	if err != nil {
		return fmt.Errorf("insert contact log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListContactLogs(ctx context.Context, friendID string) ([]*model.ContactLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, friend_id, contacted_at, method, notes
		 FROM contact_logs WHERE friend_id = ?
		 ORDER BY contacted_at DESC, id DESC`, friendID)
	if err != nil {
		return nil, fmt.Errorf("list contact logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.ContactLog
	for rows.Next() {
		var l model.ContactLog
		var contactedAt, method string
		if err := rows.Scan(&l.ID, &l.FriendID, &contactedAt, &method, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan contact log: %w", err)
		}
		if l.ContactedAt, err = parseTime(contactedAt); err != nil {
			return nil, fmt.Errorf("parse contacted_at: %w", err)
		}
		l.Method = model.Method(method)
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
