// Package store provides durable persistence for friends and their contact
// logs. The engines never touch storage; they operate on the records this
// package loads and saves.
package store

import (
	"context"

	"github.com/lowhung/wagwan/internal/model"
)

// Store is the persistence collaborator contract. Mutations to streak- and
// status-relevant fields are durable once the call returns.
type Store interface {
	// CreateFriend persists a new friend, assigning its ID.
	CreateFriend(ctx context.Context, f *model.Friend) error

	// GetFriend loads one friend by ID.
	GetFriend(ctx context.Context, id string) (*model.Friend, error)

	// FindFriendByName loads one friend by exact name, case-insensitively.
	FindFriendByName(ctx context.Context, name string) (*model.Friend, error)

	// UpdateFriend persists every mutable field of an existing friend.
	UpdateFriend(ctx context.Context, f *model.Friend) error

	// DeleteFriend removes a friend and cascades to its contact logs in one
	// transaction: logs first, then the friend.
	DeleteFriend(ctx context.Context, id string) error

	// ListFriends returns all friends, oldest first.
	ListFriends(ctx context.Context) ([]*model.Friend, error)

	// AppendContactLog persists a new immutable contact log, assigning its ID.
	AppendContactLog(ctx context.Context, l *model.ContactLog) error

	// ListContactLogs returns a friend's logs, most recent contact first.
	ListContactLogs(ctx context.Context, friendID string) ([]*model.ContactLog, error)

	// Close releases the underlying database handle.
	Close() error
}
