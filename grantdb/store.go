package grantdb

import (
	"context"
	"errors"

	"github.com/caryssaperez/accessly"
	"gorm.io/gorm"
)

// DefaultSegment scopes grants when no explicit segment is chosen.
const DefaultSegment = "global"

// Store answers grant lookups from the database. It implements
// accessly.GrantSource for uint actor IDs and is safe for concurrent
// reads (gorm connections pool internally). The segment is fixed at
// construction; lookups never cross segments.
type Store struct {
	db      *gorm.DB
	segment string
}

var _ accessly.GrantSource[uint] = (*Store)(nil)

// NewStore creates a store over the default segment.
func NewStore(db *gorm.DB) *Store {
	return NewSegmentStore(db, DefaultSegment)
}

// NewSegmentStore creates a store scoped to the given segment.
func NewSegmentStore(db *gorm.DB, segment string) *Store {
	return &Store{db: db, segment: segment}
}

// Segment returns the segment this store reads and writes.
func (s *Store) Segment() string { return s.segment }

// HasGeneralGrant reports whether a general grant row exists for the
// actor, action, and object type. Absence of a row is false, not an
// error.
func (s *Store) HasGeneralGrant(ctx context.Context, actorID uint, actionID int, objectType string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Grant{}).
		Where("segment = ? AND actor_id = ? AND action_id = ? AND object_type = ? AND object_id IS NULL",
			s.segment, actorID, actionID, objectType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasObjectGrant reports whether a grant row exists for the actor,
// action, and this specific object.
func (s *Store) HasObjectGrant(ctx context.Context, actorID uint, actionID int, objectType string, objectID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Grant{}).
		Where("segment = ? AND actor_id = ? AND action_id = ? AND object_type = ? AND object_id = ?",
			s.segment, actorID, actionID, objectType, objectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantGeneral records a general grant. Recording an existing grant is a
// no-op, so seeding can run repeatedly.
func (s *Store) GrantGeneral(ctx context.Context, actorID uint, actionID int, objectType string) error {
	return s.create(ctx, actorID, actionID, objectType, nil)
}

// Grant records a grant on one specific object. Idempotent like
// GrantGeneral.
func (s *Store) Grant(ctx context.Context, actorID uint, actionID int, objectType string, objectID uint) error {
	return s.create(ctx, actorID, actionID, objectType, &objectID)
}

// RevokeGeneral deletes the general grant row, if present.
func (s *Store) RevokeGeneral(ctx context.Context, actorID uint, actionID int, objectType string) error {
	return s.db.WithContext(ctx).
		Where("segment = ? AND actor_id = ? AND action_id = ? AND object_type = ? AND object_id IS NULL",
			s.segment, actorID, actionID, objectType).
		Delete(&Grant{}).Error
}

// Revoke deletes the grant row for one specific object, if present.
func (s *Store) Revoke(ctx context.Context, actorID uint, actionID int, objectType string, objectID uint) error {
	return s.db.WithContext(ctx).
		Where("segment = ? AND actor_id = ? AND action_id = ? AND object_type = ? AND object_id = ?",
			s.segment, actorID, actionID, objectType, objectID).
		Delete(&Grant{}).Error
}

func (s *Store) create(ctx context.Context, actorID uint, actionID int, objectType string, objectID *uint) error {
	q := s.db.WithContext(ctx).Model(&Grant{}).
		Where("segment = ? AND actor_id = ? AND action_id = ? AND object_type = ?",
			s.segment, actorID, actionID, objectType)
	if objectID == nil {
		q = q.Where("object_id IS NULL")
	} else {
		q = q.Where("object_id = ?", *objectID)
	}

	var existing Grant
	err := q.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&Grant{
		Segment:    s.segment,
		ActorID:    actorID,
		ActionID:   actionID,
		ObjectType: objectType,
		ObjectID:   objectID,
	}).Error
}
