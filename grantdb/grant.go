// Package grantdb persists authorization grants with GORM and implements
// the engine's grant source for uint actor IDs. The engine stays free of
// storage concerns; this package owns the schema, the connection setup,
// and the seeding helpers.
package grantdb

import "time"

// Grant is one persisted permission row: an actor may perform an action
// on an object type, either in general (ObjectID NULL) or on one
// specific object. Rows are scoped by segment so a single database can
// serve several isolated deployments.
type Grant struct {
	ID         uint   `gorm:"primaryKey"`
	Segment    string `gorm:"size:64;index:idx_grants_lookup,priority:1"`
	ActorID    uint   `gorm:"index:idx_grants_lookup,priority:2"`
	ActionID   int    `gorm:"index:idx_grants_lookup,priority:3"`
	ObjectType string `gorm:"size:64;index:idx_grants_lookup,priority:4"`
	ObjectID   *uint  `gorm:"index:idx_grants_lookup,priority:5"` // NULL = general grant
	CreatedAt  time.Time
}
