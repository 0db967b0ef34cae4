package accessly

// Object is a target of an object-scoped check. Implement it on your
// models to enable object-scoped actions; the returned id must be stable
// for the object's lifetime (typically the persisted primary key), since
// it keys both cache entries and object grants.
type Object interface {
	ObjectID() uint
}
