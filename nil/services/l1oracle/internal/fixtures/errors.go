package fixtures

import "errors"

var (
	ErrKeyExists           = errors.New("fixture is already stored into the database")
	ErrFixtureNotFound     = errors.New("fixture not found")
	ErrSerializationFailed = errors.New("failed to (de)serialize fixture")
)
