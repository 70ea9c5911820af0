package db

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

type RoTx interface {
	Exists(tableName TableName, key []byte) (bool, error)
	Get(tableName TableName, key []byte) ([]byte, error)
	Range(tableName TableName, from []byte, to []byte) (Iter, error)

	Rollback()
}

type RwTx interface {
	RoTx

	Put(tableName TableName, key, value []byte) error
	Delete(tableName TableName, key []byte) error

	Commit() error
}

type Iter interface {
	HasNext() bool
	Next() ([]byte, []byte, error)
	Close()
}

type DB interface {
	CreateRoTx(ctx context.Context) (RoTx, error)
	CreateRwTx(ctx context.Context) (RwTx, error)

	DropAll() error
	Close()
}
