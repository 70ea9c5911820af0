package fixtures

import (
	"context"
	"fmt"

	"github.com/NilFoundation/l1oracle/nil/internal/db"
	jsoniter "github.com/json-iterator/go"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonDbWriter[T any] struct {
	table   db.TableName
	storage *baseStorage
	upsert  bool
}

func newJSONWriter[T any](tableName db.TableName, storage *baseStorage, upsert bool) *jsonDbWriter[T] {
	return &jsonDbWriter[T]{
		table:   tableName,
		storage: storage,
		upsert:  upsert,
	}
}

func (w *jsonDbWriter[T]) putTx(ctx context.Context, key []byte, value T) error {
	data, err := jsonCodec.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	tx, err := w.storage.database.CreateRwTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if !w.upsert {
		exists, err := tx.Exists(w.table, key)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: table=%s key=%s", ErrKeyExists, w.table, key)
		}
	}

	if err := tx.Put(w.table, key, data); err != nil {
		return err
	}

	return w.storage.commit(tx)
}

func readJSON[T any](tx db.RoTx, table db.TableName, key []byte) (*T, error) {
	data, err := tx.Get(table, key)
	if err != nil {
		return nil, err
	}
	return decodeJSON[T](data)
}

func decodeJSON[T any](data []byte) (*T, error) {
	value := new(T)
	if err := jsonCodec.Unmarshal(data, value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return value, nil
}
