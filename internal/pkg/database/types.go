package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UUIDs maps a Postgres uuid[] column.
type UUIDs []uuid.UUID

func (u UUIDs) Value() (driver.Value, error) {
	if u == nil {
		return "{}", nil
	}
	return pq.Array([]uuid.UUID(u)).Value()
}

func (u *UUIDs) Scan(src interface{}) error {
	var ids []uuid.UUID
	if err := pq.Array(&ids).Scan(src); err != nil {
		return err
	}
	*u = ids
	return nil
}

// JSON maps a jsonb column onto a typed value.
type JSON[T any] struct {
	V T
}

func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSON[T]) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		return json.Unmarshal(v, &j.V)
	case string:
		return json.Unmarshal([]byte(v), &j.V)
	default:
		return errors.New("database: unsupported jsonb source type")
	}
}

func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

func (j *JSON[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &j.V)
}
