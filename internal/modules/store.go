package modules

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/oinkcat/scripting-lang/internal/evaluator"
)

// Store is the `store` native module: persistent string key/value
// storage backed by SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the store database at path. Use
// ":memory:" for a throwaway in-process store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Module builds the `store` native module backed by this database.
func (s *Store) Module() *evaluator.Module {
	return &evaluator.Module{
		Name: "store",
		Attrs: map[string]evaluator.Object{
			"Set":    &evaluator.Builtin{Name: "Set", Fn: s.set},
			"Get":    &evaluator.Builtin{Name: "Get", Fn: s.get},
			"Has":    &evaluator.Builtin{Name: "Has", Fn: s.has},
			"Delete": &evaluator.Builtin{Name: "Delete", Fn: s.delete},
		},
	}
}

func storeError(err error) *evaluator.Error {
	return &evaluator.Error{
		Kind:    evaluator.RuntimeError,
		Message: "store: " + err.Error(),
	}
}

func stringKey(args []evaluator.Object) (string, *evaluator.Error) {
	key, ok := args[0].(*evaluator.String)
	if !ok {
		return "", &evaluator.Error{
			Kind:    evaluator.TypeError,
			Message: "store key must be a string",
		}
	}
	return key.Value, nil
}

// set stores a stringified value under a key, overwriting any previous
// value.
func (s *Store) set(args ...evaluator.Object) evaluator.Object {
	if len(args) != 2 {
		return &evaluator.Error{
			Kind:    evaluator.ArityError,
			Message: "Set takes 2 argument(s)",
		}
	}
	key, errObj := stringKey(args)
	if errObj != nil {
		return errObj
	}

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, args[1].Inspect())
	if err != nil {
		return storeError(err)
	}
	return evaluator.NULL
}

// get returns the stored value as a string, or null when absent.
func (s *Store) get(args ...evaluator.Object) evaluator.Object {
	if len(args) != 1 {
		return &evaluator.Error{
			Kind:    evaluator.ArityError,
			Message: "Get takes 1 argument(s)",
		}
	}
	key, errObj := stringKey(args)
	if errObj != nil {
		return errObj
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return evaluator.NULL
	}
	if err != nil {
		return storeError(err)
	}
	return &evaluator.String{Value: value}
}

func (s *Store) has(args ...evaluator.Object) evaluator.Object {
	if len(args) != 1 {
		return &evaluator.Error{
			Kind:    evaluator.ArityError,
			Message: "Has takes 1 argument(s)",
		}
	}
	key, errObj := stringKey(args)
	if errObj != nil {
		return errObj
	}

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM kv WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return evaluator.FALSE
	}
	if err != nil {
		return storeError(err)
	}
	return evaluator.TRUE
}

func (s *Store) delete(args ...evaluator.Object) evaluator.Object {
	if len(args) != 1 {
		return &evaluator.Error{
			Kind:    evaluator.ArityError,
			Message: "Delete takes 1 argument(s)",
		}
	}
	key, errObj := stringKey(args)
	if errObj != nil {
		return errObj
	}

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return storeError(err)
	}
	return evaluator.NULL
}
