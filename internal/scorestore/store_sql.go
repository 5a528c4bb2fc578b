package scorestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore keeps the serialized score record as a JSON blob in a TEXT
// column, one row per key. Works against both supported drivers.
type SQLStore struct {
	db  *sql.DB
	key string
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, key: Key}
}

func (s *SQLStore) Get(ctx context.Context) (map[string]int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM score_records WHERE key=$1`, s.key)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return map[string]int{}, nil
		}
		return nil, err
	}
	scores := map[string]int{}
	if err := json.Unmarshal([]byte(blob), &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *SQLStore) Put(ctx context.Context, scores map[string]int) error {
	blob, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO score_records (key,value,updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`,
		s.key, string(blob), time.Now().Unix())
	return err
}

func (s *SQLStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM score_records WHERE key=$1`, s.key)
	return err
}
