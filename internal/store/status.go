package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// statusListCap mirrors the upper bound the status API has always applied
// to a single listing.
const statusListCap = 1000

// timestampLayout is fixed width so stored UTC timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// InsertStatus stores sc and returns the record as read back.
func (s *Store) InsertStatus(sc StatusCheck) (*StatusCheck, error) {
	_, err := s.db.Exec(
		`INSERT INTO status_checks (id, client_name, completed, timestamp) VALUES (?, ?, ?, ?)`,
		sc.ID, sc.ClientName, boolToInt(sc.Completed), sc.Timestamp.UTC().Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert status %s: %w", sc.ID, err)
	}
	return s.GetStatus(sc.ID)
}

func (s *Store) GetStatus(id string) (*StatusCheck, error) {
	sc := &StatusCheck{}
	var ts string
	var completed int
	err := s.db.QueryRow(
		`SELECT id, client_name, completed, timestamp FROM status_checks WHERE id = ?`, id,
	).Scan(&sc.ID, &sc.ClientName, &completed, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get status %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get status %s: %w", id, err)
	}
	if err := fillStatus(sc, completed, ts); err != nil {
		return nil, fmt.Errorf("get status %s: %w", id, err)
	}
	return sc, nil
}

// ListStatus returns records oldest first, at most limit of them. A limit of
// zero or one above the cap is clamped to the cap.
func (s *Store) ListStatus(limit int) ([]StatusCheck, error) {
	if limit <= 0 || limit > statusListCap {
		limit = statusListCap
	}
	rows, err := s.db.Query(
		`SELECT id, client_name, completed, timestamp FROM status_checks ORDER BY timestamp, rowid LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list status: %w", err)
	}
	defer rows.Close()

	var out []StatusCheck
	for rows.Next() {
		var sc StatusCheck
		var ts string
		var completed int
		if err := rows.Scan(&sc.ID, &sc.ClientName, &completed, &ts); err != nil {
			return nil, err
		}
		if err := fillStatus(&sc, completed, ts); err != nil {
			return nil, fmt.Errorf("list status: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Store) DeleteStatus(id string) error {
	res, err := s.db.Exec(`DELETE FROM status_checks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete status %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("delete status %s: %w", id, ErrNotFound)
	}
	return nil
}

func fillStatus(sc *StatusCheck, completed int, ts string) error {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return fmt.Errorf("parse timestamp of %s: %w", sc.ID, err)
	}
	sc.Completed = completed == 1
	sc.Timestamp = t
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
