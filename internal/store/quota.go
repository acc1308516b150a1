package store

import (
	"database/sql"
	"errors"
)

// Consume records one checkup request for the caller on the given day and
// reports whether it was within the daily limit. The check and increment
// happen in a single conditional UPDATE so concurrent requests cannot
// overshoot the limit.
func (db *DB) Consume(caller, day string, limit int) (bool, error) {
	if limit <= 0 {
		return false, nil
	}

	if _, err := db.conn.Exec(
		`INSERT INTO checkup_quota (caller, day, count) VALUES (?, ?, 0)
		 ON CONFLICT(caller, day) DO NOTHING`,
		caller, day,
	); err != nil {
		return false, err
	}

	res, err := db.conn.Exec(
		"UPDATE checkup_quota SET count = count + 1 WHERE caller = ? AND day = ? AND count < ?",
		caller, day, limit,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Used returns how many requests the caller has made on the given day.
func (db *DB) Used(caller, day string) (int, error) {
	var count int
	err := db.conn.QueryRow(
		"SELECT count FROM checkup_quota WHERE caller = ? AND day = ?",
		caller, day,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
