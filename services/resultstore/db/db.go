// Package db holds the sqlite schema and queries for the result store.
package db

import (
	"context"
	"database/sql"
)

const Schema = `
CREATE TABLE IF NOT EXISTS race (
    id INTEGER PRIMARY KEY,
    marathon TEXT NOT NULL,
    year TEXT NOT NULL,
    UNIQUE (marathon, year)
);

CREATE TABLE IF NOT EXISTS runner_row (
    race_id INTEGER NOT NULL REFERENCES race (id),
    idp TEXT NOT NULL,
    run_no TEXT NOT NULL,
    gender TEXT NOT NULL,
    age_cat TEXT NOT NULL,
    race_state TEXT NOT NULL,
    last_split TEXT NOT NULL,
    splits TEXT NOT NULL,
    PRIMARY KEY (race_id, idp)
);
`

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createRace = `
INSERT INTO race (marathon, year) VALUES (?, ?)
ON CONFLICT (marathon, year) DO NOTHING
`

func (q *Queries) CreateRace(ctx context.Context, marathon, year string) error {
	_, err := q.db.ExecContext(ctx, createRace, marathon, year)
	return err
}

const getRaceId = `
SELECT id FROM race WHERE marathon = ? AND year = ?
`

func (q *Queries) GetRaceId(ctx context.Context, marathon, year string) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, getRaceId, marathon, year).Scan(&id)
	return id, err
}

const deleteRaceRows = `
DELETE FROM runner_row WHERE race_id = ?
`

func (q *Queries) DeleteRaceRows(ctx context.Context, raceId int64) error {
	_, err := q.db.ExecContext(ctx, deleteRaceRows, raceId)
	return err
}

type CreateRunnerRowParams struct {
	RaceID    int64
	Idp       string
	RunNo     string
	Gender    string
	AgeCat    string
	RaceState string
	LastSplit string
	Splits    string
}

const createRunnerRow = `
INSERT INTO runner_row (race_id, idp, run_no, gender, age_cat, race_state, last_split, splits)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateRunnerRow(ctx context.Context, arg CreateRunnerRowParams) error {
	_, err := q.db.ExecContext(ctx, createRunnerRow,
		arg.RaceID, arg.Idp, arg.RunNo, arg.Gender, arg.AgeCat,
		arg.RaceState, arg.LastSplit, arg.Splits)
	return err
}

type RunnerRow struct {
	Idp       string
	RunNo     string
	Gender    string
	AgeCat    string
	RaceState string
	LastSplit string
	Splits    string
}

const getRaceRows = `
SELECT idp, run_no, gender, age_cat, race_state, last_split, splits
FROM runner_row WHERE race_id = ? ORDER BY idp
`

func (q *Queries) GetRaceRows(ctx context.Context, raceId int64) ([]RunnerRow, error) {
	rows, err := q.db.QueryContext(ctx, getRaceRows, raceId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunnerRow
	for rows.Next() {
		var r RunnerRow
		err := rows.Scan(&r.Idp, &r.RunNo, &r.Gender, &r.AgeCat,
			&r.RaceState, &r.LastSplit, &r.Splits)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type Race struct {
	Marathon string
	Year     string
}

const listRaces = `
SELECT marathon, year FROM race ORDER BY marathon, year
`

func (q *Queries) ListRaces(ctx context.Context) ([]Race, error) {
	rows, err := q.db.QueryContext(ctx, listRaces)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Race
	for rows.Next() {
		var r Race
		if err := rows.Scan(&r.Marathon, &r.Year); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
