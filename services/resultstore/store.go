// Package resultstore persists cleaned runner rows in sqlite, one record
// per (marathon, year, idp). Pushing a marathon-year replaces any rows
// already stored for it.
package resultstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"marathondata/lib/records"
	"marathondata/services/resultstore/db"
)

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Open connects to a sqlite or libsql database and applies the schema.
func Open(driver, url string) (Store, error) {
	database, err := sql.Open(driver, url)
	if err != nil {
		return Store{}, fmt.Errorf("open result store: %w", err)
	}
	if _, err := database.Exec(db.Schema); err != nil {
		return Store{}, fmt.Errorf("apply result store schema: %w", err)
	}
	return NewStore(database), nil
}

// splitsDoc is the JSON shape of one runner's checkpoint triples. Null
// speeds marshal as JSON null since NaN has no JSON encoding.
type splitsDoc struct {
	Time  [records.NumCheckpoints]int32    `json:"time"`
	Pace  [records.NumCheckpoints]int32    `json:"pace"`
	Speed [records.NumCheckpoints]*float32 `json:"speed"`
}

func encodeSplits(row records.Row) (string, error) {
	var doc splitsDoc
	doc.Time = row.Time
	doc.Pace = row.Pace
	for i := range row.Speed {
		if row.HasSpeed(i) {
			v := row.Speed[i]
			doc.Speed[i] = &v
		}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeSplits(raw string, row *records.Row) error {
	var doc splitsDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	row.Time = doc.Time
	row.Pace = doc.Pace
	for i, v := range doc.Speed {
		if v == nil {
			row.Speed[i] = float32(math.NaN())
		} else {
			row.Speed[i] = *v
		}
	}
	return nil
}

// Push replaces the stored rows for one marathon-year.
func (s Store) Push(ctx context.Context, marathon, year string, rows []records.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	if err := txqry.CreateRace(ctx, marathon, year); err != nil {
		return err
	}
	raceId, err := txqry.GetRaceId(ctx, marathon, year)
	if err != nil {
		return err
	}
	if err := txqry.DeleteRaceRows(ctx, raceId); err != nil {
		return err
	}

	for _, row := range rows {
		splits, err := encodeSplits(row)
		if err != nil {
			return fmt.Errorf("encode splits for idp %s: %w", row.Idp, err)
		}
		err = txqry.CreateRunnerRow(ctx, db.CreateRunnerRowParams{
			RaceID:    raceId,
			Idp:       row.Idp,
			RunNo:     row.RunNo,
			Gender:    row.Gender,
			AgeCat:    row.AgeCat,
			RaceState: row.RaceState,
			LastSplit: row.LastSplit,
			Splits:    splits,
		})
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Pull returns the stored rows for one marathon-year, empty when the
// marathon-year was never pushed.
func (s Store) Pull(ctx context.Context, marathon, year string) ([]records.Row, error) {
	raceId, err := s.qry.GetRaceId(ctx, marathon, year)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored, err := s.qry.GetRaceRows(ctx, raceId)
	if err != nil {
		return nil, err
	}

	var out []records.Row
	for _, r := range stored {
		row := records.NewRow()
		row.Idp = r.Idp
		row.RunNo = r.RunNo
		row.Gender = r.Gender
		row.AgeCat = r.AgeCat
		row.RaceState = r.RaceState
		row.LastSplit = r.LastSplit
		if err := decodeSplits(r.Splits, &row); err != nil {
			slog.WarnContext(ctx, "failed to unmarshal stored splits",
				"idp", r.Idp, "err", err)
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// Races lists every stored marathon-year pair.
func (s Store) Races(ctx context.Context) ([]db.Race, error) {
	return s.qry.ListRaces(ctx)
}
