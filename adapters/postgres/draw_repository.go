package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DrawRepositoryImpl implements DrawRepository for PostgreSQL
type DrawRepositoryImpl struct {
	db *sqlx.DB
}

// NewDrawRepository creates a new PostgreSQL draw repository
func NewDrawRepository(db *sqlx.DB) ports.DrawRepository {
	return &DrawRepositoryImpl{db: db}
}

type drawRow struct {
	Contest int           `db:"contest"`
	DrawnAt sql.NullTime  `db:"drawn_at"`
	Numbers pq.Int64Array `db:"numbers"`
}

// LoadCorpus reads every stored draw, oldest contest first
func (r *DrawRepositoryImpl) LoadCorpus(ctx context.Context) (lottery.Corpus, error) {
	var rows []drawRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT contest, drawn_at, numbers
		FROM draws
		ORDER BY contest ASC
	`)
	if err != nil {
		return lottery.Corpus{}, err
	}

	draws := make([]lottery.Draw, 0, len(rows))
	for i, row := range rows {
		d, err := lottery.NewDraw(row.Contest, row.DrawnAt.Time, fromInt64s(row.Numbers))
		if err != nil {
			return lottery.Corpus{}, core.NewInvalidCorpusError(i, err)
		}
		draws = append(draws, d)
	}
	return lottery.NewCorpus(draws)
}

// UpsertDraws inserts unseen contests inside one transaction
func (r *DrawRepositoryImpl) UpsertDraws(ctx context.Context, draws []lottery.Draw) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, d := range draws {
		if d.Contest <= 0 {
			return 0, core.NewInvalidDrawError("stored draws need a contest number")
		}
		if err := d.Validate(); err != nil {
			return 0, err
		}

		var existing pq.Int64Array
		err := tx.GetContext(ctx, &existing, `SELECT numbers FROM draws WHERE contest = $1`, d.Contest)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return 0, err
		default:
			if !sameNumbers(existing, d.Numbers) {
				return 0, core.NewInvalidDrawError(fmt.Sprintf("conflicting results for contest %d", d.Contest))
			}
			continue
		}

		var drawnAt interface{}
		if !d.Date.IsZero() {
			drawnAt = d.Date
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO draws (contest, drawn_at, numbers)
			VALUES ($1, $2, $3)
		`, d.Contest, drawnAt, toInt64s(d.Numbers))
		if err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// LatestContest returns the highest stored contest number
func (r *DrawRepositoryImpl) LatestContest(ctx context.Context) (int, error) {
	var latest int
	err := r.db.GetContext(ctx, &latest, `SELECT COALESCE(MAX(contest), 0) FROM draws`)
	return latest, err
}

func toInt64s(c lottery.Combination) pq.Int64Array {
	out := make(pq.Int64Array, len(c))
	for i, n := range c {
		out[i] = int64(n)
	}
	return out
}

func fromInt64s(a pq.Int64Array) []int {
	out := make([]int, len(a))
	for i, n := range a {
		out[i] = int(n)
	}
	return out
}

func sameNumbers(stored pq.Int64Array, c lottery.Combination) bool {
	d, err := lottery.NewDraw(0, time.Time{}, fromInt64s(stored))
	return err == nil && d.Numbers == c
}
