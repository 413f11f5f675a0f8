package healthrecord

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recordCols = `id, user_id, to_char(record_date, 'YYYY-MM-DD'),
	symptoms, diagnosis, treatment, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	rec := &Record{}
	err := row.Scan(&rec.ID, &rec.UserID, &rec.RecordDate,
		&rec.Symptoms, &rec.Diagnosis, &rec.Treatment, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) Create(ctx context.Context, userID int64, in *CreateInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO health_records (user_id, record_date, symptoms, diagnosis, treatment, notes)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		RETURNING id`,
		userID, in.RecordDate, in.Symptoms, in.Diagnosis, in.Treatment, in.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert health record: %w", err)
	}
	return id, nil
}

func (r *repoPG) GetByID(ctx context.Context, id, userID int64) (*Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM health_records WHERE id = $1 AND user_id = $2`, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get health record %d: %w", id, err)
	}
	return rec, nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID int64) ([]*Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordCols+` FROM health_records WHERE user_id = $1 ORDER BY record_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id, userID int64, upd *Update) (int64, error) {
	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 7)
	if upd.RecordDate != nil {
		args = append(args, *upd.RecordDate)
		set = append(set, fmt.Sprintf("record_date = $%d::date", len(args)))
	}
	for _, f := range []struct {
		col string
		val *string
	}{
		{"symptoms", upd.Symptoms},
		{"diagnosis", upd.Diagnosis},
		{"treatment", upd.Treatment},
		{"notes", upd.Notes},
	} {
		if f.val != nil {
			args = append(args, *f.val)
			set = append(set, fmt.Sprintf("%s = $%d", f.col, len(args)))
		}
	}
	if len(set) == 0 {
		return 0, nil
	}
	args = append(args, id, userID)
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(
		`UPDATE health_records SET %s, updated_at = now() WHERE id = $%d AND user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args)),
		args...)
	if err != nil {
		return 0, fmt.Errorf("update health record %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM health_records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete health record %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
