package medication

import (
	"context"
	"encoding/json"
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

const reminderCols = `id, user_id, medication_name, dosage, frequency,
	to_char(start_date, 'YYYY-MM-DD'),
	to_char(end_date, 'YYYY-MM-DD'),
	time_slots, notes, created_at, updated_at`

func scanReminder(row pgx.Row) (*Reminder, error) {
	rem := &Reminder{}
	var slots string
	err := row.Scan(&rem.ID, &rem.UserID, &rem.MedicationName, &rem.Dosage, &rem.Frequency,
		&rem.StartDate, &rem.EndDate, &slots, &rem.Notes, &rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(slots), &rem.TimeSlots); err != nil {
		return nil, fmt.Errorf("decode time_slots for reminder %d: %w", rem.ID, err)
	}
	return rem, nil
}

func encodeSlots(slots []string) (string, error) {
	if slots == nil {
		slots = []string{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("encode time_slots: %w", err)
	}
	return string(b), nil
}

func (r *repoPG) Create(ctx context.Context, userID int64, in *CreateInput) (int64, error) {
	slots, err := encodeSlots(in.TimeSlots)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO medication_reminders
			(user_id, medication_name, dosage, frequency, start_date, end_date, time_slots, notes)
		VALUES ($1, $2, $3, $4, $5::date, $6::date, $7, $8)
		RETURNING id`,
		userID, in.MedicationName, in.Dosage, in.Frequency,
		in.StartDate, in.EndDate, slots, in.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert reminder: %w", err)
	}
	return id, nil
}

func (r *repoPG) GetByID(ctx context.Context, id, userID int64) (*Reminder, error) {
	rem, err := scanReminder(r.pool.QueryRow(ctx,
		`SELECT `+reminderCols+` FROM medication_reminders WHERE id = $1 AND user_id = $2`, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder %d: %w", id, err)
	}
	return rem, nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID int64) ([]*Reminder, error) {
	return r.list(ctx,
		`SELECT `+reminderCols+` FROM medication_reminders WHERE user_id = $1 ORDER BY start_date DESC`,
		userID)
}

// ListActiveOn returns the reminders whose date range covers the given
// day. An open-ended reminder (NULL end_date) never expires.
func (r *repoPG) ListActiveOn(ctx context.Context, userID int64, date string) ([]*Reminder, error) {
	return r.list(ctx, `
		SELECT `+reminderCols+` FROM medication_reminders
		WHERE user_id = $1 AND start_date <= $2::date
			AND (end_date IS NULL OR end_date >= $2::date)
		ORDER BY start_date DESC`,
		userID, date)
}

func (r *repoPG) list(ctx context.Context, q string, args ...interface{}) ([]*Reminder, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	reminders := []*Reminder{}
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id, userID int64, upd *Update) (int64, error) {
	set := make([]string, 0, 7)
	args := make([]interface{}, 0, 9)
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.MedicationName != nil {
		add("medication_name", *upd.MedicationName)
	}
	if upd.Dosage != nil {
		add("dosage", *upd.Dosage)
	}
	if upd.Frequency != nil {
		add("frequency", *upd.Frequency)
	}
	if upd.StartDate != nil {
		args = append(args, *upd.StartDate)
		set = append(set, fmt.Sprintf("start_date = $%d::date", len(args)))
	}
	if upd.EndDate != nil {
		args = append(args, *upd.EndDate)
		set = append(set, fmt.Sprintf("end_date = $%d::date", len(args)))
	}
	if upd.TimeSlots != nil {
		slots, err := encodeSlots(*upd.TimeSlots)
		if err != nil {
			return 0, err
		}
		add("time_slots", slots)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if len(set) == 0 {
		return 0, nil
	}
	args = append(args, id, userID)
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(
		`UPDATE medication_reminders SET %s, updated_at = now() WHERE id = $%d AND user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args)),
		args...)
	if err != nil {
		return 0, fmt.Errorf("update reminder %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM medication_reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete reminder %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
