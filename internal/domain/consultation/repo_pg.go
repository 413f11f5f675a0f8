package consultation

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

const consultationCols = `c.id, c.user_id, c.doctor_id,
	to_char(c.consultation_date, 'YYYY-MM-DD'),
	to_char(c.consultation_time, 'HH24:MI'),
	c.reason, c.status, c.notes, c.created_at, c.updated_at`

func (r *repoPG) Create(ctx context.Context, userID int64, in *CreateInput) (int64, error) {
	status := in.Status
	if status == "" {
		status = StatusScheduled
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctor_consultations
			(user_id, doctor_id, consultation_date, consultation_time, reason, status, notes)
		VALUES ($1, $2, $3::date, $4::time, $5, $6, $7)
		RETURNING id`,
		userID, in.DoctorID, in.ConsultationDate, in.ConsultationTime,
		in.Reason, status, in.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert consultation: %w", err)
	}
	return id, nil
}

// GetByID joins the doctor's name for the owning patient's view.
func (r *repoPG) GetByID(ctx context.Context, id, userID int64) (*Consultation, error) {
	con := &Consultation{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+consultationCols+`, d.name
		FROM doctor_consultations c
		LEFT JOIN users d ON c.doctor_id = d.id
		WHERE c.id = $1 AND c.user_id = $2`, id, userID,
	).Scan(&con.ID, &con.UserID, &con.DoctorID,
		&con.ConsultationDate, &con.ConsultationTime,
		&con.Reason, &con.Status, &con.Notes, &con.CreatedAt, &con.UpdatedAt,
		&con.DoctorName)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get consultation %d: %w", id, err)
	}
	return con, nil
}

// GetForDoctor joins the patient's name for the assigned doctor's view.
func (r *repoPG) GetForDoctor(ctx context.Context, id, doctorID int64) (*Consultation, error) {
	con := &Consultation{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+consultationCols+`, p.name
		FROM doctor_consultations c
		JOIN users p ON c.user_id = p.id
		WHERE c.id = $1 AND c.doctor_id = $2`, id, doctorID,
	).Scan(&con.ID, &con.UserID, &con.DoctorID,
		&con.ConsultationDate, &con.ConsultationTime,
		&con.Reason, &con.Status, &con.Notes, &con.CreatedAt, &con.UpdatedAt,
		&con.PatientName)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get consultation %d for doctor: %w", id, err)
	}
	return con, nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID int64) ([]*Consultation, error) {
	return r.listWithDoctorName(ctx, `
		SELECT `+consultationCols+`, d.name
		FROM doctor_consultations c
		LEFT JOIN users d ON c.doctor_id = d.id
		WHERE c.user_id = $1
		ORDER BY c.consultation_date DESC, c.consultation_time DESC`, userID)
}

func (r *repoPG) ListUpcoming(ctx context.Context, userID int64, from string) ([]*Consultation, error) {
	return r.listWithDoctorName(ctx, `
		SELECT `+consultationCols+`, d.name
		FROM doctor_consultations c
		LEFT JOIN users d ON c.doctor_id = d.id
		WHERE c.user_id = $1 AND c.consultation_date >= $2::date AND c.status = 'scheduled'
		ORDER BY c.consultation_date ASC, c.consultation_time ASC`, userID, from)
}

func (r *repoPG) listWithDoctorName(ctx context.Context, q string, args ...interface{}) ([]*Consultation, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	out := []*Consultation{}
	for rows.Next() {
		con := &Consultation{}
		if err := rows.Scan(&con.ID, &con.UserID, &con.DoctorID,
			&con.ConsultationDate, &con.ConsultationTime,
			&con.Reason, &con.Status, &con.Notes, &con.CreatedAt, &con.UpdatedAt,
			&con.DoctorName); err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		out = append(out, con)
	}
	return out, rows.Err()
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*Consultation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+consultationCols+`, p.name
		FROM doctor_consultations c
		JOIN users p ON c.user_id = p.id
		WHERE c.doctor_id = $1
		ORDER BY c.consultation_date DESC, c.consultation_time DESC`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list doctor consultations: %w", err)
	}
	defer rows.Close()

	out := []*Consultation{}
	for rows.Next() {
		con := &Consultation{}
		if err := rows.Scan(&con.ID, &con.UserID, &con.DoctorID,
			&con.ConsultationDate, &con.ConsultationTime,
			&con.Reason, &con.Status, &con.Notes, &con.CreatedAt, &con.UpdatedAt,
			&con.PatientName); err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		out = append(out, con)
	}
	return out, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id, userID int64, upd *Update) (int64, error) {
	set := make([]string, 0, 6)
	args := make([]interface{}, 0, 8)
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.DoctorID != nil {
		add("doctor_id", *upd.DoctorID)
	}
	if upd.ConsultationDate != nil {
		args = append(args, *upd.ConsultationDate)
		set = append(set, fmt.Sprintf("consultation_date = $%d::date", len(args)))
	}
	if upd.ConsultationTime != nil {
		args = append(args, *upd.ConsultationTime)
		set = append(set, fmt.Sprintf("consultation_time = $%d::time", len(args)))
	}
	if upd.Reason != nil {
		add("reason", *upd.Reason)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if len(set) == 0 {
		return 0, nil
	}
	args = append(args, id, userID)
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(
		`UPDATE doctor_consultations SET %s, updated_at = now() WHERE id = $%d AND user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args)),
		args...)
	if err != nil {
		return 0, fmt.Errorf("update consultation %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// UpdateStatus is the doctor-side write, scoped to the assigned doctor.
func (r *repoPG) UpdateStatus(ctx context.Context, id, doctorID int64, status string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor_consultations SET status = $1, updated_at = now()
		WHERE id = $2 AND doctor_id = $3`, status, id, doctorID)
	if err != nil {
		return 0, fmt.Errorf("update consultation %d status: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM doctor_consultations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete consultation %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
