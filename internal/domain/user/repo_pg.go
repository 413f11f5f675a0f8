package user

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

// profileCols is the column set exposed on profile reads. The password
// hash is only ever selected by GetByEmail and the password update path.
const profileCols = `id, name, email, role, phone, address,
	to_char(date_of_birth, 'YYYY-MM-DD'), gender, profile_picture, created_at`

const doctorCols = `id, name, email, phone, address, profile_picture, specialization,
	practice_years, doctor_bio, consultation_fee, available_days, available_hours, category`

func (r *repoPG) Create(ctx context.Context, in *RegisterInput, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (
			name, email, password, phone, address, date_of_birth, gender, role,
			specialization, practice_years, doctor_license, doctor_bio,
			consultation_fee, available_days, available_hours, category
		) VALUES ($1,$2,$3,$4,$5,$6::date,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id`,
		in.Name, in.Email, passwordHash, in.Phone, in.Address, in.DateOfBirth, in.Gender, in.Role,
		in.Specialization, in.PracticeYears, in.DoctorLicense, in.DoctorBio,
		in.ConsultationFee, in.AvailableDays, in.AvailableHours, in.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.Address,
		&u.DateOfBirth, &u.Gender, &u.ProfilePicture, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password, role, phone, address,
			to_char(date_of_birth, 'YYYY-MM-DD'), gender, profile_picture, created_at
		FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Phone, &u.Address,
		&u.DateOfBirth, &u.Gender, &u.ProfilePicture, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *repoPG) Update(ctx context.Context, id int64, upd *Update) (int64, error) {
	set := make([]string, 0, 15)
	args := make([]interface{}, 0, 16)
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.DateOfBirth != nil {
		args = append(args, *upd.DateOfBirth)
		set = append(set, fmt.Sprintf("date_of_birth = $%d::date", len(args)))
	}
	if upd.Gender != nil {
		add("gender", *upd.Gender)
	}
	if upd.ProfilePicture != nil {
		add("profile_picture", *upd.ProfilePicture)
	}
	if upd.Specialization != nil {
		add("specialization", *upd.Specialization)
	}
	if upd.PracticeYears != nil {
		add("practice_years", *upd.PracticeYears)
	}
	if upd.DoctorLicense != nil {
		add("doctor_license", *upd.DoctorLicense)
	}
	if upd.DoctorBio != nil {
		add("doctor_bio", *upd.DoctorBio)
	}
	if upd.ConsultationFee != nil {
		add("consultation_fee", *upd.ConsultationFee)
	}
	if upd.AvailableDays != nil {
		add("available_days", *upd.AvailableDays)
	}
	if upd.AvailableHours != nil {
		add("available_hours", *upd.AvailableHours)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if len(set) == 0 {
		return 0, nil
	}
	args = append(args, id)
	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s, updated_at = now() WHERE id = $%d`,
			strings.Join(set, ", "), len(args)),
		args...)
	if err != nil {
		return 0, fmt.Errorf("update user %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return 0, fmt.Errorf("update password %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func doctorWhere(f DoctorFilter) (string, []interface{}) {
	where := ` WHERE role = 'doctor'`
	args := []interface{}{}
	if f.Specialization != "" {
		args = append(args, f.Specialization)
		where += fmt.Sprintf(" AND specialization = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	return where, args
}

func (r *repoPG) ListDoctors(ctx context.Context, f DoctorFilter) ([]*User, error) {
	where, args := doctorWhere(f)
	q := `SELECT ` + doctorCols + ` FROM users` + where + ` ORDER BY name`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	doctors := []*User{}
	for rows.Next() {
		u := &User{Role: RoleDoctor}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address,
			&u.ProfilePicture, &u.Specialization, &u.PracticeYears, &u.DoctorBio,
			&u.ConsultationFee, &u.AvailableDays, &u.AvailableHours, &u.Category); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, u)
	}
	return doctors, rows.Err()
}

func (r *repoPG) CountDoctors(ctx context.Context, f DoctorFilter) (int, error) {
	where, args := doctorWhere(f)
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count doctors: %w", err)
	}
	return total, nil
}

func (r *repoPG) DoctorCategories(ctx context.Context) ([]string, error) {
	return r.distinctDoctorColumn(ctx, "category")
}

func (r *repoPG) DoctorSpecializations(ctx context.Context) ([]string, error) {
	return r.distinctDoctorColumn(ctx, "specialization")
}

func (r *repoPG) distinctDoctorColumn(ctx context.Context, col string) ([]string, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT DISTINCT %s FROM users WHERE role = 'doctor' AND %s IS NOT NULL ORDER BY %s`,
		col, col, col))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
