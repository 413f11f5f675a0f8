package hospital

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

const favoriteCols = `id, user_id, hospital_name, hospital_address,
	hospital_phone, hospital_coordinates, created_at`

func scanFavorite(row pgx.Row) (*Favorite, error) {
	f := &Favorite{}
	err := row.Scan(&f.ID, &f.UserID, &f.HospitalName, &f.HospitalAddress,
		&f.HospitalPhone, &f.HospitalCoordinates, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *repoPG) Create(ctx context.Context, userID int64, in *CreateInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO favorite_hospitals
			(user_id, hospital_name, hospital_address, hospital_phone, hospital_coordinates)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, in.HospitalName, in.HospitalAddress, in.HospitalPhone, in.HospitalCoordinates,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert favorite hospital: %w", err)
	}
	return id, nil
}

func (r *repoPG) GetByID(ctx context.Context, id, userID int64) (*Favorite, error) {
	f, err := scanFavorite(r.pool.QueryRow(ctx,
		`SELECT `+favoriteCols+` FROM favorite_hospitals WHERE id = $1 AND user_id = $2`, id, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorite hospital %d: %w", id, err)
	}
	return f, nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID int64) ([]*Favorite, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+favoriteCols+` FROM favorite_hospitals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite hospitals: %w", err)
	}
	defer rows.Close()

	favorites := []*Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite hospital: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id, userID int64, upd *Update) (int64, error) {
	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)
	for _, f := range []struct {
		col string
		val *string
	}{
		{"hospital_name", upd.HospitalName},
		{"hospital_address", upd.HospitalAddress},
		{"hospital_phone", upd.HospitalPhone},
		{"hospital_coordinates", upd.HospitalCoordinates},
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
		`UPDATE favorite_hospitals SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args)),
		args...)
	if err != nil {
		return 0, fmt.Errorf("update favorite hospital %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) Delete(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorite_hospitals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete favorite hospital %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
