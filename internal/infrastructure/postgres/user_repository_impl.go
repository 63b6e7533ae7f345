package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, user_name, email, password_hash, phone, address, role, profile_image_url,
	payment_methods, unpaid_commission, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	var pm []byte
	if err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.Phone, &u.Address, &role,
		&u.ProfileImageURL, &pm, &u.UnpaidCommission, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	if len(pm) > 0 {
		if err := json.Unmarshal(pm, &u.PaymentMethods); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	pm, err := json.Marshal(u.PaymentMethods)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (user_name, email, password_hash, phone, address, role, profile_image_url, payment_methods)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, u.UserName, u.Email, u.Password, u.Phone, u.Address, string(u.Role), u.ProfileImageURL, pm)

	return wrapErr("create user", row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, wrapErr("get user by email", err)
	}
	return u, nil
}

func (r *UserRepository) GetMany(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	out := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, wrapErr("get users", err)
	}
	defer rows.Close()
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr("scan user", err)
		}
		out[u.ID] = u
	}
	return out, wrapErr("get users", rows.Err())
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	defer rows.Close()
	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr("scan user", err)
		}
		out = append(out, u)
	}
	return out, wrapErr("list users", rows.Err())
}

func (r *UserRepository) AddUnpaidCommission(ctx context.Context, userID string, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET unpaid_commission = GREATEST(unpaid_commission + $1, 0), updated_at = now()
		WHERE id = $2
		RETURNING unpaid_commission
	`, delta, userID).Scan(&balance)
	return balance, wrapErr("add unpaid commission", err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
