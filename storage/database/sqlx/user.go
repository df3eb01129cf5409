package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/user"
)

const userColumns = `id, email, full_name, phone, gender, address, state, role, is_active, password_hash, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func scanUser(row sqlx.ColScanner) (user.User, error) {
	var usr user.User
	err := row.Scan(
		&usr.ID, &usr.Email, &usr.FullName, &usr.Phone, &usr.Gender,
		&usr.Address, &usr.State, &usr.Role, &usr.IsActive, &usr.PasswordHash, &usr.CreatedAt,
	)
	return usr, err
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...user.User) error {
	query := `SELECT COUNT(*) FROM "user" WHERE LOWER(email) = LOWER($1)`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]string, 0, len(excluded))
		for _, usr := range excluded {
			ids = append(ids, usr.ID)
		}
		query += ` AND id <> ALL($2)`
		args = append(args, pq.Array(ids))
	}

	var count int
	if err := repo.db.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
INSERT INTO "user" (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + userColumns
	row := repo.db.QueryRowxContext(ctx, query,
		usr.ID, usr.Email, usr.FullName, usr.Phone, usr.Gender,
		usr.Address, usr.State, usr.Role, usr.IsActive, usr.PasswordHash, usr.CreatedAt,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return created, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id)
	usr, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+userColumns+` FROM "user" WHERE LOWER(email) = LOWER($1)`, email)
	usr, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by email")
	}
	return usr, nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	var qb queryBuilder
	if filter.Search != "" {
		arg := "$" + strconv.Itoa(len(qb.args)+1)
		qb.clauses = append(qb.clauses, "(full_name ILIKE "+arg+" OR email ILIKE "+arg+")")
		qb.args = append(qb.args, "%"+filter.Search+"%")
	}
	if filter.Roles != nil {
		roles := make([]string, 0, len(filter.Roles))
		for _, r := range filter.Roles {
			roles = append(roles, string(r))
		}
		qb.whereAny("role", pq.Array(roles))
	}
	if filter.IsActive != nil {
		qb.where("is_active", "=", *filter.IsActive)
	}
	if filter.State != "" {
		qb.where("state", "=", filter.State)
	}

	query, args := qb.build(`SELECT ` + userColumns + ` FROM "user"`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	defer func() { _ = rows.Close() }()

	users := make([]user.User, 0)
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering users")
		}
		users = append(users, usr)
	}
	return users, errors.Wrap(rows.Err(), "filtering users")
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
UPDATE "user"
SET email = $2, full_name = $3, phone = $4, gender = $5, address = $6,
    state = $7, role = $8, is_active = $9, password_hash = $10
WHERE id = $1
RETURNING ` + userColumns
	row := repo.db.QueryRowxContext(ctx, query,
		usr.ID, usr.Email, usr.FullName, usr.Phone, usr.Gender,
		usr.Address, usr.State, usr.Role, usr.IsActive, usr.PasswordHash,
	)
	updated, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return updated, nil
}
