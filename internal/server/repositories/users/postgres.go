// Package users provides the PostgreSQL-backed repository for credential
// records. Password hashes never leave this package through List.
package users

import (
	"context"

	"github.com/mkarpovs/studynotes/internal/dbx"
	"github.com/mkarpovs/studynotes/internal/server/models"
	"github.com/mkarpovs/studynotes/internal/server/repositories/sqlerr"
)

// PostgresRepository implements credential storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a user and returns it with the generated id. A duplicate
// username yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash).Scan(&user.ID)

	if err != nil {
		return nil, sqlerr.Map(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)

	if err != nil {
		return nil, sqlerr.Map(err)
	}

	return user, nil
}

// List returns id and username only.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		var item models.User
		if err := rows.Scan(&item.ID, &item.Username); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a user by id and reports the number of rows removed.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, sqlerr.Map(err)
	}
	return res.RowsAffected()
}
