package postgres

import (
	"context"
	"database/sql"

	dbutil "github.com/flarebyte/chatterbox/internal/dao/dbutil"
)

type User struct {
	ID       int
	Username string
	Email    string
	Mobile   sql.NullString
	Created  sql.NullTime
}

// CreateUser inserts a user and returns its generated id. The password is
// stored as given; hashing is the caller's concern.
func CreateUser(ctx context.Context, db Querier, username, email, password, mobile string) (int, error) {
	q := `INSERT INTO users (username, email, password, mobile)
          VALUES ($1, $2, $3, NULLIF($4,''))
          RETURNING id`
	var id int
	if err := db.QueryRow(ctx, q, username, email, password, mobile).Scan(&id); err != nil {
		return 0, dbutil.ErrWrap("user.insert", err,
			dbutil.ParamSummary("username", username), dbutil.ParamSummary("email", email))
	}
	return id, nil
}

// GetUserByUsername returns a user by its unique username.
func GetUserByUsername(ctx context.Context, db Querier, username string) (*User, error) {
	q := `SELECT id, username, email, mobile, created_at FROM users WHERE username=$1`
	var u User
	if err := db.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.Email, &u.Mobile, &u.Created); err != nil {
		return nil, dbutil.ErrWrap("user.get", err, dbutil.ParamSummary("username", username))
	}
	return &u, nil
}

// ListUsers lists users ordered by creation time, newest first.
func ListUsers(ctx context.Context, db Querier, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(ctx, `SELECT id, username, email, mobile, created_at
        FROM users ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, dbutil.ErrWrap("user.list", err)
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Mobile, &u.Created); err != nil {
			return nil, dbutil.ErrWrap("user.list.scan", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbutil.ErrWrap("user.list", err)
	}
	return out, nil
}

// DeleteUser removes a user and returns affected rows. Messages, reactions
// and friendships referencing the user go with it via cascade.
func DeleteUser(ctx context.Context, db Querier, id int) (int64, error) {
	ct, err := db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return 0, dbutil.ErrWrap("user.delete", err, dbutil.ParamSummary("id", id))
	}
	return ct.RowsAffected(), nil
}
