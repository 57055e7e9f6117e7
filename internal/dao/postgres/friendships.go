package postgres

import (
	"context"
	"database/sql"
	"fmt"

	dbutil "github.com/flarebyte/chatterbox/internal/dao/dbutil"
)

type Friendship struct {
	ID      int
	User1ID int
	User2ID int
	Status  string
	Created sql.NullTime
	Updated sql.NullTime
}

// Friendship statuses.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipRejected = "rejected"
)

func validStatus(s string) bool {
	return s == FriendshipPending || s == FriendshipAccepted || s == FriendshipRejected
}

// CreateFriendship inserts a pending friendship from user1 to user2.
// The pair is directed and unique; a second request in the same direction
// fails with a uniqueness violation.
func CreateFriendship(ctx context.Context, db Querier, user1ID, user2ID int) (*Friendship, error) {
	q := `INSERT INTO friendships (user1_id, user2_id)
          VALUES ($1, $2)
          RETURNING id, status, created_at, updated_at`
	f := Friendship{User1ID: user1ID, User2ID: user2ID}
	if err := db.QueryRow(ctx, q, user1ID, user2ID).Scan(&f.ID, &f.Status, &f.Created, &f.Updated); err != nil {
		return nil, dbutil.ErrWrap("friendship.insert", err,
			dbutil.ParamSummary("user1", user1ID), dbutil.ParamSummary("user2", user2ID))
	}
	return &f, nil
}

// SetFriendshipStatus updates the status of a friendship; the updated_at
// trigger stamps the row. Returns affected rows.
func SetFriendshipStatus(ctx context.Context, db Querier, id int, status string) (int64, error) {
	if !validStatus(status) {
		return 0, fmt.Errorf("friendship.status: invalid status %q", status)
	}
	ct, err := db.Exec(ctx, `UPDATE friendships SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return 0, dbutil.ErrWrap("friendship.status", err,
			dbutil.ParamSummary("id", id), dbutil.ParamSummary("status", status))
	}
	return ct.RowsAffected(), nil
}

// ListFriendshipsFor lists friendships where the user appears on either side.
func ListFriendshipsFor(ctx context.Context, db Querier, userID int) ([]Friendship, error) {
	rows, err := db.Query(ctx, `SELECT id, user1_id, user2_id, status, created_at, updated_at
        FROM friendships
        WHERE user1_id=$1 OR user2_id=$1
        ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, dbutil.ErrWrap("friendship.list", err, dbutil.ParamSummary("user", userID))
	}
	defer rows.Close()
	var out []Friendship
	for rows.Next() {
		var f Friendship
		if err := rows.Scan(&f.ID, &f.User1ID, &f.User2ID, &f.Status, &f.Created, &f.Updated); err != nil {
			return nil, dbutil.ErrWrap("friendship.list.scan", err, dbutil.ParamSummary("user", userID))
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dbutil.ErrWrap("friendship.list", err, dbutil.ParamSummary("user", userID))
	}
	return out, nil
}
