package postgres

import (
	"context"
	"database/sql"

	dbutil "github.com/flarebyte/chatterbox/internal/dao/dbutil"
)

type Reaction struct {
	ID        int
	MessageID int
	UserID    int
	Emoji     string
	EmojiName sql.NullString
	Created   sql.NullTime
}

// AddReaction records a user's emoji reaction on a message. One reaction per
// emoji per user per message: a duplicate fails with a uniqueness violation.
func AddReaction(ctx context.Context, db Querier, messageID, userID int, emoji, emojiName string) (int, error) {
	q := `INSERT INTO message_reactions (message_id, user_id, emoji, emoji_name)
          VALUES ($1, $2, $3, NULLIF($4,''))
          RETURNING id`
	var id int
	if err := db.QueryRow(ctx, q, messageID, userID, emoji, emojiName).Scan(&id); err != nil {
		return 0, dbutil.ErrWrap("reaction.insert", err,
			dbutil.ParamSummary("message", messageID), dbutil.ParamSummary("user", userID),
			dbutil.ParamSummary("emoji", emoji))
	}
	return id, nil
}

// RemoveReaction deletes a user's emoji reaction from a message; returns affected rows.
func RemoveReaction(ctx context.Context, db Querier, messageID, userID int, emoji string) (int64, error) {
	ct, err := db.Exec(ctx, `DELETE FROM message_reactions WHERE message_id=$1 AND user_id=$2 AND emoji=$3`,
		messageID, userID, emoji)
	if err != nil {
		return 0, dbutil.ErrWrap("reaction.delete", err,
			dbutil.ParamSummary("message", messageID), dbutil.ParamSummary("user", userID))
	}
	return ct.RowsAffected(), nil
}

// ListReactions lists the reactions on a message, oldest first.
func ListReactions(ctx context.Context, db Querier, messageID int) ([]Reaction, error) {
	rows, err := db.Query(ctx, `SELECT id, message_id, user_id, emoji, emoji_name, created_at
        FROM message_reactions WHERE message_id=$1
        ORDER BY created_at ASC, id ASC`, messageID)
	if err != nil {
		return nil, dbutil.ErrWrap("reaction.list", err, dbutil.ParamSummary("message", messageID))
	}
	defer rows.Close()
	var out []Reaction
	for rows.Next() {
		var r Reaction
		if err := rows.Scan(&r.ID, &r.MessageID, &r.UserID, &r.Emoji, &r.EmojiName, &r.Created); err != nil {
			return nil, dbutil.ErrWrap("reaction.list.scan", err, dbutil.ParamSummary("message", messageID))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dbutil.ErrWrap("reaction.list", err, dbutil.ParamSummary("message", messageID))
	}
	return out, nil
}
