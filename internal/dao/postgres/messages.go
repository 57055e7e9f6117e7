package postgres

import (
	"context"
	"database/sql"

	dbutil "github.com/flarebyte/chatterbox/internal/dao/dbutil"
)

type Message struct {
	ID         int
	Content    string
	SenderID   int
	ReceiverID int
	Created    sql.NullTime
	Read       bool
	MediaURL   sql.NullString
	MediaType  sql.NullString
	ReplyToID  sql.NullInt64
}

// MediaAttachment carries the optional media descriptor of a message as
// assigned by the upload provider.
type MediaAttachment struct {
	URL      string
	Type     string
	PublicID string
	Format   string
}

// CreateMessage inserts a message and returns its generated id. media may be
// nil; replyToID of zero means not a reply.
func CreateMessage(ctx context.Context, db Querier, senderID, receiverID int, content string, media *MediaAttachment, replyToID int) (int, error) {
	q := `INSERT INTO messages (content, sender_id, receiver_id, media_url, media_type, media_public_id, media_format, reply_to_id)
          VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), NULLIF($8,0))
          RETURNING id`
	var m MediaAttachment
	if media != nil {
		m = *media
	}
	var id int
	if err := db.QueryRow(ctx, q, content, senderID, receiverID, m.URL, m.Type, m.PublicID, m.Format, replyToID).Scan(&id); err != nil {
		return 0, dbutil.ErrWrap("message.insert", err,
			dbutil.ParamSummary("sender", senderID), dbutil.ParamSummary("receiver", receiverID),
			dbutil.ParamSummary("content", content))
	}
	return id, nil
}

// MarkMessageRead flips the read flag; returns affected rows.
func MarkMessageRead(ctx context.Context, db Querier, id int) (int64, error) {
	ct, err := db.Exec(ctx, `UPDATE messages SET read=TRUE WHERE id=$1`, id)
	if err != nil {
		return 0, dbutil.ErrWrap("message.read", err, dbutil.ParamSummary("id", id))
	}
	return ct.RowsAffected(), nil
}

// ListMessagesBetween lists the conversation between two users in either
// direction, oldest first.
func ListMessagesBetween(ctx context.Context, db Querier, userA, userB, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(ctx, `SELECT id, content, sender_id, receiver_id, created_at, read, media_url, media_type, reply_to_id
        FROM messages
        WHERE (sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1)
        ORDER BY created_at ASC, id ASC LIMIT $3`, userA, userB, limit)
	if err != nil {
		return nil, dbutil.ErrWrap("message.list", err,
			dbutil.ParamSummary("userA", userA), dbutil.ParamSummary("userB", userB))
	}
	defer rows.Close()
	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Content, &m.SenderID, &m.ReceiverID, &m.Created, &m.Read, &m.MediaURL, &m.MediaType, &m.ReplyToID); err != nil {
			return nil, dbutil.ErrWrap("message.list.scan", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dbutil.ErrWrap("message.list", err)
	}
	return out, nil
}
