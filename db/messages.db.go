package db

import (
	"context"
)

// CreateMessage inserts a direct message. receiverID is trusted as supplied;
// a missing receiver fails with ErrConstraint via the foreign key.
func (d *DB) CreateMessage(ctx context.Context, senderID, receiverID int64, content, image string) (int64, error) {
	var id int64
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content, image) VALUES ($1, $2, $3, $4) RETURNING id`,
		senderID, receiverID, content, nullable(image)).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// Conversation returns the symmetric two-party message history between
// userID and peerID in insertion order, annotated with both usernames.
func (d *DB) Conversation(ctx context.Context, userID, peerID int64) ([]*Message, error) {
	rows, err := d.Db.QueryContext(ctx,
		`SELECT messages.id, messages.sender_id, messages.receiver_id,
		        messages.content, COALESCE(messages.image, ''),
		        u1.username AS sender, u2.username AS receiver
		 FROM messages
		 JOIN users u1 ON messages.sender_id = u1.id
		 JOIN users u2 ON messages.receiver_id = u2.id
		 WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $3 AND receiver_id = $4)
		 ORDER BY messages.id ASC`,
		userID, peerID, peerID, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	msgs := []*Message{}
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Image, &m.Sender, &m.Receiver); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// DeleteMessage removes a message only when requesterID sent it. Receivers
// can never delete a message addressed to them.
func (d *DB) DeleteMessage(ctx context.Context, requesterID, messageID int64) error {
	return d.deleteOwned(ctx, "messages", "sender_id", messageID, requesterID)
}
