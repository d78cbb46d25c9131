package client

// Identity is the answer to GET /session.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Anonymous bool   `json:"anonymous"`
}

type Post struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Image    string    `json:"image"`
	Username string    `json:"username"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"post_id"`
	UserID   int64  `json:"user_id"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

// Peer is another registered user eligible for direct messages.
type Peer struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Message struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	Sender     string `json:"sender"`
	Receiver   string `json:"receiver"`
}
