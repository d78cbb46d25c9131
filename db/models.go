package db

type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

type Post struct {
	ID      int64  `db:"id" json:"id"`
	UserID  int64  `db:"user_id" json:"user_id"`
	Title   string `db:"title" json:"title"`
	Content string `db:"content" json:"content"`
	Image   string `db:"image" json:"image,omitempty"`
	// Username is the author display name, joined in from users
	Username string     `db:"username" json:"username"`
	Comments []*Comment `json:"comments"`
}

type Comment struct {
	ID       int64  `db:"id" json:"id"`
	PostID   int64  `db:"post_id" json:"post_id"`
	UserID   int64  `db:"user_id" json:"user_id"`
	Content  string `db:"content" json:"content"`
	Username string `db:"username" json:"username"`
}

type Message struct {
	ID         int64  `db:"id" json:"id"`
	SenderID   int64  `db:"sender_id" json:"sender_id"`
	ReceiverID int64  `db:"receiver_id" json:"receiver_id"`
	Content    string `db:"content" json:"content"`
	Image      string `db:"image" json:"image,omitempty"`
	Sender     string `db:"sender" json:"sender"`
	Receiver   string `db:"receiver" json:"receiver"`
}
