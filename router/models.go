package router

var OK = "OK"

type OkResponse struct {
	Status string `json:"status"`
}

// SessionResponse describes the identity behind the current session.
// Anonymous sessions report anonymous=true and no id.
type SessionResponse struct {
	Status    string `json:"status"`
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Anonymous bool   `json:"anonymous,omitempty"`
}

type SubmitPostResponse struct {
	Status string `json:"status"`
	PostID int64  `json:"id"`
	Image  string `json:"image,omitempty"`
}

type SubmitCommentResponse struct {
	Status    string `json:"status"`
	CommentID int64  `json:"id"`
}

type SendMessageResponse struct {
	Status    string `json:"status"`
	MessageID int64  `json:"id"`
	Image     string `json:"image,omitempty"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type commentRequest struct {
	PostID  int64  `json:"post_id"`
	Content string `json:"content"`
}
