// Package client is the Go client for the waveboard backend: a typed API
// wrapper plus the feed and conversation polling views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"
)

// Client talks to one backend instance. The cookie jar carries the session
// token, so one Client is one browser-equivalent identity.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar, Timeout: 15 * time.Second},
	}, nil
}

// APIError is a non-2xx response, decoded from the server's error envelope.
type APIError struct {
	Status int
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: server returned %d (%s)", e.Status, e.Code)
}

// IsUnauthenticated reports whether err is a 401 from the server.
func IsUnauthenticated(err error) bool {
	ae, ok := err.(*APIError)
	return ok && ae.Status == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the server.
func IsForbidden(err error) bool {
	ae, ok := err.(*APIError)
	return ok && ae.Status == http.StatusForbidden
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ae := &APIError{Status: resp.StatusCode}
		var envelope struct {
			ErrorCode string `json:"error_code"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			ae.Code = envelope.ErrorCode
		}
		return ae
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", out)
}

// Upload is an optional image attachment for posts and messages.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// postMultipart sends fields plus an optional image part.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, image *Upload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", image.Filename)
		if err != nil {
			return err
		}
		if _, err = io.Copy(part, image.Reader); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), nil)
}

// Session resolves the current identity.
func (c *Client) Session(ctx context.Context) (*Identity, error) {
	id := &Identity{}
	if err := c.getJSON(ctx, "/session", id); err != nil {
		return nil, err
	}
	return id, nil
}

// Register creates an account and establishes the session in one call.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.getJSON(ctx, "/logout", nil)
}

// Feed fetches the public feed, posts with nested comments.
func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/feed", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, title, content string, image *Upload) error {
	return c.postMultipart(ctx, "/post", map[string]string{
		"title":   title,
		"content": content,
	}, image)
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/post/"+strconv.FormatInt(id, 10), nil, "", nil)
}

func (c *Client) CreateComment(ctx context.Context, postID int64, content string) error {
	return c.postJSON(ctx, "/comment", map[string]interface{}{
		"post_id": postID,
		"content": content,
	}, nil)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/comment/"+strconv.FormatInt(id, 10), nil, "", nil)
}

// Peers lists every other registered user.
func (c *Client) Peers(ctx context.Context) ([]Peer, error) {
	var peers []Peer
	if err := c.getJSON(ctx, "/users", &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

// Conversation fetches the two-party message history with a peer.
func (c *Client) Conversation(ctx context.Context, peerID int64) ([]Message, error) {
	var msgs []Message
	if err := c.getJSON(ctx, "/messages/"+strconv.FormatInt(peerID, 10), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) SendMessage(ctx context.Context, receiverID int64, content string, image *Upload) error {
	return c.postMultipart(ctx, "/message", map[string]string{
		"receiver_id": strconv.FormatInt(receiverID, 10),
		"content":     content,
	}, image)
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/message/"+strconv.FormatInt(id, 10), nil, "", nil)
}
