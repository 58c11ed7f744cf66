package placeholder

import (
	"context"
	"fmt"
	"sync"
)

// TestApi is an in-memory stand-in for the remote data source,
// used by handler unit tests.
type TestApi struct {
	mutex    sync.Mutex
	users    []User
	posts    []Post
	comments []Comment

	// when set, every call fails with this error
	Err error
}

func NewTestApi(users []User, posts []Post, comments []Comment) *TestApi {
	return &TestApi{
		users:    users,
		posts:    posts,
		comments: comments,
	}
}

func (t *TestApi) Users(_ context.Context) ([]User, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	return t.users, nil
}

func (t *TestApi) UserByID(_ context.Context, id int) (*User, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	for i := range t.users {
		if t.users[i].ID == id {
			return &t.users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: user %d not found", ErrUnavailable, id)
}

func (t *TestApi) Posts(_ context.Context) ([]Post, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	return t.posts, nil
}

func (t *TestApi) PostsByUser(_ context.Context, userID int) ([]Post, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	var posts []Post
	for _, p := range t.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (t *TestApi) PostByID(_ context.Context, id int) (*Post, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	for i := range t.posts {
		if t.posts[i].ID == id {
			return &t.posts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: post %d not found", ErrUnavailable, id)
}

func (t *TestApi) PostComments(_ context.Context, postID int) ([]Comment, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	var comments []Comment
	for _, c := range t.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (t *TestApi) Comments(_ context.Context) ([]Comment, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	return t.comments, nil
}
