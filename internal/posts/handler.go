package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mysocialapp/backend/internal/navigation"
	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/internal/telemetry/tracing"
	"github.com/mysocialapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type postsApi interface {
	Posts(ctx context.Context) ([]placeholder.Post, error)
	PostsByUser(ctx context.Context, userID int) ([]placeholder.Post, error)
	PostByID(ctx context.Context, id int) (*placeholder.Post, error)
	PostComments(ctx context.Context, postID int) ([]placeholder.Comment, error)
	Comments(ctx context.Context) ([]placeholder.Comment, error)
	Users(ctx context.Context) ([]placeholder.User, error)
}

type Handler struct {
	api postsApi
}

func NewHandler(api postsApi) *Handler {
	return &Handler{
		api: api,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/posts", handler.handleList).Methods("GET").Name("posts-list")
	router.HandleFunc("/posts/{id}", handler.handleDetail).Methods("GET").Name("post-detail")
	router.HandleFunc("/myposts", handler.handleMyPosts).Methods("GET").Name("my-posts")
}

type listResponse struct {
	Nav    *navigation.Nav    `json:"nav"`
	Viewer string             `json:"viewer"`
	Search string             `json:"search,omitempty"`
	Posts  []placeholder.Post `json:"posts"`
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "postsHandler.list")
	defer span.End()

	sess, ok := session.FromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	allPosts, err := handler.api.Posts(ctx)
	if err != nil {
		log.Errorf("get posts error: %s", err)
		http.Error(w, "failed to load posts, please try again later", http.StatusBadGateway)
		return
	}

	// administrators see all posts, everybody else only their own
	visiblePosts := allPosts
	if !sess.IsAdmin {
		visiblePosts = OwnedBy(allPosts, sess.ID)
	}

	search := r.URL.Query().Get("search")
	visiblePosts = FilterByTitle(visiblePosts, search)
	if visiblePosts == nil {
		visiblePosts = []placeholder.Post{}
	}

	resp := listResponse{
		Nav:    navigation.For("/posts", true),
		Viewer: sess.Name,
		Search: search,
		Posts:  visiblePosts,
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal posts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

type detailResponse struct {
	Nav      *navigation.Nav       `json:"nav"`
	Post     *placeholder.Post     `json:"post"`
	Comments []placeholder.Comment `json:"comments"`
}

func (handler *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "postsHandler.detail")
	defer span.End()

	sess, ok := session.FromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var (
		post     *placeholder.Post
		comments []placeholder.Comment
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		post, err = handler.api.PostByID(groupCtx, postID)
		return err
	})
	group.Go(func() error {
		var err error
		comments, err = handler.api.PostComments(groupCtx, postID)
		return err
	})
	if err := group.Wait(); err != nil {
		log.Errorf("get post %d error: %s", postID, err)
		http.Error(w, "post not found or access denied", http.StatusBadGateway)
		return
	}

	// non-admins only ever see their own posts here
	if !sess.IsAdmin && post.UserID != sess.ID {
		log.Tracef("user %d denied access to post %d", sess.ID, postID)
		http.Redirect(w, r, "/posts", http.StatusFound)
		return
	}

	if comments == nil {
		comments = []placeholder.Comment{}
	}

	resp := detailResponse{
		Nav:      navigation.For(r.URL.Path, true),
		Post:     post,
		Comments: comments,
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal post %d error: %s", postID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

type myPostsResponse struct {
	Nav   *navigation.Nav `json:"nav"`
	User  viewerInfo      `json:"user"`
	Posts []postWithInfo  `json:"posts"`
}

type viewerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type postWithInfo struct {
	ID       int               `json:"id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	PostedBy string            `json:"postedBy"`
	Comments []commentWithInfo `json:"comments"`
}

type commentWithInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Body        string `json:"body"`
	CommentedBy string `json:"commentedBy"`
}

func (handler *Handler) handleMyPosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "postsHandler.myPosts")
	defer span.End()

	sess, ok := session.FromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var (
		userPosts   []placeholder.Post
		allComments []placeholder.Comment
		allUsers    []placeholder.User
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		userPosts, err = handler.api.PostsByUser(groupCtx, sess.ID)
		return err
	})
	group.Go(func() error {
		var err error
		allComments, err = handler.api.Comments(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		allUsers, err = handler.api.Users(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		log.Errorf("get my posts for user %d error: %s", sess.ID, err)
		http.Error(w, "failed to load your posts and comments", http.StatusBadGateway)
		return
	}

	retainedComments := CommentsForPosts(allComments, userPosts)
	commentsByPost := make(map[int][]commentWithInfo, len(userPosts))
	for _, c := range retainedComments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], commentWithInfo{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			Body:        c.Body,
			CommentedBy: UsernameByEmail(allUsers, c.Email),
		})
	}

	postsWithInfo := make([]postWithInfo, 0, len(userPosts))
	for _, p := range userPosts {
		comments := commentsByPost[p.ID]
		if comments == nil {
			comments = []commentWithInfo{}
		}
		postsWithInfo = append(postsWithInfo, postWithInfo{
			ID:       p.ID,
			Title:    p.Title,
			Body:     p.Body,
			PostedBy: UsernameByID(allUsers, p.UserID),
			Comments: comments,
		})
	}

	resp := myPostsResponse{
		Nav: navigation.For("/myposts", true),
		User: viewerInfo{
			Name:  sess.Name,
			Email: sess.Email,
		},
		Posts: postsWithInfo,
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal my posts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
