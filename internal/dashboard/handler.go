package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mysocialapp/backend/internal/navigation"
	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/internal/telemetry/tracing"
	"github.com/mysocialapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type statsApi interface {
	Users(ctx context.Context) ([]placeholder.User, error)
	Posts(ctx context.Context) ([]placeholder.Post, error)
	Comments(ctx context.Context) ([]placeholder.Comment, error)
}

// Handler serves the statistics chart view model.
type Handler struct {
	api statsApi
}

func NewHandler(api statsApi) *Handler {
	return &Handler{
		api: api,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/chart", handler.handleChart).Methods("GET").Name("chart")
}

// Series is one plotted series of the mixed chart. Each series carries
// a single non-zero value, positioned at its own category index.
type Series struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []int  `json:"data"`
}

type Chart struct {
	ID         string   `json:"id"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

type chartResponse struct {
	Nav   *navigation.Nav `json:"nav"`
	Chart Chart           `json:"chart"`
}

// BuildChart lays out the three collection counts as a mixed
// bar/line/area chart.
func BuildChart(usersCount, postsCount, commentsCount int) Chart {
	return Chart{
		ID:         "stats-mixed",
		Categories: []string{"Users", "Posts", "Comments"},
		Series: []Series{
			{Name: "User Count", Type: "bar", Data: []int{usersCount, 0, 0}},
			{Name: "Post Count", Type: "line", Data: []int{0, postsCount, 0}},
			{Name: "Comment Count", Type: "area", Data: []int{0, 0, commentsCount}},
		},
	}
}

func (handler *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.chart")
	defer span.End()

	var (
		users    []placeholder.User
		posts    []placeholder.Post
		comments []placeholder.Comment
	)

	// all three collections or nothing
	errGroup, gctx := errgroup.WithContext(ctx)
	errGroup.Go(func() (err error) {
		users, err = handler.api.Users(gctx)
		return err
	})
	errGroup.Go(func() (err error) {
		posts, err = handler.api.Posts(gctx)
		return err
	})
	errGroup.Go(func() (err error) {
		comments, err = handler.api.Comments(gctx)
		return err
	})
	if err := errGroup.Wait(); err != nil {
		log.Errorf("get chart data error: %s", err)
		http.Error(w, "failed to load stats, please try again later", http.StatusBadGateway)
		return
	}

	_, loggedIn := session.FromContext(ctx)
	resp := chartResponse{
		Nav:   navigation.For("/chart", loggedIn),
		Chart: BuildChart(len(users), len(posts), len(comments)),
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal chart error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
