package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mysocialapp/backend/internal/navigation"
	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/internal/telemetry/tracing"
	"github.com/mysocialapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type usersApi interface {
	Users(ctx context.Context) ([]placeholder.User, error)
	UserByID(ctx context.Context, id int) (*placeholder.User, error)
}

// Handler serves the user listing and the user profile. Neither view
// is session-gated and there is no ownership scoping here.
type Handler struct {
	api usersApi
}

func NewHandler(api usersApi) *Handler {
	return &Handler{
		api: api,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/users", handler.handleList).Methods("GET").Name("users-list")
	router.HandleFunc("/users/{id}", handler.handleDetail).Methods("GET").Name("user-detail")
}

type listItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type listResponse struct {
	Nav    *navigation.Nav `json:"nav"`
	Search string          `json:"search,omitempty"`
	Users  []listItem      `json:"users"`
}

// Filter keeps users whose name or username contains the search term,
// case-insensitively.
func Filter(allUsers []placeholder.User, search string) []placeholder.User {
	if search == "" {
		return allUsers
	}

	search = strings.ToLower(search)
	var filtered []placeholder.User
	for _, u := range allUsers {
		if strings.Contains(strings.ToLower(u.Name), search) ||
			strings.Contains(strings.ToLower(u.Username), search) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.list")
	defer span.End()

	allUsers, err := handler.api.Users(ctx)
	if err != nil {
		log.Errorf("get users error: %s", err)
		http.Error(w, "failed to load users, please try again later", http.StatusBadGateway)
		return
	}

	search := r.URL.Query().Get("search")
	filtered := Filter(allUsers, search)

	items := make([]listItem, 0, len(filtered))
	for _, u := range filtered {
		items = append(items, listItem{
			ID:       u.ID,
			Name:     u.Name,
			Username: u.Username,
		})
	}

	_, loggedIn := session.FromContext(ctx)
	resp := listResponse{
		Nav:    navigation.For("/users", loggedIn),
		Search: search,
		Users:  items,
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal users error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// Marker is a map marker position derived from the user's stored
// latitude/longitude strings.
type Marker struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type detailResponse struct {
	Nav    *navigation.Nav   `json:"nav"`
	User   *placeholder.User `json:"user"`
	Marker Marker            `json:"marker"`
}

func (handler *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.detail")
	defer span.End()

	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	user, err := handler.api.UserByID(ctx, userID)
	if err != nil {
		log.Errorf("get user %d error: %s", userID, err)
		http.Error(w, "user not found", http.StatusBadGateway)
		return
	}

	marker, err := MarkerFor(user)
	if err != nil {
		log.Errorf("user %d marker: %s", userID, err)
		http.Error(w, "user not found", http.StatusBadGateway)
		return
	}

	_, loggedIn := session.FromContext(ctx)
	resp := detailResponse{
		Nav:    navigation.For(r.URL.Path, loggedIn),
		User:   user,
		Marker: marker,
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal user %d error: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// MarkerFor parses the user's geo strings into marker coordinates.
func MarkerFor(user *placeholder.User) (Marker, error) {
	lat, err := strconv.ParseFloat(user.Address.Geo.Lat, 64)
	if err != nil {
		return Marker{}, err
	}
	lng, err := strconv.ParseFloat(user.Address.Geo.Lng, 64)
	if err != nil {
		return Marker{}, err
	}
	return Marker{Lat: lat, Lng: lng}, nil
}
