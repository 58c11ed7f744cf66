package register

import (
	"encoding/json"
	"net/http"

	"github.com/mysocialapp/backend/internal/telemetry/tracing"
	"github.com/mysocialapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/register", handler.handlePage).Methods("GET").Name("register-page")
	router.HandleFunc("/register", handler.handleRegister).Methods("POST", "OPTIONS").Name("register")
}

func (handler *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	type registerPageResponse struct {
		Title    string   `json:"title"`
		Fields   []string `json:"fields"`
		LoginURL string   `json:"loginUrl"`
	}

	respBytes, err := json.Marshal(registerPageResponse{
		Title:    "Register",
		Fields:   []string{"firstName", "lastName", "email", "phone", "address"},
		LoginURL: "/",
	})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

type registerResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "registerHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var form Form
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			log.Errorf("register, unmarshal json params: %s", err)
			http.Error(w, "register failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("register failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		form = Form{
			FirstName: r.Form.Get("firstName"),
			LastName:  r.Form.Get("lastName"),
			Email:     r.Form.Get("email"),
			Phone:     r.Form.Get("phone"),
			Address:   r.Form.Get("address"),
		}
	}

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		respBytes, err := json.Marshal(registerResponse{
			Success: false,
			Errors:  fieldErrors,
		})
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusBadRequest)
		return
	}

	respBytes, err := json.Marshal(registerResponse{
		Success: true,
		Message: "Registration successful!",
	})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
