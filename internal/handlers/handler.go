package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/AnshRaj112/aih-backend/internal/catalog"
	"github.com/AnshRaj112/aih-backend/internal/models"
)

const maxBodyBytes = 1 << 20

// Accounts is the account store as seen by the HTTP layer.
type Accounts interface {
	CreateUser(ctx context.Context, username, email, password string) error
	Authenticate(ctx context.Context, identifier, password string) (*models.UserSummary, error)
}

// Sessions tracks the logged-in user of a client.
type Sessions interface {
	Start(ctx context.Context, w http.ResponseWriter, r *http.Request, user *models.UserSummary) error
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	CurrentUser(ctx context.Context, r *http.Request) (string, bool)
}

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthCheck is a named Pinger. Checks run in the order given to New.
type HealthCheck struct {
	Name string
	Ping Pinger
}

// Handler serves every route. It holds no per-request state.
type Handler struct {
	accounts Accounts
	sessions Sessions
	catalog  *catalog.Catalog
	checks   []HealthCheck
}

func New(accounts Accounts, sessions Sessions, cat *catalog.Catalog, checks []HealthCheck) *Handler {
	return &Handler{
		accounts: accounts,
		sessions: sessions,
		catalog:  cat,
		checks:   checks,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// formData reads a JSON object body, falling back to urlencoded or multipart
// form values when the body is not JSON. Only string values are kept.
func formData(r *http.Request) map[string]string {
	out := map[string]string{}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return out
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		for k, v := range obj {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	if err := parseForm(r); err != nil {
		return out
	}
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out
}

// parseForm fills r.PostForm from urlencoded or multipart bodies.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxBodyBytes)
	}
	return r.ParseForm()
}

// firstNonEmpty mirrors `a or b or c`.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
