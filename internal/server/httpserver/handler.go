package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/logging"
	"github.com/dmitrijs2005/brewhaven/internal/server/auth"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/dmitrijs2005/brewhaven/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	detailEmailRegistered    = "Email already registered"
	detailInvalidCredentials = "Invalid email or password"
	detailCouldNotValidate   = "Could not validate credentials"
	detailInternal           = "Internal server error"

	// maxBodyBytes bounds signup and login request bodies.
	maxBodyBytes = 1 << 20
)

// AccountService is the account logic the handlers depend on.
type AccountService interface {
	Signup(ctx context.Context, name, email, password string) (*models.PublicProfile, error)
	Login(ctx context.Context, email, password string) (*models.Token, error)
	ResolveCurrentUser(ctx context.Context, token string) (*models.PublicProfile, error)
}

// DiagnosticsReporter builds the connectivity report for /test.
type DiagnosticsReporter interface {
	Report(ctx context.Context) *services.DiagnosticReport
}

type Handler struct {
	accounts    AccountService
	diagnostics DiagnosticsReporter
	metrics     *Metrics
	logger      logging.Logger
}

func NewHandler(a AccountService, d DiagnosticsReporter, m *Metrics, l logging.Logger) *Handler {
	return &Handler{accounts: a, diagnostics: d, metrics: m, logger: l}
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail any `json:"detail"`
}

// fieldError is one entry of a 422 response.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(maxBytes(auth.MaxPasswordBytes))),
	)
}

// maxBytes limits the encoded length of a string; ozzo's Length counts runes.
func maxBytes(n int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > n {
			return fmt.Errorf("must be at most %d bytes", n)
		}
		return nil
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello from Brew Haven Backend!"})
}

func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello from the backend API!"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.diagnostics.Report(r.Context()))
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body"}, Msg: "request body must be a JSON object", Type: "json_invalid",
		}})
		return
	}

	if err := req.Validate(); err != nil {
		h.writeValidationError(w, r, "body", err)
		return
	}

	profile, err := h.accounts.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			h.recordAuth(EventSignup, "duplicate")
			writeDetail(w, http.StatusBadRequest, detailEmailRegistered)
			return
		}
		if errors.Is(err, common.ErrorValidation) {
			h.recordAuth(EventSignup, "invalid")
			writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
				Loc: []string{"body", "password"}, Msg: err.Error(), Type: "value_error",
			}})
			return
		}
		h.recordAuth(EventSignup, "error")
		h.internalError(w, r, "signup failed", err)
		return
	}

	h.recordAuth(EventSignup, "success")
	writeJSON(w, http.StatusOK, profile)
}

// Login accepts the OAuth2 password form: the email travels in "username".
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body"}, Msg: "request body must be form encoded", Type: "value_error",
		}})
		return
	}

	req := loginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := req.Validate(); err != nil {
		h.writeValidationError(w, r, "body", err)
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			h.recordAuth(EventLogin, "invalid_credentials")
			writeDetail(w, http.StatusBadRequest, detailInvalidCredentials)
			return
		}
		h.recordAuth(EventLogin, "error")
		h.internalError(w, r, "login failed", err)
		return
	}

	h.recordAuth(EventLogin, "success")
	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		h.recordAuth(EventMe, "missing_token")
		writeUnauthorized(w, detailCouldNotValidate)
		return
	}

	profile, err := h.accounts.ResolveCurrentUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			outcome := "rejected"
			if auth.IsExpired(err) {
				outcome = "expired"
			}
			h.recordAuth(EventMe, outcome)
			writeUnauthorized(w, detailCouldNotValidate)
			return
		}
		h.recordAuth(EventMe, "error")
		h.internalError(w, r, "resolve current user failed", err)
		return
	}

	h.recordAuth(EventMe, "success")
	writeJSON(w, http.StatusOK, profile)
}

// --- helpers below ---

func (h *Handler) recordAuth(event, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordAuthEvent(event, outcome)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(r.Context(), msg, "error", err)
	writeDetail(w, http.StatusInternalServerError, detailInternal)
}

func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, loc string, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		h.internalError(w, r, "validation failed", err)
		return
	}

	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]fieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldError{Loc: []string{loc, f}, Msg: verrs[f].Error(), Type: "value_error"})
	}
	writeDetail(w, http.StatusUnprocessableEntity, out)
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
