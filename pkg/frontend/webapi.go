package frontend

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dirauth/dirauth/pkg/config"
	"github.com/dirauth/dirauth/pkg/directory"
	"github.com/dirauth/dirauth/pkg/handler"
	"github.com/dirauth/dirauth/pkg/stats"
	"github.com/dirauth/dirauth/pkg/users"
)

// API exposes the authentication endpoints over REST.
type API struct {
	logger zerolog.Logger
	cfg    *config.API
	auth   handler.Authenticator
	local  *users.ConfigStore
}

func NewAPI(opts ...Option) *API {
	options := newOptions(opts...)

	a := new(API)
	a.logger = options.Logger
	a.cfg = options.Config
	a.auth = options.Auth
	a.local = options.Local
	return a
}

func (a *API) RegisterEndpoints(router *http.ServeMux) {
	router.HandleFunc("/auth/presenter", a.secured(a.presenterAuth))
	router.HandleFunc("/auth/client", a.secured(a.clientAuth))
	router.HandleFunc("/auth/ui", a.secured(a.clientUI))
	router.HandleFunc("/auth/menu", a.secured(a.menu))
}

// secured enforces the shared secret token when one is configured.
func (a *API) secured(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.cfg != nil && a.cfg.SecretToken != "" {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(a.cfg.SecretToken)) != 1 {
				writeError(w, http.StatusForbidden, "invalid token")
				return
			}
		}
		next(w, r)
	}
}

func (a *API) presenterAuth(w http.ResponseWriter, r *http.Request) {
	creds, ok := a.readCredentials(w, r)
	if !ok {
		return
	}

	stats.Frontend.Add("presenter_reqs", 1)

	user, err := a.auth.PresenterAuth(r.Context(), creds)
	if err != nil {
		a.logger.Error().Err(err).Str("username", creds.Username).Msg("presenter authentication error")
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}
	if user == nil && a.local != nil {
		// Directory rejected the credentials: a locally configured
		// account may still match.
		user, err = a.local.Authenticate(r.Context(), creds.Username, creds.Password)
		if err != nil {
			a.logger.Error().Err(err).Str("username", creds.Username).Msg("local authentication error")
			writeError(w, http.StatusInternalServerError, "local store failure")
			return
		}
	}
	if user == nil {
		stats.Frontend.Add("presenter_denied", 1)
		writeError(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (a *API) clientAuth(w http.ResponseWriter, r *http.Request) {
	creds, ok := a.readCredentials(w, r)
	if !ok {
		return
	}

	stats.Frontend.Add("client_reqs", 1)

	record, err := a.auth.ClientAuth(r.Context(), creds)
	if err != nil {
		if directory.IsInvalidCredentials(err) {
			stats.Frontend.Add("client_denied", 1)
			writeError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		a.logger.Error().Err(err).Str("username", creds.Username).Msg("client authentication error")
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}
	if record == nil {
		stats.Frontend.Add("client_denied", 1)
		writeError(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (a *API) clientUI(w http.ResponseWriter, r *http.Request) {
	flags := handler.FormFlags{}
	a.auth.ClientUI(&flags)
	writeJSON(w, http.StatusOK, flags)
}

func (a *API) menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.Menu())
}

// readCredentials accepts either a JSON document or form values.
func (a *API) readCredentials(w http.ResponseWriter, r *http.Request) (directory.Credentials, bool) {
	var creds directory.Credentials

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return creds, false
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return creds, false
		}
		return creds, true
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return creds, false
	}
	creds.Username = r.PostFormValue("username")
	creds.Password = r.PostFormValue("password")
	return creds, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
