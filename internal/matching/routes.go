package matching

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
)

// RegisterRoutes mounts the matching endpoints on the given router.
// Match accepts optional authentication so anonymous browsing still
// works; History requires a verified couple.
func RegisterRoutes(router *mux.Router, handler *Handler, authMw *auth.Middleware) {
	router.Handle("/matching", authMw.OptionalAuthenticate(http.HandlerFunc(handler.Match))).Methods("POST")
	router.Handle("/matching/history", authMw.Authenticate(http.HandlerFunc(handler.History))).Methods("GET")
}
