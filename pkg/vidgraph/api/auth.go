package api

import (
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// principal extracts the authenticated user id from the verified JWT. The
// subject claim carries the user id; requests reaching a handler have
// already passed the verifier, so a missing or malformed subject is a
// token-issuance bug and maps to 401.
func principal(r *http.Request) (uuid.UUID, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.Nil, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func requirePrincipal(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := principal(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}
