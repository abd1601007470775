package api

import (
	"net/http"
	"strings"
)

// authedFunc is an apiFunc that additionally receives the id of the
// authenticated user.
type authedFunc func(userID string, w http.ResponseWriter, r *http.Request) error

// requireToken verifies the presented session token before calling f. Both
// "Authorization: Bearer <token>" and a bare token are accepted; the site's
// scripts send the raw localStorage value.
func (s *Server) requireToken(f authedFunc) apiFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		parts := strings.Fields(r.Header.Get("Authorization"))

		var token string
		switch {
		case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
			token = parts[1]
		case len(parts) == 1:
			token = parts[0]
		}

		userID, err := s.auth.VerifyToken(token)
		if err != nil {
			return &StatusError{Status: http.StatusUnauthorized, Message: "Unauthorized.", Err: err}
		}

		return f(userID, w, r)
	}
}
