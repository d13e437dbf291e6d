package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/model"
)

// Identity headers set by the fronting proxy after it has authenticated the caller.
const (
	HeaderCircleID = "X-Circle-ID"
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderUserName = "X-User-Name"
)

// RequireMember reads the caller's identity headers and populates the member
// context. Requests without a circle, user, or valid role are rejected.
func RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := auth.Member{
			CircleID: strings.TrimSpace(r.Header.Get(HeaderCircleID)),
			UserID:   strings.TrimSpace(r.Header.Get(HeaderUserID)),
			Role:     model.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))),
			Name:     strings.TrimSpace(r.Header.Get(HeaderUserName)),
		}
		if m.CircleID == "" || m.UserID == "" {
			unauthorized(w, "missing identity")
			return
		}
		if !m.Role.Valid() {
			unauthorized(w, "invalid role")
			return
		}

		ctx := auth.WithMember(r.Context(), m)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MemberKey keys rate limits by circle and user.
func MemberKey(r *http.Request) string {
	m, ok := auth.FromContext(r.Context())
	if !ok {
		return RealIP(r)
	}
	return m.CircleID + ":" + m.UserID
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
