package auth

import (
	"context"

	"github.com/dukerupert/carecircle/internal/model"
)

type contextKey struct{}

// Member identifies the caller within a care circle.
type Member struct {
	CircleID string
	UserID   string
	Role     model.Role
	Name     string
}

func WithMember(ctx context.Context, m Member) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

func FromContext(ctx context.Context) (Member, bool) {
	m, ok := ctx.Value(contextKey{}).(Member)
	return m, ok
}

func CircleID(ctx context.Context) string {
	m, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return m.CircleID
}

func UserID(ctx context.Context) string {
	m, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return m.UserID
}

func IsSenior(ctx context.Context) bool {
	m, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return m.Role == model.RoleSenior
}
