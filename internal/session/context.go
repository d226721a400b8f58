package session

import (
	"context"

	"github.com/frahmantamala/employee-admin/internal"
)

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	ctx = internal.ContextWithSessionID(ctx, s.ID)
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
