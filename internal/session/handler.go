package session

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/core/common/validation"
	"github.com/frahmantamala/employee-admin/internal/transport"
	"github.com/frahmantamala/employee-admin/pkg/logger"
)

type ServiceAPI interface {
	Open(ctx context.Context, dto HandoffDTO) (*Session, error)
	Resolve(ctx context.Context, id string) (*Session, error)
	Close(ctx context.Context, id string) error
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Guard   Guard
	Cookie  CookieConfig
	// AdminHome and SelfHome are where a fresh session lands.
	AdminHome string
	SelfHome  string
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, guard Guard, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = "employee_admin_session"
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Guard:       guard,
		Cookie:      cookie,
		AdminHome:   "/employees",
		SelfHome:    "/me",
	}
}

// Open turns a login hand-off into a session cookie. JSON callers get JSON back,
// form posts are redirected.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	asJSON := isJSON(r)

	dto, err := h.decodeHandoff(r, asJSON)
	if err == nil {
		var sess *Session
		sess, err = h.Service.Open(r.Context(), dto)
		if err == nil {
			h.setCookie(w, sess.ID, sess.ExpiresAt)

			target := h.SelfHome
			if sess.IsAdmin() {
				target = h.AdminHome
			}
			if asJSON {
				h.WriteJSON(w, http.StatusCreated, SessionResponse{
					Role:       sess.Role,
					EmployeeID: sess.EmployeeID,
					ExpiresAt:  sess.ExpiresAt.UTC().Format(time.RFC3339),
					Redirect:   target,
				})
				return
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
	}

	logger.From(r.Context()).Warn("Open: session hand-off failed", "error", err)
	if asJSON {
		h.WriteAppError(w, err)
		return
	}

	notice := "Login failed."
	if appErr, ok := internal.IsAppError(err); ok {
		notice = appErr.Message
	}
	http.Redirect(w, r, WithNotice(h.Guard.LoginPath, notice), http.StatusSeeOther)
}

// Close drops the session and clears the cookie.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.Cookie.Name); err == nil {
		if err := h.Service.Close(r.Context(), c.Value); err != nil {
			logger.From(r.Context()).Error("Close: failed to close session", "error", err)
		}
	}
	h.clearCookie(w)

	if r.Method == http.MethodDelete || isJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, h.Guard.IndexPath, http.StatusSeeOther)
}

// RequireAdmin runs the full guard: token present and role ADMIN. A failing check
// redirects and the request goes no further.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return h.require(next, h.Guard.CheckAdmin)
}

// RequireSession only needs a token; used for pages any logged-in user may see.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return h.require(next, h.Guard.CheckSession)
}

func (h *Handler) require(next http.Handler, check func(*Session) Decision) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sess *Session
		if c, err := r.Cookie(h.Cookie.Name); err == nil {
			sess, err = h.Service.Resolve(ctx, c.Value)
			if err != nil && !errors.Is(err, internal.ErrSessionMissing) && !errors.Is(err, internal.ErrSessionExpired) {
				logger.From(ctx).Error("session lookup failed", "error", err)
			}
		}

		decision := check(sess)
		if !decision.Allowed {
			logger.From(ctx).Info("access denied", "path", r.URL.Path, "reason", decision.Notice)
			if sess == nil {
				h.clearCookie(w)
			}
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			return
		}

		ctx = NewContext(ctx, sess)
		ctx = logger.With(ctx, "role", string(sess.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) decodeHandoff(r *http.Request, asJSON bool) (HandoffDTO, error) {
	var dto HandoffDTO
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			return dto, internal.NewValidationError("invalid hand-off body", internal.ErrCodeInvalidHandoff).WithCause(err)
		}
		return dto, nil
	}

	if err := r.ParseForm(); err != nil {
		return dto, internal.NewValidationError("invalid hand-off form", internal.ErrCodeInvalidHandoff).WithCause(err)
	}
	if err := validation.DecodeForm(&dto, r.PostForm); err != nil {
		return dto, err
	}
	return dto, nil
}

func (h *Handler) setCookie(w http.ResponseWriter, id string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    id,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
