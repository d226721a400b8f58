package session

import (
	"net/url"

	"github.com/frahmantamala/employee-admin/internal"
)

// Decision is the outcome of a guard check. When Allowed is false the caller must
// redirect to Redirect and stop handling the request.
type Decision struct {
	Allowed  bool
	Redirect string
	Notice   string
	Err      error
}

type Guard struct {
	IndexPath string
	LoginPath string
}

func NewGuard(indexPath, loginPath string) Guard {
	if indexPath == "" {
		indexPath = "/"
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	return Guard{IndexPath: indexPath, LoginPath: loginPath}
}

// CheckAdmin gates the admin console: a session with a token and the ADMIN role.
func (g Guard) CheckAdmin(s *Session) Decision {
	if d := g.CheckSession(s); !d.Allowed {
		return d
	}
	if !s.IsAdmin() {
		return g.deny(g.LoginPath, internal.ErrNotAdmin)
	}
	return Decision{Allowed: true}
}

// CheckSession only requires that a token is present.
func (g Guard) CheckSession(s *Session) Decision {
	if s == nil || !s.HasToken() {
		return g.deny(g.IndexPath, internal.ErrSessionMissing)
	}
	return Decision{Allowed: true}
}

func (g Guard) deny(target string, err *internal.AppError) Decision {
	return Decision{
		Redirect: WithNotice(target, err.Message),
		Notice:   err.Message,
		Err:      err,
	}
}

// WithNotice appends a user-facing notice to a redirect target.
func WithNotice(target, notice string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
