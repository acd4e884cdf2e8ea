package auth

// Route targets used by the view gate and the session manager. They mirror
// the portal web app's routes so redirect semantics stay identical across
// clients.
const (
	RouteLogin      = "/login"
	RouteAdminLogin = "/admin/login"
	RouteHome       = "/home"
	RouteAdminHome  = "/admin"
)

// Verdict classifies a gate evaluation
type Verdict int

const (
	// VerdictLoading means a login is still settling; render a neutral
	// wait state and do not redirect
	VerdictLoading Verdict = iota
	// VerdictRedirect means the viewer must be sent to RedirectTo
	VerdictRedirect
	// VerdictAllow means the protected content renders unchanged
	VerdictAllow
)

func (v Verdict) String() string {
	switch v {
	case VerdictLoading:
		return "loading"
	case VerdictRedirect:
		return "redirect"
	case VerdictAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one gate evaluation
type Decision struct {
	Verdict    Verdict
	RedirectTo string
}

// Evaluate guards a protected view. It is a pure function of the snapshot:
// no side effects, no memory of prior evaluations, safe to re-run on every
// render.
//
//   - loading: wait, no redirect (avoids a flash-redirect while the initial
//     session read settles)
//   - unauthenticated: redirect to the login surface matching the view
//   - admin view without the admin role: redirect home
//   - otherwise: allow
func Evaluate(s Snapshot, requireAdmin bool) Decision {
	if s.Loading {
		return Decision{Verdict: VerdictLoading}
	}

	if s.User == nil {
		if requireAdmin {
			return Decision{Verdict: VerdictRedirect, RedirectTo: RouteAdminLogin}
		}
		return Decision{Verdict: VerdictRedirect, RedirectTo: RouteLogin}
	}

	if requireAdmin && !s.User.IsAdmin() {
		return Decision{Verdict: VerdictRedirect, RedirectTo: RouteHome}
	}

	return Decision{Verdict: VerdictAllow}
}
