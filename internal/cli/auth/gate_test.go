package auth

import (
	"testing"

	"github.com/unilife-dev/unilife/internal/cli/session"
)

func TestEvaluate(t *testing.T) {
	student := &session.User{ID: "1", Role: session.RoleUser}
	admin := &session.User{ID: "2", Role: session.RoleAdmin}

	tests := []struct {
		name         string
		snapshot     Snapshot
		requireAdmin bool
		wantVerdict  Verdict
		wantRedirect string
	}{
		{
			name:        "loading never redirects",
			snapshot:    Snapshot{Loading: true},
			wantVerdict: VerdictLoading,
		},
		{
			name:         "loading never redirects even for admin views",
			snapshot:     Snapshot{Loading: true},
			requireAdmin: true,
			wantVerdict:  VerdictLoading,
		},
		{
			name:         "unauthenticated goes to student login",
			snapshot:     Snapshot{},
			wantVerdict:  VerdictRedirect,
			wantRedirect: RouteLogin,
		},
		{
			name:         "unauthenticated on admin view goes to admin login",
			snapshot:     Snapshot{},
			requireAdmin: true,
			wantVerdict:  VerdictRedirect,
			wantRedirect: RouteAdminLogin,
		},
		{
			name:        "student allowed on plain view",
			snapshot:    Snapshot{User: student},
			wantVerdict: VerdictAllow,
		},
		{
			name:         "student on admin view goes home",
			snapshot:     Snapshot{User: student},
			requireAdmin: true,
			wantVerdict:  VerdictRedirect,
			wantRedirect: RouteHome,
		},
		{
			name:         "admin allowed on admin view",
			snapshot:     Snapshot{User: admin},
			requireAdmin: true,
			wantVerdict:  VerdictAllow,
		},
		{
			name:        "admin allowed on plain view",
			snapshot:    Snapshot{User: admin},
			wantVerdict: VerdictAllow,
		},
		{
			name:         "unknown role treated as non-admin",
			snapshot:     Snapshot{User: &session.User{ID: "3", Role: "publisher"}},
			requireAdmin: true,
			wantVerdict:  VerdictRedirect,
			wantRedirect: RouteHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.snapshot, tt.requireAdmin)
			if got.Verdict != tt.wantVerdict {
				t.Errorf("expected verdict %s, got %s", tt.wantVerdict, got.Verdict)
			}
			if got.RedirectTo != tt.wantRedirect {
				t.Errorf("expected redirect %q, got %q", tt.wantRedirect, got.RedirectTo)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	snapshot := Snapshot{User: &session.User{ID: "1", Role: session.RoleUser}}

	first := Evaluate(snapshot, true)
	for i := 0; i < 10; i++ {
		if got := Evaluate(snapshot, true); got != first {
			t.Fatalf("evaluation %d differed: %+v vs %+v", i, got, first)
		}
	}
}
