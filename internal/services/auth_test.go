package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/ctxutil"
)

type captureNotifier struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (n *captureNotifier) NotifySessionChange(profileID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, profileID)
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.ids)
}

func newAuthService(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	log := newTestLogger(t)
	return NewAuthService(db, log,
		repos.NewIdentityRepo(db, log),
		repos.NewProfileRepo(db, log),
		repos.NewSessionTokenRepo(db, log),
		"test-secret", time.Hour, 24*time.Hour)
}

func TestLoginIssuesSessionAndNotifies(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db)
	notifier := &captureNotifier{}
	svc.SetSessionNotifier(notifier)
	profile := seedProfile(t, db, domain.RoleZoneLeader, ptr(uuid.New()), nil, nil)

	access, refresh, err := svc.Login(context.Background(), profile.Email, "secret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("empty tokens: access=%q refresh=%q", access, refresh)
	}
	if n := countRows(t, db, &domain.SessionToken{}); n != 1 {
		t.Fatalf("session rows: got=%d want=1", n)
	}
	if notifier.count() != 1 {
		t.Fatalf("notifier calls: got=%d want=1", notifier.count())
	}

	// The access token round-trips through context attachment.
	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.ProfileID != profile.ID || rd.Role != domain.RoleZoneLeader {
		t.Fatalf("request data mismatch: %+v", rd)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db)
	profile := seedProfile(t, db, domain.RoleCellLeader, nil, nil, ptr(uuid.New()))

	if _, _, err := svc.Login(context.Background(), profile.Email, "wrong-password"); err == nil {
		t.Fatalf("wrong password accepted")
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.org", "secret-password"); err == nil {
		t.Fatalf("unknown email accepted")
	}
}

func TestLoginRejectsInactiveProfile(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db)
	profile := seedProfile(t, db, domain.RoleCellLeader, nil, nil, ptr(uuid.New()))
	if err := db.Model(&domain.Profile{}).Where("id = ?", profile.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate profile: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), profile.Email, "secret-password"); err == nil {
		t.Fatalf("inactive profile logged in")
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db)
	profile := seedProfile(t, db, domain.RoleAreaLeader, nil, ptr(uuid.New()), nil)

	_, refresh, err := svc.Login(context.Background(), profile.Email, "secret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access2, refresh2, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access2 == "" || refresh2 == "" || refresh2 == refresh {
		t.Fatalf("refresh did not rotate: refresh2=%q", refresh2)
	}

	// The old refresh token is spent.
	if _, _, err := svc.Refresh(context.Background(), refresh); err == nil {
		t.Fatalf("spent refresh token accepted")
	}
}

func TestLogoutDeletesSessions(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db)
	profile := seedProfile(t, db, domain.RoleZoneLeader, ptr(uuid.New()), nil, nil)

	access, _, err := svc.Login(context.Background(), profile.Email, "secret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if n := countRows(t, db, &domain.SessionToken{}); n != 0 {
		t.Fatalf("session rows after logout: got=%d want=0", n)
	}

	// Logout without a session in context is refused.
	if err := svc.Logout(context.Background()); err == nil {
		t.Fatalf("logout without session accepted")
	}
}
