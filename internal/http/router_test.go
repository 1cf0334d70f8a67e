package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	httpH "github.com/gracefieldhq/celldesk-backend/internal/http/handlers"
	httpMW "github.com/gracefieldhq/celldesk-backend/internal/http/middleware"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type routerFixture struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Identity{},
		&domain.Profile{},
		&domain.SessionToken{},
		&domain.Zone{},
		&domain.Area{},
		&domain.Cell{},
		&domain.Member{},
		&domain.Meeting{},
		&domain.Alert{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	identityRepo := repos.NewIdentityRepo(db, log)
	profileRepo := repos.NewProfileRepo(db, log)
	tokenRepo := repos.NewSessionTokenRepo(db, log)
	zoneRepo := repos.NewZoneRepo(db, log)
	areaRepo := repos.NewAreaRepo(db, log)
	cellRepo := repos.NewCellRepo(db, log)
	memberRepo := repos.NewMemberRepo(db, log)
	meetingRepo := repos.NewMeetingRepo(db, log)
	alertRepo := repos.NewAlertRepo(db, log)

	authService := services.NewAuthService(db, log,
		identityRepo, profileRepo, tokenRepo,
		"router-test-secret", time.Hour, 24*time.Hour)
	profileService := services.NewProfileService(db, log, profileRepo)
	zoneService := services.NewZoneService(db, log, zoneRepo, nil)
	meetingService := services.NewMeetingService(db, log, cellRepo, meetingRepo, nil)
	alertService := services.NewAlertService(db, log, alertRepo, nil, nil)
	cascadeService := services.NewCascadeService(db, log,
		zoneRepo, areaRepo, cellRepo, memberRepo, meetingRepo, alertRepo,
		profileRepo, identityRepo, tokenRepo,
		nil, nil)
	provisionService := services.NewProvisionService(db, log, identityRepo, profileRepo)

	engine := NewRouter(RouterConfig{
		Log:            log,
		AuthHandler:    httpH.NewAuthHandler(authService),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		ZoneHandler:    httpH.NewZoneHandler(zoneService),
		MeetingHandler: httpH.NewMeetingHandler(meetingService, profileService),
		AlertHandler:   httpH.NewAlertHandler(alertService, profileService),
		AdminHandler:   httpH.NewAdminHandler(cascadeService, provisionService),
		HealthHandler:  httpH.NewHealthHandler(),
	})
	return &routerFixture{db: db, engine: engine}
}

// seedAccount creates a matched identity and profile so the account can log in.
func (f *routerFixture) seedAccount(t *testing.T, role domain.Role) *domain.Profile {
	t.Helper()
	id := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	identity := &domain.Identity{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.org", id),
		PasswordHash: string(hash),
	}
	if err := f.db.Create(identity).Error; err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	profile := &domain.Profile{
		ID:     id,
		Email:  identity.Email,
		Name:   "Router Test " + string(role),
		Role:   role,
		Active: true,
	}
	if err := f.db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func (f *routerFixture) login(t *testing.T, email string) string {
	t.Helper()
	rec := f.do(t, "POST", "/api/login", "", map[string]string{
		"email":    email,
		"password": "secret-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, "GET", "/healthcheck", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, "POST", "/api/admin/delete-zone", "", map[string]string{"zoneId": uuid.NewString()})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, http.StatusUnauthorized, rec.Body.String())
	}
}

func TestAdminRoutesRejectNonSuperAdmin(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	leader := f.seedAccount(t, domain.RoleZoneLeader)
	token := f.login(t, leader.Email)

	rec := f.do(t, "POST", "/api/admin/delete-zone", token, map[string]string{"zoneId": uuid.NewString()})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
}

func TestAdminDeleteZoneStatusTaxonomy(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	admin := f.seedAccount(t, domain.RoleSuperAdmin)
	token := f.login(t, admin.Email)

	// Malformed zone id.
	rec := f.do(t, "POST", "/api/admin/delete-zone", token, map[string]string{"zoneId": "not-a-uuid"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad zoneId status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	// Unknown zone.
	rec = f.do(t, "POST", "/api/admin/delete-zone", token, map[string]string{"zoneId": uuid.NewString()})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown zone status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	// Existing zone is removed.
	zone := &domain.Zone{ID: uuid.New(), Name: "North"}
	if err := f.db.Create(zone).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}
	rec = f.do(t, "POST", "/api/admin/delete-zone", token, map[string]string{"zoneId": zone.ID.String()})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || !resp.Success {
		t.Fatalf("delete response: body=%s err=%v", rec.Body.String(), err)
	}
	var count int64
	if err := f.db.Model(&domain.Zone{}).Count(&count).Error; err != nil {
		t.Fatalf("count zones: %v", err)
	}
	if count != 0 {
		t.Fatalf("zone rows after delete: got=%d want=0", count)
	}
}

func TestAdminProvisionUser(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	admin := f.seedAccount(t, domain.RoleSuperAdmin)
	token := f.login(t, admin.Email)

	zone := &domain.Zone{ID: uuid.New(), Name: "North"}
	if err := f.db.Create(zone).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}

	rec := f.do(t, "POST", "/api/admin/provision-user", token, map[string]any{
		"email":    "new.leader@example.org",
		"password": "initial-password",
		"name":     "New Leader",
		"role":     string(domain.RoleZoneLeader),
		"zoneId":   zone.ID.String(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("provision status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode provision response: %v", err)
	}
	if _, err := uuid.Parse(resp.UserID); err != nil {
		t.Fatalf("userId not a uuid: %q", resp.UserID)
	}
	if resp.Password != "initial-password" {
		t.Fatalf("password: got=%q want=%q", resp.Password, "initial-password")
	}

	// Unknown role is rejected before the service runs.
	rec = f.do(t, "POST", "/api/admin/provision-user", token, map[string]any{
		"email":    "another@example.org",
		"password": "pw-long-enough",
		"name":     "Another",
		"role":     "janitor",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown role status: got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHierarchyWritesRequireSuperAdmin(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	leader := f.seedAccount(t, domain.RoleCellLeader)
	token := f.login(t, leader.Email)

	// Reads stay open to every authenticated role.
	rec := f.do(t, "GET", "/api/zones", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("zone list status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	writes := []struct {
		method string
		path   string
		body   any
	}{
		{"POST", "/api/zones", map[string]string{"name": "Rogue Zone"}},
		{"PATCH", "/api/zones/" + uuid.NewString(), map[string]string{"name": "Renamed"}},
		{"POST", "/api/alerts", map[string]string{"title": "T", "audience": "everyone"}},
		{"DELETE", "/api/alerts/" + uuid.NewString(), nil},
		{"DELETE", "/api/meetings/" + uuid.NewString(), nil},
	}
	for _, w := range writes {
		rec := f.do(t, w.method, w.path, token, w.body)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s as cell leader: got=%d body=%s", w.method, w.path, rec.Code, rec.Body.String())
		}
	}
	var count int64
	if err := f.db.Model(&domain.Zone{}).Count(&count).Error; err != nil {
		t.Fatalf("count zones: %v", err)
	}
	if count != 0 {
		t.Fatalf("zone created despite forbidden caller")
	}

	// The same write succeeds for a super-admin.
	admin := f.seedAccount(t, domain.RoleSuperAdmin)
	adminToken := f.login(t, admin.Email)
	rec = f.do(t, "POST", "/api/zones", adminToken, map[string]string{"name": "North"})
	if rec.Code != http.StatusOK {
		t.Fatalf("zone create as admin: got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminAcceptsSnakeCaseBodies(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	admin := f.seedAccount(t, domain.RoleSuperAdmin)
	token := f.login(t, admin.Email)

	zone := &domain.Zone{ID: uuid.New(), Name: "North"}
	if err := f.db.Create(zone).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}

	rec := f.do(t, "POST", "/api/admin/provision-user", token, map[string]any{
		"email":    "snake.leader@example.org",
		"password": "initial-password",
		"name":     "Snake Leader",
		"role":     string(domain.RoleZoneLeader),
		"zone_id":  zone.ID.String(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("provision status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var provisioned domain.Profile
	if err := f.db.Where("email = ?", "snake.leader@example.org").First(&provisioned).Error; err != nil {
		t.Fatalf("load provisioned profile: %v", err)
	}
	if provisioned.ZoneID == nil || *provisioned.ZoneID != zone.ID {
		t.Fatalf("zone scope not applied from snake_case field: %+v", provisioned)
	}

	rec = f.do(t, "POST", "/api/admin/delete-zone", token, map[string]string{"zone_id": zone.ID.String()})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete-zone status: got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminProvisionDownstreamFailure(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	admin := f.seedAccount(t, domain.RoleSuperAdmin)
	token := f.login(t, admin.Email)

	// An unclassified storage failure passes through as 500 with the
	// message verbatim, not 400.
	if err := f.db.Migrator().DropTable(&domain.Profile{}); err != nil {
		t.Fatalf("drop profiles table: %v", err)
	}
	rec := f.do(t, "POST", "/api/admin/provision-user", token, map[string]any{
		"email":    "broken@example.org",
		"password": "initial-password",
		"name":     "Broken",
		"role":     string(domain.RoleZoneLeader),
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("downstream failure status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error.Message == "" {
		t.Fatalf("error envelope: body=%s err=%v", rec.Body.String(), err)
	}
}

func TestWrongMethodOnAdminRoute(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, "GET", "/api/admin/delete-zone", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusMethodNotAllowed)
	}
}
