package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
)

type captureEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *captureEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msgs = append(e.msgs, msg)
}

func (e *captureEmitter) all() []realtime.SSEMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]realtime.SSEMessage(nil), e.msgs...)
}

func TestAlertMatchesProfile(t *testing.T) {
	t.Parallel()

	zoneID := uuid.New()
	otherZone := uuid.New()

	admin := &domain.Profile{ID: uuid.New(), Role: domain.RoleSuperAdmin}
	zoneLeader := &domain.Profile{ID: uuid.New(), Role: domain.RoleZoneLeader, ZoneID: &zoneID}
	cellLeader := &domain.Profile{ID: uuid.New(), Role: domain.RoleCellLeader, CellID: ptr(uuid.New())}

	cases := []struct {
		name    string
		alert   *domain.Alert
		profile *domain.Profile
		want    bool
	}{
		{"everyone reaches cell leader", &domain.Alert{Audience: domain.AudienceEveryone}, cellLeader, true},
		{"zone-leaders reaches zone leader", &domain.Alert{Audience: domain.AudienceZoneLeaders}, zoneLeader, true},
		{"zone-leaders skips cell leader", &domain.Alert{Audience: domain.AudienceZoneLeaders}, cellLeader, false},
		{"cell-leaders reaches cell leader", &domain.Alert{Audience: domain.AudienceCellLeaders}, cellLeader, true},
		{"zone alert matches own zone", &domain.Alert{Audience: domain.AudienceZone, ZoneID: &zoneID}, zoneLeader, true},
		{"zone alert skips other zone", &domain.Alert{Audience: domain.AudienceZone, ZoneID: &otherZone}, zoneLeader, false},
		{"zone alert skips unscoped profile", &domain.Alert{Audience: domain.AudienceZone, ZoneID: &zoneID}, cellLeader, false},
		{"super-admin sees everything", &domain.Alert{Audience: domain.AudienceCellLeaders}, admin, true},
		{"nil profile never matches", &domain.Alert{Audience: domain.AudienceEveryone}, nil, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := AlertMatchesProfile(tc.alert, tc.profile); got != tc.want {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestAlertCreateBroadcastsToAudienceChannel(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	emitter := &captureEmitter{}
	svc := NewAlertService(db, log, repos.NewAlertRepo(db, log), emitter, nil)
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	alert, err := svc.Create(context.Background(), admin, "Prayer week", "Daily at 6pm", domain.AudienceEveryone, nil)
	if err != nil {
		t.Fatalf("create alert: %v", err)
	}
	if alert.CreatedBy != admin.ID {
		t.Fatalf("created_by mismatch: got=%s want=%s", alert.CreatedBy, admin.ID)
	}

	msgs := emitter.all()
	if len(msgs) != 1 {
		t.Fatalf("emitted messages: got=%d want=1", len(msgs))
	}
	if msgs[0].Channel != realtime.AlertChannel(string(domain.AudienceEveryone)) {
		t.Fatalf("channel: got=%q", msgs[0].Channel)
	}
	if msgs[0].Event != realtime.SSEEventAlertCreated {
		t.Fatalf("event: got=%q", msgs[0].Event)
	}
}

func TestAlertCreateZoneScopedChannels(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	emitter := &captureEmitter{}
	svc := NewAlertService(db, log, repos.NewAlertRepo(db, log), emitter, nil)
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	zoneID := uuid.New()
	if _, err := svc.Create(context.Background(), admin, "Zone news", "", domain.AudienceZone, &zoneID); err != nil {
		t.Fatalf("create zone alert: %v", err)
	}

	msgs := emitter.all()
	if len(msgs) != 2 {
		t.Fatalf("emitted messages: got=%d want=2", len(msgs))
	}
	channels := map[string]bool{}
	for _, m := range msgs {
		channels[m.Channel] = true
	}
	if !channels[realtime.ZoneAlertChannel(zoneID.String())] {
		t.Fatalf("zone alert missing per-zone channel: %v", channels)
	}
	// The shared zone-audience channel is only subscribed by super-admins,
	// so leaders of other zones never see this alert.
	if !channels[realtime.AlertChannel(string(domain.AudienceZone))] {
		t.Fatalf("zone alert missing admin channel: %v", channels)
	}
}

func TestAlertCreateValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewAlertService(db, log, repos.NewAlertRepo(db, log), nil, nil)
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	if _, err := svc.Create(context.Background(), admin, "  ", "body", domain.AudienceEveryone, nil); err == nil {
		t.Fatalf("blank title accepted")
	}
	if _, err := svc.Create(context.Background(), admin, "T", "body", domain.Audience("friends"), nil); err == nil {
		t.Fatalf("unknown audience accepted")
	}
	if _, err := svc.Create(context.Background(), admin, "T", "body", domain.AudienceZone, nil); err == nil {
		t.Fatalf("zone audience without zone_id accepted")
	}
}

func TestAlertListVisibleToFiltersByAudience(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewAlertService(db, log, repos.NewAlertRepo(db, log), nil, nil)
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	zoneID := uuid.New()
	if _, err := svc.Create(context.Background(), admin, "For everyone", "", domain.AudienceEveryone, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, "For zone leaders", "", domain.AudienceZoneLeaders, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, "For one zone", "", domain.AudienceZone, &zoneID); err != nil {
		t.Fatalf("create: %v", err)
	}

	zoneLeader := &domain.Profile{ID: uuid.New(), Role: domain.RoleZoneLeader, ZoneID: &zoneID}
	visible, err := svc.ListVisibleTo(context.Background(), zoneLeader)
	if err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if len(visible) != 3 {
		t.Fatalf("zone leader visibility: got=%d want=3", len(visible))
	}

	cellLeader := &domain.Profile{ID: uuid.New(), Role: domain.RoleCellLeader}
	visible, err = svc.ListVisibleTo(context.Background(), cellLeader)
	if err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("cell leader visibility: got=%d want=1", len(visible))
	}
}
