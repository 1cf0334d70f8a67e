package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

// Snapshot holds all seven entity collections as of one load.
type Snapshot struct {
	Zones    []*domain.Zone    `json:"zones"`
	Areas    []*domain.Area    `json:"areas"`
	Cells    []*domain.Cell    `json:"cells"`
	Members  []*domain.Member  `json:"members"`
	Meetings []*domain.Meeting `json:"meetings"`
	Alerts   []*domain.Alert   `json:"alerts"`
	Profiles []*domain.Profile `json:"profiles"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// Subscription is a session-change registration. Unsubscribe must be called
// on teardown; events are delivered on C and dropped if the buffer is full.
type Subscription struct {
	ID uuid.UUID
	C  chan uuid.UUID

	once sync.Once
	drop func()
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(s.drop)
}

// DirectoryService is the explicit store object that replaces ambient
// client-side collections: all seven collections live behind it, reloads
// are coalesced to at most one in flight, and mutation happens only through
// its methods.
type DirectoryService interface {
	Reload(ctx context.Context) error
	Snapshot() Snapshot
	LoadCount() int64

	MergeZone(z *domain.Zone)
	MergeArea(a *domain.Area)
	MergeCell(c *domain.Cell)
	MergeMember(m *domain.Member)
	MergeMeeting(m *domain.Meeting)
	MergeAlert(a *domain.Alert)
	MergeProfile(p *domain.Profile)
	RemoveArea(id uuid.UUID)
	RemoveCell(id uuid.UUID)
	RemoveMember(id uuid.UUID)
	RemoveMeeting(id uuid.UUID)
	RemoveAlert(id uuid.UUID)
	RemoveProfile(id uuid.UUID)

	SubscribeSessionChanges() *Subscription
	NotifySessionChange(profileID uuid.UUID)
}

type directoryService struct {
	log         *logger.Logger
	zoneRepo    repos.ZoneRepo
	areaRepo    repos.AreaRepo
	cellRepo    repos.CellRepo
	memberRepo  repos.MemberRepo
	meetingRepo repos.MeetingRepo
	alertRepo   repos.AlertRepo
	profileRepo repos.ProfileRepo

	mu        sync.RWMutex
	snapshot  Snapshot
	inFlight  bool
	loadCount int64

	subMu sync.Mutex
	subs  map[uuid.UUID]*Subscription
}

func NewDirectoryService(
	log *logger.Logger,
	zoneRepo repos.ZoneRepo,
	areaRepo repos.AreaRepo,
	cellRepo repos.CellRepo,
	memberRepo repos.MemberRepo,
	meetingRepo repos.MeetingRepo,
	alertRepo repos.AlertRepo,
	profileRepo repos.ProfileRepo,
) DirectoryService {
	return &directoryService{
		log:         log.With("service", "DirectoryService"),
		zoneRepo:    zoneRepo,
		areaRepo:    areaRepo,
		cellRepo:    cellRepo,
		memberRepo:  memberRepo,
		meetingRepo: meetingRepo,
		alertRepo:   alertRepo,
		profileRepo: profileRepo,
		subs:        make(map[uuid.UUID]*Subscription),
	}
}

// Reload fetches all seven collections in parallel and swaps the snapshot.
// At most one reload runs at a time; a call arriving mid-flight is dropped
// (not queued) and returns ErrReloadInFlight; the next session change will
// trigger a fresh attempt.
func (ds *directoryService) Reload(ctx context.Context) error {
	ds.mu.Lock()
	if ds.inFlight {
		ds.mu.Unlock()
		return ErrReloadInFlight
	}
	ds.inFlight = true
	ds.mu.Unlock()

	defer func() {
		ds.mu.Lock()
		ds.inFlight = false
		ds.mu.Unlock()
	}()

	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := ds.zoneRepo.List(gctx, nil)
		next.Zones = rows
		return err
	})
	g.Go(func() error {
		rows, err := ds.areaRepo.List(gctx, nil)
		next.Areas = rows
		return err
	})
	g.Go(func() error {
		rows, err := ds.cellRepo.List(gctx, nil)
		next.Cells = rows
		return err
	})
	g.Go(func() error {
		rows, err := ds.memberRepo.List(gctx, nil)
		next.Members = rows
		return err
	})
	g.Go(func() error {
		rows, err := ds.meetingRepo.List(gctx, nil)
		next.Meetings = rows
		return err
	})
	g.Go(func() error {
		rows, err := ds.alertRepo.List(gctx, nil)
		next.Alerts = rows
		return err
	})
	g.Go(func() error {
		rows, err := ds.profileRepo.List(gctx, nil)
		next.Profiles = rows
		return err
	})
	if err := g.Wait(); err != nil {
		ds.log.Warn("Directory reload failed", "error", err)
		return err
	}
	next.LoadedAt = time.Now()

	ds.mu.Lock()
	ds.snapshot = next
	ds.loadCount++
	ds.mu.Unlock()
	ds.log.Debug("Directory snapshot reloaded",
		"zones", len(next.Zones), "areas", len(next.Areas), "cells", len(next.Cells))
	return nil
}

func (ds *directoryService) Snapshot() Snapshot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	snap := ds.snapshot
	snap.Zones = append([]*domain.Zone(nil), ds.snapshot.Zones...)
	snap.Areas = append([]*domain.Area(nil), ds.snapshot.Areas...)
	snap.Cells = append([]*domain.Cell(nil), ds.snapshot.Cells...)
	snap.Members = append([]*domain.Member(nil), ds.snapshot.Members...)
	snap.Meetings = append([]*domain.Meeting(nil), ds.snapshot.Meetings...)
	snap.Alerts = append([]*domain.Alert(nil), ds.snapshot.Alerts...)
	snap.Profiles = append([]*domain.Profile(nil), ds.snapshot.Profiles...)
	return snap
}

// LoadCount reports how many reloads have completed. Exposed so callers
// (and tests) can observe coalescing.
func (ds *directoryService) LoadCount() int64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.loadCount
}

// Merge helpers fold a server-returned row into the snapshot instead of
// refetching. Zone deletion deliberately has no Remove counterpart: the
// cascade removes rows the store cannot predict, so it reloads instead.

func (ds *directoryService) MergeZone(z *domain.Zone) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Zones = mergeRow(ds.snapshot.Zones, z, func(row *domain.Zone) uuid.UUID { return row.ID })
}

func (ds *directoryService) MergeArea(a *domain.Area) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Areas = mergeRow(ds.snapshot.Areas, a, func(row *domain.Area) uuid.UUID { return row.ID })
}

func (ds *directoryService) MergeCell(c *domain.Cell) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Cells = mergeRow(ds.snapshot.Cells, c, func(row *domain.Cell) uuid.UUID { return row.ID })
}

func (ds *directoryService) MergeMember(m *domain.Member) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Members = mergeRow(ds.snapshot.Members, m, func(row *domain.Member) uuid.UUID { return row.ID })
}

func (ds *directoryService) MergeMeeting(m *domain.Meeting) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Meetings = mergeRow(ds.snapshot.Meetings, m, func(row *domain.Meeting) uuid.UUID { return row.ID })
}

func (ds *directoryService) MergeAlert(a *domain.Alert) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Alerts = mergeRow(ds.snapshot.Alerts, a, func(row *domain.Alert) uuid.UUID { return row.ID })
}

func (ds *directoryService) MergeProfile(p *domain.Profile) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Profiles = mergeRow(ds.snapshot.Profiles, p, func(row *domain.Profile) uuid.UUID { return row.ID })
}

func (ds *directoryService) RemoveArea(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Areas = removeRow(ds.snapshot.Areas, id, func(row *domain.Area) uuid.UUID { return row.ID })
}

func (ds *directoryService) RemoveCell(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Cells = removeRow(ds.snapshot.Cells, id, func(row *domain.Cell) uuid.UUID { return row.ID })
}

func (ds *directoryService) RemoveMember(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Members = removeRow(ds.snapshot.Members, id, func(row *domain.Member) uuid.UUID { return row.ID })
}

func (ds *directoryService) RemoveMeeting(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Meetings = removeRow(ds.snapshot.Meetings, id, func(row *domain.Meeting) uuid.UUID { return row.ID })
}

func (ds *directoryService) RemoveAlert(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Alerts = removeRow(ds.snapshot.Alerts, id, func(row *domain.Alert) uuid.UUID { return row.ID })
}

func (ds *directoryService) RemoveProfile(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.snapshot.Profiles = removeRow(ds.snapshot.Profiles, id, func(row *domain.Profile) uuid.UUID { return row.ID })
}

func (ds *directoryService) SubscribeSessionChanges() *Subscription {
	ds.subMu.Lock()
	defer ds.subMu.Unlock()

	id := uuid.New()
	sub := &Subscription{
		ID: id,
		C:  make(chan uuid.UUID, 8),
	}
	sub.drop = func() {
		ds.subMu.Lock()
		defer ds.subMu.Unlock()
		delete(ds.subs, id)
		close(sub.C)
	}
	ds.subs[id] = sub
	return sub
}

// NotifySessionChange implements SessionNotifier: subscribers are notified
// and a background reload is attempted (dropped silently if one is already
// in flight).
func (ds *directoryService) NotifySessionChange(profileID uuid.UUID) {
	ds.subMu.Lock()
	for _, sub := range ds.subs {
		select {
		case sub.C <- profileID:
		default:
		}
	}
	ds.subMu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := ds.Reload(ctx); err != nil && err != ErrReloadInFlight {
			ds.log.Warn("Session-change reload failed", "error", err)
		}
	}()
}

func mergeRow[T any](rows []*T, row *T, idOf func(*T) uuid.UUID) []*T {
	if row == nil {
		return rows
	}
	for i, existing := range rows {
		if idOf(existing) == idOf(row) {
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}

func removeRow[T any](rows []*T, id uuid.UUID, idOf func(*T) uuid.UUID) []*T {
	out := rows[:0]
	for _, existing := range rows {
		if idOf(existing) != id {
			out = append(out, existing)
		}
	}
	return out
}
