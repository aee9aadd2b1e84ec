package pickup

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/pkg/user"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakePickupRepo keeps pickups and users in memory. SavePickup compares the
// stored status like the SQL version does.
type fakePickupRepo struct {
	mu           sync.Mutex
	pickups      map[string]*entities.Pickup
	users        map[string]*entities.User
	saves        int
	ledgerWrites int

	// loadBarrier, when set, holds every GetPickupByID until all callers arrived
	loadBarrier *sync.WaitGroup
}

func newFakePickupRepo() *fakePickupRepo {
	return &fakePickupRepo{
		pickups: make(map[string]*entities.Pickup),
		users:   make(map[string]*entities.User),
	}
}

func (f *fakePickupRepo) addUser(role string) *entities.User {
	u := &entities.User{
		ID:    uuid.New(),
		Name:  "Rina",
		Email: "rina@ecosync.id",
		Role:  role,
		Level: 1,
	}
	u.CreatedAt = time.Now()
	f.users[u.ID.String()] = u
	return u
}

func (f *fakePickupRepo) addPickup(owner *entities.User, wasteType string, status domain.PickupStatus, estimated float64) *entities.Pickup {
	p := &entities.Pickup{
		ID:              uuid.New(),
		PickupCode:      FormatPickupCode(2024, len(f.pickups)+1),
		UserID:          owner.ID,
		WasteType:       wasteType,
		ScheduledDate:   time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "09:00 - 11:00",
		Address:         "Jl. Merdeka 10",
		EstimatedWeight: estimated,
		Status:          status.String(),
	}
	p.CreatedAt = time.Now().Add(time.Duration(len(f.pickups)) * time.Second)
	f.pickups[p.ID.String()] = p
	return p
}

func (f *fakePickupRepo) stored(id uuid.UUID) entities.Pickup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.pickups[id.String()]
}

func (f *fakePickupRepo) ledgerOf(id uuid.UUID) entities.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.users[id.String()]
}

func (f *fakePickupRepo) CreatePickup(ctx context.Context, pickup *entities.Pickup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	start, end := yearBounds(pickup.CreatedAt)
	count := 0
	for _, p := range f.pickups {
		if !p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			count++
		}
	}
	pickup.PickupCode = FormatPickupCode(start.Year(), count+1)
	cp := *pickup
	f.pickups[pickup.ID.String()] = &cp
	return nil
}

func (f *fakePickupRepo) GetPickupByID(ctx context.Context, id string) (*entities.Pickup, error) {
	if f.loadBarrier != nil {
		f.loadBarrier.Done()
		f.loadBarrier.Wait()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pickups[id]
	if !ok {
		return nil, domain.ErrPickupNotFound
	}
	cp := *p
	if u, ok := f.users[p.UserID.String()]; ok {
		uc := *u
		cp.User = &uc
	}
	return &cp, nil
}

func (f *fakePickupRepo) GetPickups(ctx context.Context, filter domain.PickupFilter) ([]*entities.Pickup, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entities.Pickup{}
	for _, p := range f.pickups {
		if filter.UserID != "" && p.UserID.String() != filter.UserID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.WasteType != "" && p.WasteType != filter.WasteType {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))

	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakePickupRepo) SavePickup(ctx context.Context, pickup *entities.Pickup, expectedStatus string, delta *domain.LedgerDelta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.pickups[pickup.ID.String()]
	if !ok || stored.Status != expectedStatus {
		return domain.ErrPickupConflict
	}

	if delta != nil {
		u, ok := f.users[pickup.UserID.String()]
		if !ok {
			return domain.ErrUserNotFound
		}
		user.ApplyDelta(u, *delta)
		f.ledgerWrites++
	}

	cp := *pickup
	cp.User = nil
	f.pickups[pickup.ID.String()] = &cp
	f.saves++
	return nil
}

func (f *fakePickupRepo) DeletePickup(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pickups[id]; !ok {
		return domain.ErrPickupNotFound
	}
	delete(f.pickups, id)
	return nil
}

func (f *fakePickupRepo) GetRecentPickups(ctx context.Context, userID string, limit int) ([]*entities.Pickup, error) {
	pickups, _, err := f.GetPickups(ctx, domain.PickupFilter{UserID: userID, Page: 1, Limit: limit})
	return pickups, err
}

func (f *fakePickupRepo) GetNextPickup(ctx context.Context, userID string, from time.Time) (*entities.Pickup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var next *entities.Pickup
	for _, p := range f.pickups {
		if p.UserID.String() != userID || p.ScheduledDate.Before(from) {
			continue
		}
		if p.Status != domain.StatusPending.String() && p.Status != domain.StatusScheduled.String() {
			continue
		}
		if next == nil || p.ScheduledDate.Before(next.ScheduledDate) {
			next = p
		}
	}
	if next == nil {
		return nil, nil
	}
	cp := *next
	return &cp, nil
}

func (f *fakePickupRepo) SumCompletedWeight(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, p := range f.pickups {
		if p.UserID.String() != userID || p.Status != domain.StatusCompleted.String() || p.CompletedAt == nil {
			continue
		}
		if !p.CompletedAt.Before(from) && p.CompletedAt.Before(to) {
			total += p.ActualWeight
		}
	}
	return total, nil
}

func (f *fakePickupRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range f.pickups {
		counts[p.Status]++
	}
	return counts, nil
}

func (f *fakePickupRepo) GetWasteTypeStats(ctx context.Context) ([]*domain.WasteTypeStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byType := map[string]*domain.WasteTypeStat{}
	for _, p := range f.pickups {
		stat, ok := byType[p.WasteType]
		if !ok {
			stat = &domain.WasteTypeStat{WasteType: p.WasteType}
			byType[p.WasteType] = stat
		}
		stat.Count++
		stat.TotalWeight += p.ActualWeight
	}
	out := make([]*domain.WasteTypeStat, 0, len(byType))
	for _, s := range byType {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WasteType < out[j].WasteType })
	return out, nil
}

func (f *fakePickupRepo) GetCompletedTotals(ctx context.Context) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var weight float64
	var points int64
	for _, p := range f.pickups {
		if p.Status == domain.StatusCompleted.String() {
			weight += p.ActualWeight
			points += int64(p.EcoPointsEarned)
		}
	}
	return weight, points, nil
}

func (f *fakePickupRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakePickupRepo) CountUsers(ctx context.Context, role string, since *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, u := range f.users {
		if role != "" && u.Role != role {
			continue
		}
		if since != nil && u.CreatedAt.Before(*since) {
			continue
		}
		count++
	}
	return count, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []domain.PickupStatusEvent
}

func (n *fakeNotifier) PickupStatusChanged(ctx context.Context, event domain.PickupStatusEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func newTestService(repo *fakePickupRepo, notifier *fakeNotifier) *pickupService {
	svc := NewPickupService(repo, repo, nil, notifier).(*pickupService)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func ownerOf(u *entities.User) domain.Actor {
	return domain.Actor{UserID: u.ID.String(), Role: u.Role}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
