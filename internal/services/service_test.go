package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"launch-tms/internal/authz"
	"launch-tms/internal/entities"
	"launch-tms/pkg/contextkeys"
	apperrors "launch-tms/pkg/errors"
	"launch-tms/pkg/types"
)

// Shared in-memory fakes. Each holds entities by ID and returns
// apperrors.ErrNotFound for unknown IDs, like the real repositories do.

var (
	companyA    = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	companyB    = uuid.MustParse("00000000-0000-0000-0000-0000000000bb")
	divisionSE  = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	divisionNW  = uuid.MustParse("00000000-0000-0000-0000-0000000000d2")
	deptGAOps   = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")
	terminalATL = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	terminalSAV = uuid.MustParse("00000000-0000-0000-0000-0000000000f2")
)

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func ctxWithPrincipal(p authz.Principal) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.PrincipalKey, p)
	return context.WithValue(ctx, contextkeys.UserIDKey, p.ID)
}

type fakeDivisionRepo struct {
	divisions map[uuid.UUID]*entities.Division
}

func (f *fakeDivisionRepo) GetDivisions(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Division, uint64, error) {
	return nil, 0, nil
}

func (f *fakeDivisionRepo) FindDivision(ctx context.Context, id uuid.UUID) (*entities.Division, error) {
	if d, ok := f.divisions[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDivisionRepo) CreateDivision(ctx context.Context, d *entities.Division) (*entities.Division, error) {
	return d, nil
}

func (f *fakeDivisionRepo) UpdateDivision(ctx context.Context, d *entities.Division) (*entities.Division, error) {
	return d, nil
}

func (f *fakeDivisionRepo) DeleteDivision(ctx context.Context, id uuid.UUID) error { return nil }

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*entities.Department
}

func (f *fakeDepartmentRepo) GetDepartments(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Department, uint64, error) {
	return nil, 0, nil
}

func (f *fakeDepartmentRepo) FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	if d, ok := f.departments[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDepartmentRepo) CreateDepartment(ctx context.Context, d *entities.Department) (*entities.Department, error) {
	return d, nil
}

func (f *fakeDepartmentRepo) UpdateDepartment(ctx context.Context, d *entities.Department) (*entities.Department, error) {
	return d, nil
}

func (f *fakeDepartmentRepo) DeleteDepartment(ctx context.Context, id uuid.UUID) error { return nil }

type fakeTerminalRepo struct {
	terminals map[uuid.UUID]*entities.Terminal
}

func (f *fakeTerminalRepo) GetTerminals(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Terminal, uint64, error) {
	return nil, 0, nil
}

func (f *fakeTerminalRepo) FindTerminal(ctx context.Context, id uuid.UUID) (*entities.Terminal, error) {
	if t, ok := f.terminals[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTerminalRepo) CreateTerminal(ctx context.Context, t *entities.Terminal) (*entities.Terminal, error) {
	return t, nil
}

func (f *fakeTerminalRepo) UpdateTerminal(ctx context.Context, t *entities.Terminal) (*entities.Terminal, error) {
	return t, nil
}

func (f *fakeTerminalRepo) DeleteTerminal(ctx context.Context, id uuid.UUID) error { return nil }

// newOrgPlacementResolver builds a placement resolver over a fixed tree:
// company A holds division SE, which holds department GA-OPS, which holds
// terminals ATL and SAV. Division NW sits under company B.
func newOrgPlacementResolver() *PlacementResolver {
	divisions := &fakeDivisionRepo{divisions: map[uuid.UUID]*entities.Division{
		divisionSE: {ID: divisionSE, CompanyID: companyA},
		divisionNW: {ID: divisionNW, CompanyID: companyB},
	}}
	departments := &fakeDepartmentRepo{departments: map[uuid.UUID]*entities.Department{
		deptGAOps: {ID: deptGAOps, DivisionID: divisionSE, CompanyID: companyA},
	}}
	terminals := &fakeTerminalRepo{terminals: map[uuid.UUID]*entities.Terminal{
		terminalATL: {ID: terminalATL, DepartmentID: deptGAOps, DivisionID: divisionSE, CompanyID: companyA},
		terminalSAV: {ID: terminalSAV, DepartmentID: deptGAOps, DivisionID: divisionSE, CompanyID: companyA},
	}}
	return NewPlacementResolver(divisions, departments, terminals)
}

type fakeLoadRepo struct {
	loads  map[uuid.UUID]*entities.Load
	events []entities.LoadEvent

	failEventCreate bool
}

func (f *fakeLoadRepo) GetLoads(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.Load, uint64, error) {
	return nil, 0, nil
}

func (f *fakeLoadRepo) FindLoad(ctx context.Context, id uuid.UUID) (*entities.Load, error) {
	if l, ok := f.loads[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLoadRepo) CreateLoad(ctx context.Context, l *entities.Load) (*entities.Load, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.loads[l.ID] = l
	return l, nil
}

func (f *fakeLoadRepo) UpdateLoad(ctx context.Context, l *entities.Load) (*entities.Load, error) {
	if _, ok := f.loads[l.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.loads[l.ID] = l
	return l, nil
}

func (f *fakeLoadRepo) DeleteLoad(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.loads[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.loads, id)
	return nil
}

func (f *fakeLoadRepo) GetLoadEvents(ctx context.Context, loadID uuid.UUID) ([]entities.LoadEvent, error) {
	var out []entities.LoadEvent
	for _, e := range f.events {
		if e.LoadID == loadID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLoadRepo) CreateLoadEvent(ctx context.Context, e *entities.LoadEvent) (*entities.LoadEvent, error) {
	if f.failEventCreate {
		return nil, fmt.Errorf("event store unavailable")
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.events = append(f.events, *e)
	return e, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) GetUsers(ctx context.Context, scope authz.Scope, filter types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *entities.User) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, u *entities.User) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		u.Password = passwordHash
		return nil
	}
	return apperrors.ErrNotFound
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCacheRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("key not found")
}

func (f *fakeCacheRepo) Del(ctx context.Context, key ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range key {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	fmt.Sscan(f.values[key], &n)
	n++
	f.values[key] = fmt.Sprint(n)
	return n, nil
}

func (f *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}
