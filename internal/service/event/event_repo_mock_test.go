package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	CreateFunc            func(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetForUpdateFunc      func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	UpdateFunc            func(ctx context.Context, e *domain.Event) (*domain.Event, error)
	UpdateStatusFunc      func(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	ListFunc              func(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)
	ListElapsedActiveFunc func(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   *domain.Event
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			E   *domain.Event
		}
		UpdateStatus []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Status domain.EventStatus
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.EventFilter
		}
		ListElapsedActive []struct {
			Ctx   context.Context
			Now   time.Time
			Limit int
		}
	}
	lockCreate            sync.RWMutex
	lockGetByID           sync.RWMutex
	lockGetForUpdate      sync.RWMutex
	lockUpdate            sync.RWMutex
	lockUpdateStatus      sync.RWMutex
	lockDelete            sync.RWMutex
	lockList              sync.RWMutex
	lockListElapsedActive sync.RWMutex
}

func (mock *eventRepoMock) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if mock.CreateFunc == nil {
		panic("eventRepoMock.CreateFunc: method is nil but eventRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.Event
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *eventRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   *domain.Event
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *eventRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if mock.GetByIDFunc == nil {
		panic("eventRepoMock.GetByIDFunc: method is nil but eventRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *eventRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *eventRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if mock.GetForUpdateFunc == nil {
		panic("eventRepoMock.GetForUpdateFunc: method is nil but eventRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *eventRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *eventRepoMock) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if mock.UpdateFunc == nil {
		panic("eventRepoMock.UpdateFunc: method is nil but eventRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.Event
	}{Ctx: ctx, E: e}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, e)
}

func (mock *eventRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	E   *domain.Event
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *eventRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (*domain.Event, error) {
	if mock.UpdateStatusFunc == nil {
		panic("eventRepoMock.UpdateStatusFunc: method is nil but eventRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Status domain.EventStatus
	}{Ctx: ctx, ID: id, Status: status}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status)
}

func (mock *eventRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Status domain.EventStatus
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *eventRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("eventRepoMock.DeleteFunc: method is nil but eventRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *eventRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *eventRepoMock) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	if mock.ListFunc == nil {
		panic("eventRepoMock.ListFunc: method is nil but eventRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.EventFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *eventRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.EventFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *eventRepoMock) ListElapsedActive(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	if mock.ListElapsedActiveFunc == nil {
		panic("eventRepoMock.ListElapsedActiveFunc: method is nil but eventRepo.ListElapsedActive was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Now   time.Time
		Limit int
	}{Ctx: ctx, Now: now, Limit: limit}
	mock.lockListElapsedActive.Lock()
	mock.calls.ListElapsedActive = append(mock.calls.ListElapsedActive, callInfo)
	mock.lockListElapsedActive.Unlock()
	return mock.ListElapsedActiveFunc(ctx, now, limit)
}

func (mock *eventRepoMock) ListElapsedActiveCalls() []struct {
	Ctx   context.Context
	Now   time.Time
	Limit int
} {
	mock.lockListElapsedActive.RLock()
	calls := mock.calls.ListElapsedActive
	mock.lockListElapsedActive.RUnlock()
	return calls
}
