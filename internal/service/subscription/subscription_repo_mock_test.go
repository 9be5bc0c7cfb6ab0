package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

var _ subscriptionRepo = &subscriptionRepoMock{}

type subscriptionRepoMock struct {
	CreateFunc                    func(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	GetByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByIDForUpdateFunc          func(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByUserIDFunc               func(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	GetByCustomerRefForUpdateFunc func(ctx context.Context, ref string) (*domain.Subscription, error)
	UpdateStateFunc               func(ctx context.Context, s *domain.Subscription, entry *domain.BillingEntry) (*domain.Subscription, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.Subscription
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByUserID []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetByCustomerRefForUpdate []struct {
			Ctx context.Context
			Ref string
		}
		UpdateState []struct {
			Ctx   context.Context
			S     *domain.Subscription
			Entry *domain.BillingEntry
		}
	}
	lockCreate                    sync.RWMutex
	lockGetByID                   sync.RWMutex
	lockGetByIDForUpdate          sync.RWMutex
	lockGetByUserID               sync.RWMutex
	lockGetByCustomerRefForUpdate sync.RWMutex
	lockUpdateState               sync.RWMutex
}

func (mock *subscriptionRepoMock) Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	if mock.CreateFunc == nil {
		panic("subscriptionRepoMock.CreateFunc: method is nil but subscriptionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Subscription
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *subscriptionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.Subscription
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	if mock.GetByIDFunc == nil {
		panic("subscriptionRepoMock.GetByIDFunc: method is nil but subscriptionRepo.GetByID was just called")
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

func (mock *subscriptionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("subscriptionRepoMock.GetByIDForUpdateFunc: method is nil but subscriptionRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *subscriptionRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	if mock.GetByUserIDFunc == nil {
		panic("subscriptionRepoMock.GetByUserIDFunc: method is nil but subscriptionRepo.GetByUserID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetByUserID.Lock()
	mock.calls.GetByUserID = append(mock.calls.GetByUserID, callInfo)
	mock.lockGetByUserID.Unlock()
	return mock.GetByUserIDFunc(ctx, userID)
}

func (mock *subscriptionRepoMock) GetByUserIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetByUserID.RLock()
	calls := mock.calls.GetByUserID
	mock.lockGetByUserID.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) GetByCustomerRefForUpdate(ctx context.Context, ref string) (*domain.Subscription, error) {
	if mock.GetByCustomerRefForUpdateFunc == nil {
		panic("subscriptionRepoMock.GetByCustomerRefForUpdateFunc: method is nil but subscriptionRepo.GetByCustomerRefForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref string
	}{Ctx: ctx, Ref: ref}
	mock.lockGetByCustomerRefForUpdate.Lock()
	mock.calls.GetByCustomerRefForUpdate = append(mock.calls.GetByCustomerRefForUpdate, callInfo)
	mock.lockGetByCustomerRefForUpdate.Unlock()
	return mock.GetByCustomerRefForUpdateFunc(ctx, ref)
}

func (mock *subscriptionRepoMock) GetByCustomerRefForUpdateCalls() []struct {
	Ctx context.Context
	Ref string
} {
	mock.lockGetByCustomerRefForUpdate.RLock()
	calls := mock.calls.GetByCustomerRefForUpdate
	mock.lockGetByCustomerRefForUpdate.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) UpdateState(ctx context.Context, s *domain.Subscription, entry *domain.BillingEntry) (*domain.Subscription, error) {
	if mock.UpdateStateFunc == nil {
		panic("subscriptionRepoMock.UpdateStateFunc: method is nil but subscriptionRepo.UpdateState was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		S     *domain.Subscription
		Entry *domain.BillingEntry
	}{Ctx: ctx, S: s, Entry: entry}
	mock.lockUpdateState.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, callInfo)
	mock.lockUpdateState.Unlock()
	return mock.UpdateStateFunc(ctx, s, entry)
}

func (mock *subscriptionRepoMock) UpdateStateCalls() []struct {
	Ctx   context.Context
	S     *domain.Subscription
	Entry *domain.BillingEntry
} {
	mock.lockUpdateState.RLock()
	calls := mock.calls.UpdateState
	mock.lockUpdateState.RUnlock()
	return calls
}
