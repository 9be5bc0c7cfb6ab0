package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateFunc      func(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	CreateBatchFunc func(ctx context.Context, ns []domain.Notification) (int64, error)
	TransitionFunc  func(ctx context.Context, id uuid.UUID, to domain.DeliveryStatus, at time.Time, reason *string) (*domain.Notification, error)
	MarkReadFunc    func(ctx context.Context, userID uuid.UUID, id uuid.UUID, at time.Time) (*domain.Notification, error)
	MarkAllReadFunc func(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListForUserFunc func(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, error)
	CountUnreadFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	ListPendingFunc func(ctx context.Context, channel domain.Channel, limit int) ([]domain.Notification, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			N   *domain.Notification
		}
		CreateBatch []struct {
			Ctx context.Context
			Ns  []domain.Notification
		}
		Transition []struct {
			Ctx    context.Context
			ID     uuid.UUID
			To     domain.DeliveryStatus
			At     time.Time
			Reason *string
		}
		MarkRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     uuid.UUID
			At     time.Time
		}
		MarkAllRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
			At     time.Time
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			F      domain.NotificationFilter
		}
		CountUnread []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListPending []struct {
			Ctx     context.Context
			Channel domain.Channel
			Limit   int
		}
	}
	lockCreate      sync.RWMutex
	lockCreateBatch sync.RWMutex
	lockTransition  sync.RWMutex
	lockMarkRead    sync.RWMutex
	lockMarkAllRead sync.RWMutex
	lockGetByID     sync.RWMutex
	lockListForUser sync.RWMutex
	lockCountUnread sync.RWMutex
	lockListPending sync.RWMutex
}

func (mock *notificationRepoMock) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if mock.CreateFunc == nil {
		panic("notificationRepoMock.CreateFunc: method is nil but notificationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   *domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *notificationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   *domain.Notification
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *notificationRepoMock) CreateBatch(ctx context.Context, ns []domain.Notification) (int64, error) {
	if mock.CreateBatchFunc == nil {
		panic("notificationRepoMock.CreateBatchFunc: method is nil but notificationRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ns  []domain.Notification
	}{Ctx: ctx, Ns: ns}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, ns)
}

func (mock *notificationRepoMock) CreateBatchCalls() []struct {
	Ctx context.Context
	Ns  []domain.Notification
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *notificationRepoMock) Transition(ctx context.Context, id uuid.UUID, to domain.DeliveryStatus, at time.Time, reason *string) (*domain.Notification, error) {
	if mock.TransitionFunc == nil {
		panic("notificationRepoMock.TransitionFunc: method is nil but notificationRepo.Transition was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		To     domain.DeliveryStatus
		At     time.Time
		Reason *string
	}{Ctx: ctx, ID: id, To: to, At: at, Reason: reason}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	return mock.TransitionFunc(ctx, id, to, at, reason)
}

func (mock *notificationRepoMock) TransitionCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	To     domain.DeliveryStatus
	At     time.Time
	Reason *string
} {
	mock.lockTransition.RLock()
	calls := mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID, at time.Time) (*domain.Notification, error) {
	if mock.MarkReadFunc == nil {
		panic("notificationRepoMock.MarkReadFunc: method is nil but notificationRepo.MarkRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     uuid.UUID
		At     time.Time
	}{Ctx: ctx, UserID: userID, ID: id, At: at}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, userID, id, at)
}

func (mock *notificationRepoMock) MarkReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     uuid.UUID
	At     time.Time
} {
	mock.lockMarkRead.RLock()
	calls := mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	if mock.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc: method is nil but notificationRepo.MarkAllRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		At     time.Time
	}{Ctx: ctx, UserID: userID, At: at}
	mock.lockMarkAllRead.Lock()
	mock.calls.MarkAllRead = append(mock.calls.MarkAllRead, callInfo)
	mock.lockMarkAllRead.Unlock()
	return mock.MarkAllReadFunc(ctx, userID, at)
}

func (mock *notificationRepoMock) MarkAllReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	At     time.Time
} {
	mock.lockMarkAllRead.RLock()
	calls := mock.calls.MarkAllRead
	mock.lockMarkAllRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if mock.GetByIDFunc == nil {
		panic("notificationRepoMock.GetByIDFunc: method is nil but notificationRepo.GetByID was just called")
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

func (mock *notificationRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *notificationRepoMock) ListForUser(ctx context.Context, userID uuid.UUID, f domain.NotificationFilter) ([]domain.Notification, error) {
	if mock.ListForUserFunc == nil {
		panic("notificationRepoMock.ListForUserFunc: method is nil but notificationRepo.ListForUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		F      domain.NotificationFilter
	}{Ctx: ctx, UserID: userID, F: f}
	mock.lockListForUser.Lock()
	mock.calls.ListForUser = append(mock.calls.ListForUser, callInfo)
	mock.lockListForUser.Unlock()
	return mock.ListForUserFunc(ctx, userID, f)
}

func (mock *notificationRepoMock) ListForUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	F      domain.NotificationFilter
} {
	mock.lockListForUser.RLock()
	calls := mock.calls.ListForUser
	mock.lockListForUser.RUnlock()
	return calls
}

func (mock *notificationRepoMock) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountUnreadFunc == nil {
		panic("notificationRepoMock.CountUnreadFunc: method is nil but notificationRepo.CountUnread was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCountUnread.Lock()
	mock.calls.CountUnread = append(mock.calls.CountUnread, callInfo)
	mock.lockCountUnread.Unlock()
	return mock.CountUnreadFunc(ctx, userID)
}

func (mock *notificationRepoMock) CountUnreadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountUnread.RLock()
	calls := mock.calls.CountUnread
	mock.lockCountUnread.RUnlock()
	return calls
}

func (mock *notificationRepoMock) ListPending(ctx context.Context, channel domain.Channel, limit int) ([]domain.Notification, error) {
	if mock.ListPendingFunc == nil {
		panic("notificationRepoMock.ListPendingFunc: method is nil but notificationRepo.ListPending was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Channel domain.Channel
		Limit   int
	}{Ctx: ctx, Channel: channel, Limit: limit}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx, channel, limit)
}

func (mock *notificationRepoMock) ListPendingCalls() []struct {
	Ctx     context.Context
	Channel domain.Channel
	Limit   int
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}
