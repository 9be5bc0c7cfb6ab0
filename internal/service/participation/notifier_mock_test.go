package participation

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/notification"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, input notification.NotifyInput) (*domain.Notification, error)

	calls struct {
		Notify []struct {
			Ctx   context.Context
			Input notification.NotifyInput
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, input notification.NotifyInput) (*domain.Notification, error) {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input notification.NotifyInput
	}{Ctx: ctx, Input: input}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, input)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx   context.Context
	Input notification.NotifyInput
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
