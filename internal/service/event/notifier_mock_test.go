package event

import (
	"context"
	"sync"

	"github.com/heartmarshall/eventhub-backend/internal/service/notification"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyManyFunc func(ctx context.Context, inputs []notification.NotifyInput) (int, error)

	calls struct {
		NotifyMany []struct {
			Ctx    context.Context
			Inputs []notification.NotifyInput
		}
	}
	lockNotifyMany sync.RWMutex
}

func (mock *notifierMock) NotifyMany(ctx context.Context, inputs []notification.NotifyInput) (int, error) {
	if mock.NotifyManyFunc == nil {
		panic("notifierMock.NotifyManyFunc: method is nil but notifier.NotifyMany was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Inputs []notification.NotifyInput
	}{Ctx: ctx, Inputs: inputs}
	mock.lockNotifyMany.Lock()
	mock.calls.NotifyMany = append(mock.calls.NotifyMany, callInfo)
	mock.lockNotifyMany.Unlock()
	return mock.NotifyManyFunc(ctx, inputs)
}

func (mock *notifierMock) NotifyManyCalls() []struct {
	Ctx    context.Context
	Inputs []notification.NotifyInput
} {
	mock.lockNotifyMany.RLock()
	calls := mock.calls.NotifyMany
	mock.lockNotifyMany.RUnlock()
	return calls
}
