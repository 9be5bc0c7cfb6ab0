package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ participationRepo = &participationRepoMock{}

type participationRepoMock struct {
	DeleteByUserFunc func(ctx context.Context, userID uuid.UUID) (int64, error)

	calls struct {
		DeleteByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockDeleteByUser sync.RWMutex
}

func (mock *participationRepoMock) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if mock.DeleteByUserFunc == nil {
		panic("participationRepoMock.DeleteByUserFunc: method is nil but participationRepo.DeleteByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockDeleteByUser.Lock()
	mock.calls.DeleteByUser = append(mock.calls.DeleteByUser, callInfo)
	mock.lockDeleteByUser.Unlock()
	return mock.DeleteByUserFunc(ctx, userID)
}

func (mock *participationRepoMock) DeleteByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockDeleteByUser.RLock()
	calls := mock.calls.DeleteByUser
	mock.lockDeleteByUser.RUnlock()
	return calls
}
