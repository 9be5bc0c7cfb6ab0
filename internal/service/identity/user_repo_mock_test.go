package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	CreateFunc           func(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	UpdateStatusFunc     func(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (*domain.User, error)
	AppendLoginFunc      func(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateProfileFunc    func(ctx context.Context, p domain.RoleProfile) error
	GetProfileFunc       func(ctx context.Context, userID uuid.UUID, role domain.Role) (domain.RoleProfile, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			U   *domain.User
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		UpdateStatus []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Status domain.AccountStatus
		}
		AppendLogin []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		CreateProfile []struct {
			Ctx context.Context
			P   domain.RoleProfile
		}
		GetProfile []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Role   domain.Role
		}
	}
	lockCreate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockGetByEmail       sync.RWMutex
	lockUpdateStatus     sync.RWMutex
	lockAppendLogin      sync.RWMutex
	lockCreateProfile    sync.RWMutex
	lockGetProfile       sync.RWMutex
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
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

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("userRepoMock.GetByIDForUpdateFunc: method is nil but userRepo.GetByIDForUpdate was just called")
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

func (mock *userRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if mock.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *userRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) (*domain.User, error) {
	if mock.UpdateStatusFunc == nil {
		panic("userRepoMock.UpdateStatusFunc: method is nil but userRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Status domain.AccountStatus
	}{Ctx: ctx, ID: id, Status: status}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status)
}

func (mock *userRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Status domain.AccountStatus
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *userRepoMock) AppendLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if mock.AppendLoginFunc == nil {
		panic("userRepoMock.AppendLoginFunc: method is nil but userRepo.AppendLogin was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockAppendLogin.Lock()
	mock.calls.AppendLogin = append(mock.calls.AppendLogin, callInfo)
	mock.lockAppendLogin.Unlock()
	return mock.AppendLoginFunc(ctx, id, at)
}

func (mock *userRepoMock) AppendLoginCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockAppendLogin.RLock()
	calls := mock.calls.AppendLogin
	mock.lockAppendLogin.RUnlock()
	return calls
}

func (mock *userRepoMock) CreateProfile(ctx context.Context, p domain.RoleProfile) error {
	if mock.CreateProfileFunc == nil {
		panic("userRepoMock.CreateProfileFunc: method is nil but userRepo.CreateProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.RoleProfile
	}{Ctx: ctx, P: p}
	mock.lockCreateProfile.Lock()
	mock.calls.CreateProfile = append(mock.calls.CreateProfile, callInfo)
	mock.lockCreateProfile.Unlock()
	return mock.CreateProfileFunc(ctx, p)
}

func (mock *userRepoMock) CreateProfileCalls() []struct {
	Ctx context.Context
	P   domain.RoleProfile
} {
	mock.lockCreateProfile.RLock()
	calls := mock.calls.CreateProfile
	mock.lockCreateProfile.RUnlock()
	return calls
}

func (mock *userRepoMock) GetProfile(ctx context.Context, userID uuid.UUID, role domain.Role) (domain.RoleProfile, error) {
	if mock.GetProfileFunc == nil {
		panic("userRepoMock.GetProfileFunc: method is nil but userRepo.GetProfile was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Role   domain.Role
	}{Ctx: ctx, UserID: userID, Role: role}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx, userID, role)
}

func (mock *userRepoMock) GetProfileCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Role   domain.Role
} {
	mock.lockGetProfile.RLock()
	calls := mock.calls.GetProfile
	mock.lockGetProfile.RUnlock()
	return calls
}
