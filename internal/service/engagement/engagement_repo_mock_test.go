package engagement

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

var _ engagementRepo = &engagementRepoMock{}

type engagementRepoMock struct {
	InsertFunc                 func(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, target domain.TargetRef) (bool, error)
	DeleteFunc                 func(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, targetID string) (bool, error)
	ListByUserFunc             func(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, limit int, offset int) ([]domain.EventEngagement, error)
	AdjustCounterFunc          func(ctx context.Context, kind domain.EngagementKind, eventID uuid.UUID, delta int) (int, error)
	InsertSavedPostFunc        func(ctx context.Context, userID uuid.UUID, postID string) (bool, error)
	DeleteSavedPostFunc        func(ctx context.Context, userID uuid.UUID, postID string) (bool, error)
	ListSavedPostsFunc         func(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.SavedPost, error)
	FindDriftFunc              func(ctx context.Context, limit int) ([]domain.CounterDrift, error)
	RecountFunc                func(ctx context.Context, eventID uuid.UUID) (domain.CounterDrift, error)
	ListExternalTargetsFunc    func(ctx context.Context, afterID string, limit int) ([]string, error)
	DeleteExternalTargetFunc   func(ctx context.Context, targetID string) (int64, error)
	ListSavedPostIDsFunc       func(ctx context.Context, afterID string, limit int) ([]string, error)
	DeleteSavedPostsByPostFunc func(ctx context.Context, postID string) (int64, error)

	calls struct {
		Insert []struct {
			Ctx    context.Context
			Kind   domain.EngagementKind
			UserID uuid.UUID
			Target domain.TargetRef
		}
		Delete []struct {
			Ctx      context.Context
			Kind     domain.EngagementKind
			UserID   uuid.UUID
			TargetID string
		}
		ListByUser []struct {
			Ctx    context.Context
			Kind   domain.EngagementKind
			UserID uuid.UUID
			Limit  int
			Offset int
		}
		AdjustCounter []struct {
			Ctx     context.Context
			Kind    domain.EngagementKind
			EventID uuid.UUID
			Delta   int
		}
		InsertSavedPost []struct {
			Ctx    context.Context
			UserID uuid.UUID
			PostID string
		}
		DeleteSavedPost []struct {
			Ctx    context.Context
			UserID uuid.UUID
			PostID string
		}
		ListSavedPosts []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
		FindDrift []struct {
			Ctx   context.Context
			Limit int
		}
		Recount []struct {
			Ctx     context.Context
			EventID uuid.UUID
		}
		ListExternalTargets []struct {
			Ctx     context.Context
			AfterID string
			Limit   int
		}
		DeleteExternalTarget []struct {
			Ctx      context.Context
			TargetID string
		}
		ListSavedPostIDs []struct {
			Ctx     context.Context
			AfterID string
			Limit   int
		}
		DeleteSavedPostsByPost []struct {
			Ctx    context.Context
			PostID string
		}
	}
	lockInsert                 sync.RWMutex
	lockDelete                 sync.RWMutex
	lockListByUser             sync.RWMutex
	lockAdjustCounter          sync.RWMutex
	lockInsertSavedPost        sync.RWMutex
	lockDeleteSavedPost        sync.RWMutex
	lockListSavedPosts         sync.RWMutex
	lockFindDrift              sync.RWMutex
	lockRecount                sync.RWMutex
	lockListExternalTargets    sync.RWMutex
	lockDeleteExternalTarget   sync.RWMutex
	lockListSavedPostIDs       sync.RWMutex
	lockDeleteSavedPostsByPost sync.RWMutex
}

func (mock *engagementRepoMock) Insert(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, target domain.TargetRef) (bool, error) {
	if mock.InsertFunc == nil {
		panic("engagementRepoMock.InsertFunc: method is nil but engagementRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Kind   domain.EngagementKind
		UserID uuid.UUID
		Target domain.TargetRef
	}{Ctx: ctx, Kind: kind, UserID: userID, Target: target}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, kind, userID, target)
}

func (mock *engagementRepoMock) InsertCalls() []struct {
	Ctx    context.Context
	Kind   domain.EngagementKind
	UserID uuid.UUID
	Target domain.TargetRef
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *engagementRepoMock) Delete(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, targetID string) (bool, error) {
	if mock.DeleteFunc == nil {
		panic("engagementRepoMock.DeleteFunc: method is nil but engagementRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.EngagementKind
		UserID   uuid.UUID
		TargetID string
	}{Ctx: ctx, Kind: kind, UserID: userID, TargetID: targetID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, kind, userID, targetID)
}

func (mock *engagementRepoMock) DeleteCalls() []struct {
	Ctx      context.Context
	Kind     domain.EngagementKind
	UserID   uuid.UUID
	TargetID string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *engagementRepoMock) ListByUser(ctx context.Context, kind domain.EngagementKind, userID uuid.UUID, limit int, offset int) ([]domain.EventEngagement, error) {
	if mock.ListByUserFunc == nil {
		panic("engagementRepoMock.ListByUserFunc: method is nil but engagementRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Kind   domain.EngagementKind
		UserID uuid.UUID
		Limit  int
		Offset int
	}{Ctx: ctx, Kind: kind, UserID: userID, Limit: limit, Offset: offset}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, kind, userID, limit, offset)
}

func (mock *engagementRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	Kind   domain.EngagementKind
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *engagementRepoMock) AdjustCounter(ctx context.Context, kind domain.EngagementKind, eventID uuid.UUID, delta int) (int, error) {
	if mock.AdjustCounterFunc == nil {
		panic("engagementRepoMock.AdjustCounterFunc: method is nil but engagementRepo.AdjustCounter was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Kind    domain.EngagementKind
		EventID uuid.UUID
		Delta   int
	}{Ctx: ctx, Kind: kind, EventID: eventID, Delta: delta}
	mock.lockAdjustCounter.Lock()
	mock.calls.AdjustCounter = append(mock.calls.AdjustCounter, callInfo)
	mock.lockAdjustCounter.Unlock()
	return mock.AdjustCounterFunc(ctx, kind, eventID, delta)
}

func (mock *engagementRepoMock) AdjustCounterCalls() []struct {
	Ctx     context.Context
	Kind    domain.EngagementKind
	EventID uuid.UUID
	Delta   int
} {
	mock.lockAdjustCounter.RLock()
	calls := mock.calls.AdjustCounter
	mock.lockAdjustCounter.RUnlock()
	return calls
}

func (mock *engagementRepoMock) InsertSavedPost(ctx context.Context, userID uuid.UUID, postID string) (bool, error) {
	if mock.InsertSavedPostFunc == nil {
		panic("engagementRepoMock.InsertSavedPostFunc: method is nil but engagementRepo.InsertSavedPost was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		PostID string
	}{Ctx: ctx, UserID: userID, PostID: postID}
	mock.lockInsertSavedPost.Lock()
	mock.calls.InsertSavedPost = append(mock.calls.InsertSavedPost, callInfo)
	mock.lockInsertSavedPost.Unlock()
	return mock.InsertSavedPostFunc(ctx, userID, postID)
}

func (mock *engagementRepoMock) InsertSavedPostCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	PostID string
} {
	mock.lockInsertSavedPost.RLock()
	calls := mock.calls.InsertSavedPost
	mock.lockInsertSavedPost.RUnlock()
	return calls
}

func (mock *engagementRepoMock) DeleteSavedPost(ctx context.Context, userID uuid.UUID, postID string) (bool, error) {
	if mock.DeleteSavedPostFunc == nil {
		panic("engagementRepoMock.DeleteSavedPostFunc: method is nil but engagementRepo.DeleteSavedPost was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		PostID string
	}{Ctx: ctx, UserID: userID, PostID: postID}
	mock.lockDeleteSavedPost.Lock()
	mock.calls.DeleteSavedPost = append(mock.calls.DeleteSavedPost, callInfo)
	mock.lockDeleteSavedPost.Unlock()
	return mock.DeleteSavedPostFunc(ctx, userID, postID)
}

func (mock *engagementRepoMock) DeleteSavedPostCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	PostID string
} {
	mock.lockDeleteSavedPost.RLock()
	calls := mock.calls.DeleteSavedPost
	mock.lockDeleteSavedPost.RUnlock()
	return calls
}

func (mock *engagementRepoMock) ListSavedPosts(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.SavedPost, error) {
	if mock.ListSavedPostsFunc == nil {
		panic("engagementRepoMock.ListSavedPostsFunc: method is nil but engagementRepo.ListSavedPosts was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}{Ctx: ctx, UserID: userID, Limit: limit, Offset: offset}
	mock.lockListSavedPosts.Lock()
	mock.calls.ListSavedPosts = append(mock.calls.ListSavedPosts, callInfo)
	mock.lockListSavedPosts.Unlock()
	return mock.ListSavedPostsFunc(ctx, userID, limit, offset)
}

func (mock *engagementRepoMock) ListSavedPostsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockListSavedPosts.RLock()
	calls := mock.calls.ListSavedPosts
	mock.lockListSavedPosts.RUnlock()
	return calls
}

func (mock *engagementRepoMock) FindDrift(ctx context.Context, limit int) ([]domain.CounterDrift, error) {
	if mock.FindDriftFunc == nil {
		panic("engagementRepoMock.FindDriftFunc: method is nil but engagementRepo.FindDrift was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockFindDrift.Lock()
	mock.calls.FindDrift = append(mock.calls.FindDrift, callInfo)
	mock.lockFindDrift.Unlock()
	return mock.FindDriftFunc(ctx, limit)
}

func (mock *engagementRepoMock) FindDriftCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockFindDrift.RLock()
	calls := mock.calls.FindDrift
	mock.lockFindDrift.RUnlock()
	return calls
}

func (mock *engagementRepoMock) Recount(ctx context.Context, eventID uuid.UUID) (domain.CounterDrift, error) {
	if mock.RecountFunc == nil {
		panic("engagementRepoMock.RecountFunc: method is nil but engagementRepo.Recount was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
	}{Ctx: ctx, EventID: eventID}
	mock.lockRecount.Lock()
	mock.calls.Recount = append(mock.calls.Recount, callInfo)
	mock.lockRecount.Unlock()
	return mock.RecountFunc(ctx, eventID)
}

func (mock *engagementRepoMock) RecountCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
} {
	mock.lockRecount.RLock()
	calls := mock.calls.Recount
	mock.lockRecount.RUnlock()
	return calls
}

func (mock *engagementRepoMock) ListExternalTargets(ctx context.Context, afterID string, limit int) ([]string, error) {
	if mock.ListExternalTargetsFunc == nil {
		panic("engagementRepoMock.ListExternalTargetsFunc: method is nil but engagementRepo.ListExternalTargets was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AfterID string
		Limit   int
	}{Ctx: ctx, AfterID: afterID, Limit: limit}
	mock.lockListExternalTargets.Lock()
	mock.calls.ListExternalTargets = append(mock.calls.ListExternalTargets, callInfo)
	mock.lockListExternalTargets.Unlock()
	return mock.ListExternalTargetsFunc(ctx, afterID, limit)
}

func (mock *engagementRepoMock) ListExternalTargetsCalls() []struct {
	Ctx     context.Context
	AfterID string
	Limit   int
} {
	mock.lockListExternalTargets.RLock()
	calls := mock.calls.ListExternalTargets
	mock.lockListExternalTargets.RUnlock()
	return calls
}

func (mock *engagementRepoMock) DeleteExternalTarget(ctx context.Context, targetID string) (int64, error) {
	if mock.DeleteExternalTargetFunc == nil {
		panic("engagementRepoMock.DeleteExternalTargetFunc: method is nil but engagementRepo.DeleteExternalTarget was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		TargetID string
	}{Ctx: ctx, TargetID: targetID}
	mock.lockDeleteExternalTarget.Lock()
	mock.calls.DeleteExternalTarget = append(mock.calls.DeleteExternalTarget, callInfo)
	mock.lockDeleteExternalTarget.Unlock()
	return mock.DeleteExternalTargetFunc(ctx, targetID)
}

func (mock *engagementRepoMock) DeleteExternalTargetCalls() []struct {
	Ctx      context.Context
	TargetID string
} {
	mock.lockDeleteExternalTarget.RLock()
	calls := mock.calls.DeleteExternalTarget
	mock.lockDeleteExternalTarget.RUnlock()
	return calls
}

func (mock *engagementRepoMock) ListSavedPostIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	if mock.ListSavedPostIDsFunc == nil {
		panic("engagementRepoMock.ListSavedPostIDsFunc: method is nil but engagementRepo.ListSavedPostIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AfterID string
		Limit   int
	}{Ctx: ctx, AfterID: afterID, Limit: limit}
	mock.lockListSavedPostIDs.Lock()
	mock.calls.ListSavedPostIDs = append(mock.calls.ListSavedPostIDs, callInfo)
	mock.lockListSavedPostIDs.Unlock()
	return mock.ListSavedPostIDsFunc(ctx, afterID, limit)
}

func (mock *engagementRepoMock) ListSavedPostIDsCalls() []struct {
	Ctx     context.Context
	AfterID string
	Limit   int
} {
	mock.lockListSavedPostIDs.RLock()
	calls := mock.calls.ListSavedPostIDs
	mock.lockListSavedPostIDs.RUnlock()
	return calls
}

func (mock *engagementRepoMock) DeleteSavedPostsByPost(ctx context.Context, postID string) (int64, error) {
	if mock.DeleteSavedPostsByPostFunc == nil {
		panic("engagementRepoMock.DeleteSavedPostsByPostFunc: method is nil but engagementRepo.DeleteSavedPostsByPost was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID string
	}{Ctx: ctx, PostID: postID}
	mock.lockDeleteSavedPostsByPost.Lock()
	mock.calls.DeleteSavedPostsByPost = append(mock.calls.DeleteSavedPostsByPost, callInfo)
	mock.lockDeleteSavedPostsByPost.Unlock()
	return mock.DeleteSavedPostsByPostFunc(ctx, postID)
}

func (mock *engagementRepoMock) DeleteSavedPostsByPostCalls() []struct {
	Ctx    context.Context
	PostID string
} {
	mock.lockDeleteSavedPostsByPost.RLock()
	calls := mock.calls.DeleteSavedPostsByPost
	mock.lockDeleteSavedPostsByPost.RUnlock()
	return calls
}
