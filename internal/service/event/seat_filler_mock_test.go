package event

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ seatFiller = &seatFillerMock{}

type seatFillerMock struct {
	FillOpenSeatsFunc func(ctx context.Context, eventID uuid.UUID) (int, error)

	calls struct {
		FillOpenSeats []struct {
			Ctx     context.Context
			EventID uuid.UUID
		}
	}
	lockFillOpenSeats sync.RWMutex
}

func (mock *seatFillerMock) FillOpenSeats(ctx context.Context, eventID uuid.UUID) (int, error) {
	if mock.FillOpenSeatsFunc == nil {
		panic("seatFillerMock.FillOpenSeatsFunc: method is nil but seatFiller.FillOpenSeats was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
	}{Ctx: ctx, EventID: eventID}
	mock.lockFillOpenSeats.Lock()
	mock.calls.FillOpenSeats = append(mock.calls.FillOpenSeats, callInfo)
	mock.lockFillOpenSeats.Unlock()
	return mock.FillOpenSeatsFunc(ctx, eventID)
}

func (mock *seatFillerMock) FillOpenSeatsCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
} {
	mock.lockFillOpenSeats.RLock()
	calls := mock.calls.FillOpenSeats
	mock.lockFillOpenSeats.RUnlock()
	return calls
}
