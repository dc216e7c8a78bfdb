package schedule

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) SaveSchedule(ctx context.Context, terms LoanTerms, result *RepaymentSchedule) (*StoredSchedule, error) {
	ret := _m.Called(ctx, terms, result)

	var r0 *StoredSchedule
	if rf, ok := ret.Get(0).(func(context.Context, LoanTerms, *RepaymentSchedule) *StoredSchedule); ok {
		r0 = rf(ctx, terms, result)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*StoredSchedule)
		}
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) GetScheduleByID(ctx context.Context, scheduleID int64) (*StoredSchedule, error) {
	ret := _m.Called(ctx, scheduleID)

	var r0 *StoredSchedule
	if rf, ok := ret.Get(0).(func(context.Context, int64) *StoredSchedule); ok {
		r0 = rf(ctx, scheduleID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*StoredSchedule)
		}
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository) DeleteSchedulesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := _m.Called(ctx, cutoff)
	return ret.Get(0).(int64), ret.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (_m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	ret := _m.Called(ctx, key)
	return ret.String(0), ret.Bool(1)
}

func (_m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	ret := _m.Called(ctx, key, value, ttl)
	return ret.Error(0)
}

type MockCalculationPublisher struct {
	mock.Mock
}

func (_m *MockCalculationPublisher) PublishScheduleCalculated(ctx context.Context, stored *StoredSchedule) error {
	ret := _m.Called(ctx, stored)
	return ret.Error(0)
}
