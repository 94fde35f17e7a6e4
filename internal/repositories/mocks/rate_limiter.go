package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type RateLimiter struct {
	mock.Mock
}

func NewRateLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *RateLimiter {
	m := &RateLimiter{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
