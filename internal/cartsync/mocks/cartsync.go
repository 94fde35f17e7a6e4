package mocks

import (
	"context"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/stretchr/testify/mock"
)

type Syncer struct {
	mock.Mock
}

func NewSyncer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Syncer {
	m := &Syncer{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Syncer) Sync(ctx context.Context, payload *models.CartSyncPayload) error {
	args := m.Called(ctx, payload)

	return args.Error(0)
}

type Prober struct {
	mock.Mock
}

func NewProber(t interface {
	mock.TestingT
	Cleanup(func())
}) *Prober {
	m := &Prober{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Prober) Online(ctx context.Context) bool {
	args := m.Called(ctx)

	return args.Bool(0)
}
