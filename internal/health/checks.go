package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cartsync"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/balance"
)

type Endpoints struct {
	CartSync cartsync.Prober
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints, version string) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
		{
			// Carts keep working offline, so an unreachable sync service only degrades.
			Name:      "cart-sync",
			Timeout:   cfg.CartSync.ProbeTimeout,
			SkipOnErr: true,
			Check:     CartSyncCheck(endpoints.CartSync),
		},
	}

	if cfg.Stripe.APIKey != "" {
		checks = append(checks, health.Config{
			Name:      "stripe",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				params := &stripe.BalanceParams{Params: stripe.Params{Context: ctx}}
				if _, err := balance.Get(params); err != nil {
					return fmt.Errorf("failed to connect to stripe: %w", err)
				}
				return nil
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "food-delivery",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func CartSyncCheck(prober cartsync.Prober) health.CheckFunc {
	return func(ctx context.Context) error {
		if prober == nil {
			return errors.New("cart sync probe is not configured")
		}

		if !prober.Online(ctx) {
			return errors.New("cart sync service is unreachable")
		}

		return nil
	}
}
