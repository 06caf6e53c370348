// Package database opens the connections backing the repositories.
package database

import (
	"context"
	"time"

	"storefront/pkg/logger"
)

const pingAttempts = 5

var pingInterval = 2 * time.Second

// pingWithRetry retries a few times in case of temporary DNS/network blips.
func pingWithRetry(ctx context.Context, name string, ping func(context.Context) error) error {
	var err error
	for i := 0; i < pingAttempts; i++ {
		if err = ping(ctx); err == nil {
			logger.Sugar.Infof("Successfully connected to %s", name)
			return nil
		}
		if i == pingAttempts-1 {
			break
		}
		logger.Sugar.Infof("%s connection failed, retrying in %s... (%v)", name, pingInterval, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return err
}
