// Package services contains server-side business logic: login and bearer
// authentication, the onboarding step flow, analytics ingestion, and the
// public profile read path.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/mpetrenko/linkfolio/internal/common"
)

// storeCtx bounds one store call with the configured per-call timeout.
// A non-positive timeout disables the bound.
func storeCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// storeErr translates a deadline hit on a store call into common.ErrTimeout;
// every other error passes through unchanged.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrTimeout
	}
	return err
}
