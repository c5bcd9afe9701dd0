package wiki

import (
	"context"
	"errors"
	"log/slog"

	"wikiflow/internal/domain"
)

// retryOnConflict reruns fn while it fails with a uniqueness conflict, up to
// attempts times. fn must be a whole unit of work: a failed statement aborts
// a Postgres transaction, so retrying inside one is not possible.
func retryOnConflict(ctx context.Context, logger *slog.Logger, op string, attempts int, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Debug("unit of work conflicted, retrying",
			"op", op,
			"attempt", attempt,
			"error", err,
		)
	}
	return err
}
