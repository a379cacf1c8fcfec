package backoffice

import (
	"context"
	"errors"

	"workshop/internal/errs"
	"workshop/internal/ports"
)

func isDuplicate(err error) bool {
	return errors.Is(err, ports.ErrDuplicateIdentifier)
}

func (s *Service) checkTenantCall(ctx context.Context, businessID uint64) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if businessID == 0 {
		return errBusinessRequired
	}
	return nil
}
