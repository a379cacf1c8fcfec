package backoffice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/domain/identifier"
	"workshop/internal/errs"
	"workshop/internal/ports"
)

// NextIdentifier issues the next identifier of kind for a tenant. The counter
// row is created at the kind seed on first use.
func (s *Service) NextIdentifier(ctx context.Context, businessID uint64, kind identifier.Kind) (string, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return "", err
	}
	if s.counters == nil {
		return "", errors.New("counter repository is required")
	}
	if _, err := identifier.ParseKind(string(kind)); err != nil {
		return "", err
	}

	issued, err := s.issue(ctx, businessID, kind)
	if err != nil {
		return "", err
	}
	return issued.id, nil
}

// ResolveIdentifier validates an identifier supplied by the caller. It returns
// a fresh identifier when the supplied one is empty, taken, malformed or
// belongs to another tenant; otherwise the counter is advanced past it and it
// is returned without surrounding whitespace. Only canonical sequenced ids
// (no zero padding, at most identifier.MaxSequence) are kept.
func (s *Service) ResolveIdentifier(ctx context.Context, businessID uint64, kind identifier.Kind, supplied string) (string, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return "", err
	}
	if _, err := identifier.ParseKind(string(kind)); err != nil {
		return "", err
	}

	issued, err := s.resolve(ctx, businessID, kind, supplied)
	if err != nil {
		return "", err
	}
	return issued.id, nil
}

// CurrentCounter reports the last issued sequence number. found is false
// before the first issue.
func (s *Service) CurrentCounter(ctx context.Context, businessID uint64, kind identifier.Kind) (int64, bool, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return 0, false, err
	}
	if _, err := identifier.ParseKind(string(kind)); err != nil {
		return 0, false, err
	}
	return s.counters.Current(ctx, businessID, string(kind))
}

type issuedID struct {
	id       string
	supplied bool
	degraded bool
}

// issue runs the counter increment in its own transaction. When that fails
// and degraded mode is allowed, the id comes from the reserved ULID namespace.
func (s *Service) issue(ctx context.Context, businessID uint64, kind identifier.Kind) (issuedID, error) {
	now := s.now()

	var sequence int64
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		next, err := s.counters.Increment(txCtx, businessID, string(kind), identifier.Seed(kind), now)
		if err != nil {
			return err
		}
		sequence = next
		return nil
	})
	if err == nil {
		s.metrics.IdentifierIssued(string(kind), false)
		return issuedID{id: identifier.Format(kind, businessID, sequence)}, nil
	}

	if errors.Is(err, ports.ErrCounterExhausted) {
		logging.Error(logging.WithBusiness(ctx, businessID), "tenant counter exhausted", slog.String("kind", string(kind)))
		return issuedID{}, errs.Wrapf(err, "issue %s identifier", kind)
	}
	if errs.IsContext(err) || ctx.Err() != nil || !s.allowDegraded {
		return issuedID{}, errs.Wrapf(err, "issue %s identifier", kind)
	}

	token, tokenErr := ulid.New(ulid.Timestamp(now), s.entropy)
	if tokenErr != nil {
		return issuedID{}, errs.Wrapf(errors.Join(err, tokenErr), "issue degraded %s identifier", kind)
	}
	id := identifier.FormatDegraded(kind, businessID, token.String())

	logging.Warn(
		logging.WithBusiness(ctx, businessID),
		"counter unavailable, issued degraded identifier",
		slog.String("kind", string(kind)),
		slog.String("identifier", id),
		slog.Any("err", errs.Loggable(err)),
	)
	s.metrics.IdentifierIssued(string(kind), true)
	return issuedID{id: id, degraded: true}, nil
}

func (s *Service) resolve(ctx context.Context, businessID uint64, kind identifier.Kind, supplied string) (issuedID, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return s.issue(ctx, businessID, kind)
	}

	logCtx := logging.WithAttrs(
		logging.WithBusiness(ctx, businessID),
		slog.String("kind", string(kind)),
		slog.String("supplied", supplied),
	)

	if identifier.IsDegraded(kind, supplied) {
		if tenant, ok := identifier.DegradedTenant(supplied); ok && tenant != businessID {
			logging.Info(logCtx, "supplied identifier belongs to another tenant, regenerating")
			return s.issue(ctx, businessID, kind)
		}
		taken, err := s.identifierTaken(ctx, businessID, kind, supplied)
		if err != nil {
			return issuedID{}, err
		}
		if taken {
			logging.Info(logCtx, "supplied identifier already exists, regenerating")
			return s.issue(ctx, businessID, kind)
		}
		return issuedID{id: supplied, supplied: true, degraded: true}, nil
	}

	parsed, err := identifier.Parse(kind, supplied)
	if err != nil {
		logging.Info(logCtx, "supplied identifier is not a sequenced id, regenerating", slog.Any("err", errs.Loggable(err)))
		return s.issue(ctx, businessID, kind)
	}
	if parsed.HasTenant && parsed.BusinessID != businessID {
		logging.Info(logCtx, "supplied identifier belongs to another tenant, regenerating")
		return s.issue(ctx, businessID, kind)
	}

	taken, err := s.identifierTaken(ctx, businessID, kind, supplied)
	if err != nil {
		return issuedID{}, err
	}
	if taken {
		logging.Info(logCtx, "supplied identifier already exists, regenerating")
		return s.issue(ctx, businessID, kind)
	}

	now := s.now()
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		return s.counters.AdvanceTo(txCtx, businessID, string(kind), identifier.Seed(kind), parsed.Sequence, now)
	}); err != nil {
		return issuedID{}, errs.Wrapf(err, "advance %s counter", kind)
	}
	return issuedID{id: supplied, supplied: true}, nil
}

func (s *Service) identifierTaken(ctx context.Context, businessID uint64, kind identifier.Kind, id string) (bool, error) {
	switch kind {
	case identifier.KindJob:
		if s.jobs == nil {
			return false, errors.New("job repository is required")
		}
		return s.jobs.JobIDExists(ctx, businessID, id)
	case identifier.KindOrder:
		if s.orders == nil {
			return false, errors.New("order repository is required")
		}
		return s.orders.OrderNumberExists(ctx, businessID, id)
	default:
		return false, identifier.ErrUnknownKind
	}
}

// insertWithIdentifier resolves an identifier and hands it to insert, which
// runs in its own transaction and must recheck uniqueness before writing. A
// duplicate rejection regenerates the identifier, up to maxIdentifierAttempts.
func (s *Service) insertWithIdentifier(
	ctx context.Context,
	businessID uint64,
	kind identifier.Kind,
	supplied string,
	insert func(txCtx context.Context, id string) error,
) (string, error) {
	logCtx := logging.WithAttrs(logging.WithBusiness(ctx, businessID), slog.String("kind", string(kind)))

	candidate := supplied
	for attempt := 1; attempt <= maxIdentifierAttempts; attempt++ {
		issued, err := s.resolve(ctx, businessID, kind, candidate)
		if err != nil {
			return "", err
		}

		err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
			taken, err := s.identifierTaken(txCtx, businessID, kind, issued.id)
			if err != nil {
				return err
			}
			if taken {
				return ports.ErrDuplicateIdentifier
			}
			return insert(txCtx, issued.id)
		})
		if err == nil {
			return issued.id, nil
		}
		if !isDuplicate(err) {
			return "", err
		}

		s.metrics.IdentifierCollision(string(kind))
		logging.Warn(logCtx, "identifier collision, regenerating",
			slog.String("identifier", issued.id),
			slog.Int("attempt", attempt),
		)
		candidate = ""
	}

	logging.Error(logCtx, "identifier allocation exhausted", slog.Int("attempts", maxIdentifierAttempts))
	return "", ErrIdentifierExhausted
}
