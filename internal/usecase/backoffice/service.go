package backoffice

import (
	"errors"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"workshop/internal/domain/callback"
	"workshop/internal/domain/teardown"
	"workshop/internal/errs"
	"workshop/internal/ports"
)

const maxIdentifierAttempts = 3

var (
	// ErrIdentifierExhausted is returned after maxIdentifierAttempts inserts
	// were rejected for an identifier that was already taken.
	ErrIdentifierExhausted = errors.New("could not allocate unique identifier")

	errBusinessRequired = errors.New("business id is required")
)

// Deps are the collaborators of the back-office service. Observer, Metrics,
// Clock and Entropy are optional.
type Deps struct {
	Tenants   ports.TenantRepository
	Counters  ports.CounterRepository
	Jobs      ports.JobRepository
	Orders    ports.OrderRepository
	Parts     ports.PartRepository
	Callbacks ports.CallbackRepository
	UOW       ports.UnitOfWork
	Observer  ports.LedgerObserver
	Metrics   ports.Metrics
	Clock     func() time.Time
	Entropy   io.Reader
}

type Options struct {
	// AllowDegraded issues ULID-suffixed identifiers when the counter
	// transaction fails instead of failing the create.
	AllowDegraded bool
	// PurgeAfter is the callback soft-delete window. Zero means 30 days.
	PurgeAfter time.Duration
	// Manifest overrides the embedded teardown plan.
	Manifest *teardown.Manifest
}

type Service struct {
	tenants   ports.TenantRepository
	counters  ports.CounterRepository
	jobs      ports.JobRepository
	orders    ports.OrderRepository
	parts     ports.PartRepository
	callbacks ports.CallbackRepository
	uow       ports.UnitOfWork
	observer  ports.LedgerObserver
	metrics   ports.Metrics
	clock     func() time.Time
	entropy   io.Reader

	allowDegraded bool
	purgeAfter    time.Duration
	manifest      teardown.Manifest
}

// NewService wires the tenant-scoped back-office operations.
func NewService(deps Deps, options Options) (*Service, error) {
	if deps.UOW == nil {
		return nil, errors.New("unit of work is required")
	}

	manifest := teardown.Manifest{}
	if options.Manifest != nil {
		if err := options.Manifest.Validate(); err != nil {
			return nil, err
		}
		manifest = *options.Manifest
	} else {
		loaded, err := teardown.DefaultManifest()
		if err != nil {
			return nil, errs.Wrap(err, "load teardown manifest")
		}
		manifest = loaded
	}

	s := &Service{
		tenants:       deps.Tenants,
		counters:      deps.Counters,
		jobs:          deps.Jobs,
		orders:        deps.Orders,
		parts:         deps.Parts,
		callbacks:     deps.Callbacks,
		uow:           deps.UOW,
		observer:      deps.Observer,
		metrics:       deps.Metrics,
		clock:         deps.Clock,
		entropy:       deps.Entropy,
		allowDegraded: options.AllowDegraded,
		purgeAfter:    options.PurgeAfter,
		manifest:      manifest,
	}
	if s.metrics == nil {
		s.metrics = ports.NoopMetrics{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.entropy == nil {
		s.entropy = ulid.DefaultEntropy()
	}
	if s.purgeAfter <= 0 {
		s.purgeAfter = callback.DefaultPurgeAfter
	}
	return s, nil
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

type CreateJobInput struct {
	BusinessID uint64
	// JobID is an optional caller-chosen identifier (imports, retries).
	JobID         string
	CustomerID    *uint64
	EquipmentID   *uint64
	Description   string
	Status        string
	PaymentAmount decimal.Decimal
	PaymentStatus string
	CreatedBy     uint64
}

type RecordTimeEntryInput struct {
	BusinessID uint64
	JobID      uint64
	UserID     uint64
	Hours      decimal.Decimal
	Notes      string
}

type OrderItemInput struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

type CreateOrderInput struct {
	BusinessID uint64
	// OrderNumber is an optional caller-chosen identifier.
	OrderNumber          string
	CustomerID           *uint64
	Supplier             string
	Status               string
	Items                []OrderItemInput
	Deposit              decimal.Decimal
	Notes                string
	ExpectedDeliveryDate *time.Time
	CreatedBy            uint64
}

type TransitionOrderInput struct {
	BusinessID uint64
	OrderID    uint64
	Status     string
	ChangedBy  uint64
	Reason     string
	Notes      string
	Metadata   map[string]any
}

type CreatePartInput struct {
	BusinessID           uint64
	JobID                *uint64
	CustomerID           *uint64
	PartName             string
	Supplier             string
	Quantity             int64
	EstimatedCost        *decimal.Decimal
	ExpectedDeliveryDate *time.Time
	Notes                string
	CreatedBy            uint64
}

type MarkPartArrivedInput struct {
	BusinessID   uint64
	PartID       uint64
	UpdatedBy    uint64
	DeliveryDate *time.Time
	Cost         *decimal.Decimal
	Notes        string
}

// PartActionInput drives collect, notify and cancel.
type PartActionInput struct {
	BusinessID uint64
	PartID     uint64
	UpdatedBy  uint64
	Notes      string
}

type CreateCallbackInput struct {
	BusinessID   uint64
	CustomerID   *uint64
	CustomerName string
	Phone        string
	Reason       string
	Notes        string
	CreatedBy    uint64
}

type CallbackActionInput struct {
	BusinessID uint64
	CallbackID uint64
	UserID     uint64
	Notes      string
}
