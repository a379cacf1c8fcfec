package backoffice

import (
	"time"

	"github.com/shopspring/decimal"

	"workshop/internal/domain/money"
	"workshop/internal/ports"
)

// Views carry money as major-unit decimals and durations as hours.

type JobView struct {
	ID            uint64
	BusinessID    uint64
	JobID         string
	CustomerID    *uint64
	EquipmentID   *uint64
	Description   string
	Status        string
	PaymentAmount decimal.Decimal
	PaymentStatus string
	CreatedBy     uint64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TimeEntryView struct {
	ID        uint64
	JobID     uint64
	UserID    uint64
	Hours     decimal.Decimal
	Notes     string
	CreatedAt time.Time
}

type OrderItemView struct {
	ID          uint64
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type OrderView struct {
	ID                   uint64
	BusinessID           uint64
	OrderNumber          string
	CustomerID           *uint64
	Supplier             string
	Status               string
	TotalAmount          decimal.Decimal
	DepositAmount        decimal.Decimal
	Notes                string
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CompletedAt          *time.Time
	CancelledAt          *time.Time
	CreatedBy            uint64
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Items                []OrderItemView
}

type PartView struct {
	ID                   uint64
	BusinessID           uint64
	JobID                *uint64
	CustomerID           *uint64
	PartName             string
	Supplier             string
	Quantity             int64
	EstimatedCost        *decimal.Decimal
	ActualCost           *decimal.Decimal
	Status               string
	IsArrived            bool
	IsCustomerNotified   bool
	ExpectedDeliveryDate *time.Time
	DeliveryDate         *time.Time
	CollectedAt          *time.Time
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func jobView(job ports.Job) JobView {
	return JobView{
		ID:            job.ID,
		BusinessID:    job.BusinessID,
		JobID:         job.JobID,
		CustomerID:    job.CustomerID,
		EquipmentID:   job.EquipmentID,
		Description:   job.Description,
		Status:        job.Status,
		PaymentAmount: money.ToMajorUnits(job.PaymentAmount),
		PaymentStatus: job.PaymentStatus,
		CreatedBy:     job.CreatedBy,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}

func timeEntryView(entry ports.TimeEntry) TimeEntryView {
	return TimeEntryView{
		ID:        entry.ID,
		JobID:     entry.JobID,
		UserID:    entry.UserID,
		Hours:     money.MinutesToHours(entry.Minutes),
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
	}
}

func orderView(order ports.Order, items []ports.OrderItem) OrderView {
	view := OrderView{
		ID:                   order.ID,
		BusinessID:           order.BusinessID,
		OrderNumber:          order.OrderNumber,
		CustomerID:           order.CustomerID,
		Supplier:             order.Supplier,
		Status:               order.Status,
		TotalAmount:          money.ToMajorUnits(order.TotalAmount),
		DepositAmount:        money.ToMajorUnits(order.DepositAmount),
		Notes:                order.Notes,
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		ActualDeliveryDate:   order.ActualDeliveryDate,
		CompletedAt:          order.CompletedAt,
		CancelledAt:          order.CancelledAt,
		CreatedBy:            order.CreatedBy,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
		Items:                make([]OrderItemView, 0, len(items)),
	}
	for _, item := range items {
		view.Items = append(view.Items, OrderItemView{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   money.ToMajorUnits(item.UnitPrice),
			LineTotal:   money.ToMajorUnits(item.LineTotal),
		})
	}
	return view
}

func partView(part ports.PartOnOrder) PartView {
	return PartView{
		ID:                   part.ID,
		BusinessID:           part.BusinessID,
		JobID:                part.JobID,
		CustomerID:           part.CustomerID,
		PartName:             part.PartName,
		Supplier:             part.Supplier,
		Quantity:             part.Quantity,
		EstimatedCost:        money.OptionalMajor(part.EstimatedCost),
		ActualCost:           money.OptionalMajor(part.ActualCost),
		Status:               part.Status,
		IsArrived:            part.IsArrived,
		IsCustomerNotified:   part.IsCustomerNotified,
		ExpectedDeliveryDate: part.ExpectedDeliveryDate,
		DeliveryDate:         part.DeliveryDate,
		CollectedAt:          part.CollectedAt,
		Notes:                part.Notes,
		CreatedAt:            part.CreatedAt,
		UpdatedAt:            part.UpdatedAt,
	}
}
