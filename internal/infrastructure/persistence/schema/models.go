// Package schema lists the tables of each schema version.
package schema

import "workshop/internal/infrastructure/persistence/sqlite/model"

// CurrentVersion is the schema version written by InitSchema.
const CurrentVersion = 3

type versioned struct {
	since int
	model any
}

var tables = []versioned{
	{1, &model.Business{}},
	{1, &model.User{}},
	{1, &model.Customer{}},
	{1, &model.Equipment{}},
	{1, &model.Job{}},
	{1, &model.Service{}},
	{1, &model.Payment{}},
	{1, &model.PaymentRequest{}},
	{1, &model.WorkCompleted{}},
	{1, &model.TimeEntry{}},
	{1, &model.JobUpdate{}},
	{1, &model.CallbackRequest{}},
	{1, &model.Order{}},
	{1, &model.OrderItem{}},
	{1, &model.OrderStatusHistory{}},
	{1, &model.PartOnOrder{}},
	{1, &model.PartOrderUpdate{}},
	{1, &model.Notification{}},
	{1, &model.Activity{}},
	{1, &model.TenantCounter{}},
	{2, &model.NotificationDismissal{}},
	{2, &model.EmailHistory{}},
	{2, &model.Task{}},
	{2, &model.RegistrationRequest{}},
	{3, &model.MessageThread{}},
	{3, &model.MessageThreadParticipant{}},
	{3, &model.Message{}},
}

// Models returns the models that exist at version, plus the meta table.
// A version outside 1..CurrentVersion means CurrentVersion.
func Models(version int) []any {
	if version <= 0 || version > CurrentVersion {
		version = CurrentVersion
	}

	out := []any{&SchemaMeta{}}
	for _, table := range tables {
		if table.since <= version {
			out = append(out, table.model)
		}
	}
	return out
}
