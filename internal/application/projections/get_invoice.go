package projections

import (
	"context"
	"time"
)

// GetInvoiceQuery carries query parameters.
type GetInvoiceQuery struct {
	RegistrationID string
	FeePerStart    int // CHF per athlete
}

// GetInvoiceResult is the billing summary for one registration.
type GetInvoiceResult struct {
	RegistrationID string
	ClubName       string
	TrainerName    string
	AthleteCount   int
	TotalAmount    int // CHF
	DueDate        time.Time
}

// GetInvoiceDeps holds dependencies for GetInvoice.
type GetInvoiceDeps struct {
	RegistrationStore RegistrationStore
	AthleteStore      AthleteStore
	SeasonStore       SeasonStore
}

// QueryGetInvoice computes the invoice totals for a registration: athlete
// count times the per-start fee, payable by the season's payment deadline.
// PRE: RegistrationID refers to an existing row
// POST: DueDate is zero when the season reference dangles
func QueryGetInvoice(ctx context.Context, query GetInvoiceQuery, deps GetInvoiceDeps) (GetInvoiceResult, error) {
	reg, err := deps.RegistrationStore.GetByID(ctx, query.RegistrationID)
	if err != nil {
		return GetInvoiceResult{}, err
	}
	athletes, err := deps.AthleteStore.ListByRegistration(ctx, reg.ID)
	if err != nil {
		return GetInvoiceResult{}, err
	}

	result := GetInvoiceResult{
		RegistrationID: reg.ID,
		ClubName:       reg.Contact.Club,
		TrainerName:    reg.Contact.TrainerName,
		AthleteCount:   len(athletes),
		TotalAmount:    len(athletes) * query.FeePerStart,
	}

	if reg.SeasonID != "" {
		if seas, err := deps.SeasonStore.GetByID(ctx, reg.SeasonID); err == nil {
			result.DueDate = seas.PaymentDeadline
		}
	}

	return result, nil
}
