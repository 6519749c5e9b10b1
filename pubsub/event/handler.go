package event

import (
	"context"

	"tourbook/entity"
)

type MailerService interface {
	SendBankInstructions(ctx context.Context, email entity.BankInstructionsEmail) error
	SendBookingConfirmation(ctx context.Context, email entity.BookingConfirmationEmail) error
	SendOpsAlert(ctx context.Context, email entity.OpsAlertEmail) error
}

type TenantsRepository interface {
	Get(ctx context.Context, tenantID string) (entity.Tenant, error)
}

type Handler struct {
	mailerService MailerService
	tenantsRepo   TenantsRepository
}

func NewHandler(
	mailerService MailerService,
	tenantsRepo TenantsRepository,
) Handler {
	if mailerService == nil {
		panic("missing mailerService")
	}
	if tenantsRepo == nil {
		panic("missing tenantsRepo")
	}

	return Handler{
		mailerService: mailerService,
		tenantsRepo:   tenantsRepo,
	}
}

// branding loads the tenant's presentation values, falling back to bare
// defaults when the tenant record is unavailable.
func (h Handler) branding(ctx context.Context, tenantID string) entity.Branding {
	tenant, err := h.tenantsRepo.Get(ctx, tenantID)
	if err != nil {
		return entity.ResolveBranding(entity.Tenant{TenantID: tenantID})
	}
	return entity.ResolveBranding(tenant)
}
