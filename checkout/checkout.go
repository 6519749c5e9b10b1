package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"golang.org/x/crypto/bcrypt"

	"tourbook/entity"
)

const defaultWriteDelay = 100 * time.Millisecond

type BookingsRepository interface {
	Store(ctx context.Context, booking entity.Booking, tourTitle string) error
	ReferenceExists(ctx context.Context, tenantID, reference string) (bool, error)
	FindByTransactionID(ctx context.Context, tenantID, transactionID string) ([]entity.Booking, error)
	ClaimTransaction(ctx context.Context, tenantID, transactionID string) (bool, error)
	ReleaseTransaction(ctx context.Context, tenantID, transactionID string) error
}

type ToursRepository interface {
	Get(ctx context.Context, tenantID, tourID string) (entity.Tour, error)
}

type TenantsRepository interface {
	Get(ctx context.Context, tenantID string) (entity.Tenant, error)
}

type UsersRepository interface {
	FindByID(ctx context.Context, tenantID, userID string) (entity.User, error)
	FindByEmail(ctx context.Context, tenantID, email string) (entity.User, error)
	Create(ctx context.Context, user entity.User) error
}

type DiscountsRepository interface {
	IncrementUsage(ctx context.Context, tenantID, code string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type BookingOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartItem struct {
	TourID             string                    `json:"tour_id"`
	TourTitle          string                    `json:"tour_title"`
	Date               string                    `json:"date"`
	Time               string                    `json:"time"`
	Adults             int                       `json:"adults"`
	Children           int                       `json:"children"`
	Infants            int                       `json:"infants"`
	SpecialRequests    string                    `json:"special_requests"`
	BookingOption      string                    `json:"booking_option"`
	BookingOptionPrice float64                   `json:"booking_option_price"`
	AddOns             map[string]AddOnSelection `json:"add_ons"`
}

type Request struct {
	TenantID        string                `json:"tenant_id"`
	Customer        Customer              `json:"customer"`
	UserID          string                `json:"user_id"`
	Guest           bool                  `json:"guest"`
	Items           []CartItem            `json:"cart"`
	Pricing         entity.PricingSummary `json:"pricing"`
	PaymentMethod   entity.PaymentMethod  `json:"payment_method"`
	PaymentIntentID string                `json:"payment_intent_id"`
	DiscountCode    string                `json:"discount_code"`
}

func (r Request) Validate() error {
	if r.TenantID == "" {
		return fmt.Errorf("%w: tenant_id is required", entity.ErrValidation)
	}
	if r.Customer.Email == "" {
		return fmt.Errorf("%w: customer email is required", entity.ErrValidation)
	}
	if r.Customer.Name == "" {
		return fmt.Errorf("%w: customer name is required", entity.ErrValidation)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", entity.ErrValidation)
	}
	if !r.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", entity.ErrValidation, r.PaymentMethod)
	}
	for i, item := range r.Items {
		if item.TourID == "" {
			return fmt.Errorf("%w: cart item %d has no tour", entity.ErrValidation, i)
		}
		if item.Adults < 0 || item.Children < 0 || item.Infants < 0 {
			return fmt.Errorf("%w: cart item %d has negative guest counts", entity.ErrValidation, i)
		}
		if item.Adults+item.Children == 0 {
			return fmt.Errorf("%w: cart item %d has no paying guests", entity.ErrValidation, i)
		}
	}
	return nil
}

type Result struct {
	Reference      string
	BookingIDs     []string
	TransactionID  string
	CustomerName   string
	CustomerEmail  string
	Duplicate      bool
	AccountCreated bool
}

// Workflow runs one checkout pass: resolve payment, guard against duplicate
// submissions, write one booking per cart line item, then hand notification
// work to the message router. Line items are written sequentially; a failure
// aborts the remaining items but already-written bookings stay (partial
// success is the documented semantics, there is no compensating delete).
type Workflow struct {
	bookings  BookingsRepository
	tours     ToursRepository
	tenants   TenantsRepository
	users     UsersRepository
	discounts DiscountsRepository
	resolver  PaymentResolver
	refs      *ReferenceGenerator
	events    eventPublisher

	writeDelay time.Duration
}

func NewWorkflow(
	bookings BookingsRepository,
	tours ToursRepository,
	tenants TenantsRepository,
	users UsersRepository,
	discounts DiscountsRepository,
	gateway PaymentGateway,
	events eventPublisher,
) *Workflow {
	if bookings == nil {
		panic("missing bookings repository")
	}
	if tours == nil {
		panic("missing tours repository")
	}
	if tenants == nil {
		panic("missing tenants repository")
	}
	if users == nil {
		panic("missing users repository")
	}
	if discounts == nil {
		panic("missing discounts repository")
	}
	if events == nil {
		panic("missing event publisher")
	}

	return &Workflow{
		bookings:   bookings,
		tours:      tours,
		tenants:    tenants,
		users:      users,
		discounts:  discounts,
		resolver:   NewPaymentResolver(gateway),
		refs:       NewReferenceGenerator(bookings),
		events:     events,
		writeDelay: defaultWriteDelay,
	}
}

func (w *Workflow) Process(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	tenant, err := w.tenants.Get(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: unknown tenant %q", entity.ErrValidation, req.TenantID)
		}
		return Result{}, fmt.Errorf("could not load tenant: %w", err)
	}

	user, accountCreated, err := w.ensureUser(ctx, req)
	if err != nil {
		return Result{}, err
	}

	pricing, quotes, err := w.recomputePricing(ctx, req, tenant)
	if err != nil {
		return Result{}, err
	}

	payment, err := w.resolver.Resolve(ctx, req, pricing.Total, pricing.Currency)
	if err != nil {
		return Result{}, err
	}

	if req.PaymentMethod == entity.PaymentMethodCard {
		claimed, err := w.bookings.ClaimTransaction(ctx, tenant.TenantID, payment.TransactionID)
		if err != nil {
			return Result{}, fmt.Errorf("could not claim transaction: %w", err)
		}
		if !claimed {
			return w.duplicateResult(ctx, req, tenant, payment)
		}
	}

	result, err := w.writeBookings(ctx, req, tenant, user, payment, quotes)
	if err != nil {
		if req.PaymentMethod == entity.PaymentMethodCard {
			w.releaseClaimIfEmpty(ctx, tenant.TenantID, payment.TransactionID)
		}
		return Result{}, err
	}
	result.AccountCreated = accountCreated

	if req.DiscountCode != "" {
		// Best effort: a failed counter update never fails the checkout.
		if err := w.discounts.IncrementUsage(ctx, tenant.TenantID, req.DiscountCode); err != nil {
			log.FromContext(ctx).
				WithField("discount_code", req.DiscountCode).
				WithError(err).
				Error("Failed to increment discount usage")
		}
	}

	w.publishCheckoutCompleted(ctx, req, tenant, payment, pricing, quotes, result)

	return result, nil
}

// ensureUser resolves the booking owner: by id for authenticated checkouts,
// otherwise by email, creating a throwaway guest account on first checkout.
// The guest flag wins over a submitted user id, clients logged out mid-session
// may still send a stale one. A concurrent duplicate creation surfaces as a
// conflict and is resolved by re-fetching.
func (w *Workflow) ensureUser(ctx context.Context, req Request) (entity.User, bool, error) {
	if req.UserID != "" && !req.Guest {
		user, err := w.users.FindByID(ctx, req.TenantID, req.UserID)
		if err != nil {
			return entity.User{}, false, fmt.Errorf("could not find user %s: %w", req.UserID, err)
		}
		return user, false, nil
	}

	user, err := w.users.FindByEmail(ctx, req.TenantID, req.Customer.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return entity.User{}, false, fmt.Errorf("could not look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(shortuuid.New()+shortuuid.New()), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, false, fmt.Errorf("could not hash throwaway password: %w", err)
	}

	user = entity.User{
		UserID:       uuid.NewString(),
		TenantID:     req.TenantID,
		Name:         req.Customer.Name,
		Email:        req.Customer.Email,
		PasswordHash: string(hash),
		Guest:        true,
		CreatedAt:    time.Now().UTC(),
	}

	err = w.users.Create(ctx, user)
	if err == nil {
		return user, true, nil
	}
	if errors.Is(err, entity.ErrConflict) {
		// Lost the race against a concurrent checkout for the same email.
		existing, ferr := w.users.FindByEmail(ctx, req.TenantID, req.Customer.Email)
		if ferr != nil {
			return entity.User{}, false, fmt.Errorf("could not re-fetch user after conflict: %w", ferr)
		}
		return existing, false, nil
	}

	return entity.User{}, false, fmt.Errorf("could not create user: %w", err)
}

// recomputePricing reprices every line item from the stored tour catalog.
// The client-submitted pricing summary is treated as a preview only.
func (w *Workflow) recomputePricing(ctx context.Context, req Request, tenant entity.Tenant) (entity.PricingSummary, []Quote, error) {
	currency := req.Pricing.Currency
	if currency == "" {
		currency = "USD"
	}

	pricing := entity.PricingSummary{Currency: currency}
	quotes := make([]Quote, 0, len(req.Items))

	for _, item := range req.Items {
		tour, err := w.tours.Get(ctx, tenant.TenantID, item.TourID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return entity.PricingSummary{}, nil, entity.TourNotFoundError{TourID: item.TourID}
			}
			return entity.PricingSummary{}, nil, fmt.Errorf("could not load tour %s: %w", item.TourID, err)
		}

		quote := PriceItem(tour.BasePrice, item)
		quotes = append(quotes, quote)

		pricing.Subtotal += quote.Subtotal
		pricing.ServiceFee += quote.ServiceFee
		pricing.Tax += quote.Tax
		pricing.Total += quote.Total
	}

	return pricing, quotes, nil
}

func (w *Workflow) writeBookings(
	ctx context.Context,
	req Request,
	tenant entity.Tenant,
	user entity.User,
	payment entity.PaymentResult,
	quotes []Quote,
) (Result, error) {
	status := entity.BookingStatusConfirmed
	if req.PaymentMethod.IsDeferred() {
		status = entity.BookingStatusPending
	}

	result := Result{
		TransactionID: payment.TransactionID,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
	}

	for i, item := range req.Items {
		tour, err := w.tours.Get(ctx, tenant.TenantID, item.TourID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return Result{}, entity.TourNotFoundError{TourID: item.TourID}
			}
			return Result{}, fmt.Errorf("could not load tour %s: %w", item.TourID, err)
		}

		reference, err := w.refs.Generate(ctx, tenant.TenantID, tenant.Name)
		if err != nil {
			return Result{}, fmt.Errorf("could not generate reference for %q: %w", tour.Title, err)
		}

		activityDate, rawDate := resolveActivityDate(item.Date)

		booking := entity.Booking{
			BookingID:          uuid.NewString(),
			TenantID:           tenant.TenantID,
			Reference:          reference,
			TourID:             tour.TourID,
			UserID:             user.UserID,
			ActivityDate:       activityDate,
			ActivityDateRaw:    rawDate,
			ActivityTime:       item.Time,
			Adults:             item.Adults,
			Children:           item.Children,
			Infants:            item.Infants,
			Total:              quotes[i].Total,
			Status:             status,
			PaymentMethod:      req.PaymentMethod,
			TransactionID:      payment.TransactionID,
			SpecialRequests:    item.SpecialRequests,
			BookingOption:      item.BookingOption,
			BookingOptionPrice: item.BookingOptionPrice,
			AddOns:             snapshotAddOns(item.AddOns),
			CreatedAt:          time.Now().UTC(),
		}

		if err := w.bookings.Store(ctx, booking, tour.Title); err != nil {
			return Result{}, fmt.Errorf("could not store booking for %q: %w", tour.Title, err)
		}

		if result.Reference == "" {
			result.Reference = reference
		}
		result.BookingIDs = append(result.BookingIDs, booking.BookingID)

		// Throttle between consecutive writes, not a correctness requirement.
		if i < len(req.Items)-1 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(w.writeDelay):
			}
		}
	}

	return result, nil
}

// releaseClaimIfEmpty drops the idempotency claim after a failed write pass,
// but only when no booking landed. With a partial write the claim stays, so a
// retry of the same transaction returns the existing bookings instead of
// duplicating them.
func (w *Workflow) releaseClaimIfEmpty(ctx context.Context, tenantID, transactionID string) {
	existing, err := w.bookings.FindByTransactionID(ctx, tenantID, transactionID)
	if err != nil {
		log.FromContext(ctx).
			WithField("transaction_id", transactionID).
			WithError(err).
			Error("Failed to check for bookings before releasing transaction claim")
		return
	}
	if len(existing) > 0 {
		return
	}

	if err := w.bookings.ReleaseTransaction(ctx, tenantID, transactionID); err != nil {
		log.FromContext(ctx).
			WithField("transaction_id", transactionID).
			WithError(err).
			Error("Failed to release transaction claim")
	}
}

func (w *Workflow) duplicateResult(ctx context.Context, req Request, tenant entity.Tenant, payment entity.PaymentResult) (Result, error) {
	existing, err := w.bookings.FindByTransactionID(ctx, tenant.TenantID, payment.TransactionID)
	if err != nil {
		return Result{}, fmt.Errorf("could not load existing bookings for transaction %s: %w", payment.TransactionID, err)
	}
	if len(existing) == 0 {
		// Claimed by a concurrent request whose writes have not landed yet.
		return Result{}, fmt.Errorf("%w: checkout for transaction %s is already in progress", entity.ErrConflict, payment.TransactionID)
	}

	result := Result{
		Reference:     existing[0].Reference,
		TransactionID: payment.TransactionID,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		Duplicate:     true,
	}
	for _, booking := range existing {
		result.BookingIDs = append(result.BookingIDs, booking.BookingID)
	}

	return result, nil
}

// publishCheckoutCompleted hands the notification work to the message router.
// A failed publish is logged and swallowed: the bookings are already stored
// and notification delivery must never decide the checkout outcome.
func (w *Workflow) publishCheckoutCompleted(
	ctx context.Context,
	req Request,
	tenant entity.Tenant,
	payment entity.PaymentResult,
	pricing entity.PricingSummary,
	quotes []Quote,
	result Result,
) {
	items := make([]entity.CheckoutItemSummary, 0, len(req.Items))
	for i, item := range req.Items {
		items = append(items, entity.CheckoutItemSummary{
			TourID:    item.TourID,
			TourTitle: item.TourTitle,
			Date:      item.Date,
			Time:      item.Time,
			Adults:    item.Adults,
			Children:  item.Children,
			Infants:   item.Infants,
			Total:     quotes[i].Total,
		})
	}

	event := entity.CheckoutCompleted{
		Header:        entity.NewEventHeaderWithIdempotencyKey(payment.TransactionID),
		TenantID:      tenant.TenantID,
		Reference:     result.Reference,
		BookingIDs:    result.BookingIDs,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		PaymentMethod: req.PaymentMethod,
		TransactionID: payment.TransactionID,
		DiscountCode:  req.DiscountCode,
		Pricing:       pricing,
		Items:         items,
	}

	if err := w.events.Publish(ctx, event); err != nil {
		log.FromContext(ctx).
			WithField("reference", result.Reference).
			WithError(err).
			Error("Failed to publish CheckoutCompleted")
	}
}

// resolveActivityDate keeps the raw client string verbatim and falls back to
// "now" when it cannot be parsed.
func resolveActivityDate(raw string) (time.Time, string) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, raw
		}
	}
	return time.Now().UTC(), raw
}

func snapshotAddOns(selected map[string]AddOnSelection) entity.AddOnSnapshots {
	if len(selected) == 0 {
		return nil
	}
	snapshots := make(entity.AddOnSnapshots, len(selected))
	for key, addOn := range selected {
		snapshots[key] = entity.AddOnSnapshot{
			Label:    addOn.Label,
			Price:    addOn.Price,
			PerGuest: addOn.PerGuest,
		}
	}
	return snapshots
}
