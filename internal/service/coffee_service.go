package service

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/apperr"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/broker"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/ledger"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrPurchaseNotFound = apperr.NotFound("Purchase not found")

// PurchaseLedger records purchase state changes; *ledger.Ledger implements it
type PurchaseLedger interface {
	Append(entry ledger.Entry) error
	ForPurchase(purchaseID string) ([]ledger.Entry, error)
}

// CoffeeInput takes the bounds as numbers because the admin form posts
// parseFloat values; fractional bounds are rejected.
type CoffeeInput struct {
	MinCoffee   *float64 `json:"minCoffee"`
	MaxCoffee   *float64 `json:"maxCoffee"`
	CoffeePrice *float64 `json:"coffeePrice"`
	Currency    *string  `json:"currency"`
}

type PurchaseInput struct {
	ProjectID       string `json:"projectId" binding:"required"`
	NumberOfCoffees int    `json:"numberOfCoffees" binding:"required"`
	PaymentProof    string `json:"paymentProof"`
	PaymentType     string `json:"paymentType"`
	UTR             string `json:"utr"`
}

// CoffeeService owns the coffee pricing singleton and the purchase workflow:
// pending -> approved | rejected, both terminal.
type CoffeeService struct {
	pricing   *repository.Singleton[models.Coffee]
	projects  *repository.ProjectRepository
	purchases *repository.PurchaseRepository
	users     *repository.UserRepository
	ledger    PurchaseLedger
	events    broker.EventBroker
}

func NewCoffeeService(
	pricing *repository.Singleton[models.Coffee],
	projects *repository.ProjectRepository,
	purchases *repository.PurchaseRepository,
	users *repository.UserRepository,
	purchaseLedger PurchaseLedger,
	events broker.EventBroker,
) *CoffeeService {
	return &CoffeeService{
		pricing:   pricing,
		projects:  projects,
		purchases: purchases,
		users:     users,
		ledger:    purchaseLedger,
		events:    events,
	}
}

// GetPricing returns the pricing document, creating the defaults if absent
func (s *CoffeeService) GetPricing(ctx context.Context) (*models.Coffee, error) {
	coffee, err := s.pricing.Get(ctx)
	if err != nil || coffee != nil {
		return coffee, err
	}

	defaults := models.DefaultCoffee()
	if err := s.pricing.Save(ctx, &defaults); err != nil {
		logger.Log.Error("Failed to create default coffee pricing", zap.Error(err))
		return nil, err
	}
	return &defaults, nil
}

func (s *CoffeeService) UpdatePricing(ctx context.Context, in CoffeeInput) (*models.Coffee, error) {
	coffee, err := s.GetPricing(ctx)
	if err != nil {
		return nil, err
	}

	if in.MinCoffee != nil {
		n, err := wholeNumber("minCoffee", *in.MinCoffee)
		if err != nil {
			return nil, err
		}
		coffee.MinCoffee = n
	}
	if in.MaxCoffee != nil {
		n, err := wholeNumber("maxCoffee", *in.MaxCoffee)
		if err != nil {
			return nil, err
		}
		coffee.MaxCoffee = n
	}
	if in.CoffeePrice != nil {
		coffee.CoffeePrice = *in.CoffeePrice
	}
	if in.Currency != nil {
		if c := strings.ToUpper(strings.TrimSpace(*in.Currency)); c != "" {
			coffee.Currency = c
		}
	}

	switch {
	case coffee.MinCoffee < 0:
		return nil, apperr.BadRequest("minCoffee must be at least 0")
	case coffee.MaxCoffee < 1:
		return nil, apperr.BadRequest("maxCoffee must be at least 1")
	case coffee.MinCoffee > coffee.MaxCoffee:
		return nil, apperr.BadRequest("minCoffee cannot be greater than maxCoffee")
	case coffee.CoffeePrice < 0:
		return nil, apperr.BadRequest("coffeePrice must be at least 0")
	}

	if err := s.pricing.Save(ctx, coffee); err != nil {
		logger.Log.Error("Error updating coffee", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Coffee pricing updated",
		zap.Int("min", coffee.MinCoffee),
		zap.Int("max", coffee.MaxCoffee),
		zap.Float64("price", coffee.CoffeePrice),
		zap.String("currency", coffee.Currency),
	)
	return coffee, nil
}

func wholeNumber(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, apperr.BadRequest("%s must be a whole number", field)
	}
	return int(v), nil
}

// CreatePurchase records a pending purchase. The total is computed from the
// price in force right now and never recomputed.
func (s *CoffeeService) CreatePurchase(ctx context.Context, userID uuid.UUID, in PurchaseInput) (*models.CoffeePurchase, error) {
	projectID, err := uuid.Parse(in.ProjectID)
	if err != nil {
		return nil, apperr.ErrInvalidID
	}

	paymentType := models.PaymentType(strings.ToLower(strings.TrimSpace(in.PaymentType)))
	if paymentType == "" {
		paymentType = models.PaymentUPI
	}
	if !paymentType.Valid() {
		return nil, apperr.BadRequest("paymentType must be one of: upi, bank")
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	pricing, err := s.GetPricing(ctx)
	if err != nil {
		return nil, err
	}

	n := in.NumberOfCoffees
	if n < 1 || n < pricing.MinCoffee || n > pricing.MaxCoffee {
		return nil, apperr.BadRequest("numberOfCoffees must be between %d and %d",
			max(pricing.MinCoffee, 1), pricing.MaxCoffee)
	}

	purchase := &models.CoffeePurchase{
		UserID:          userID,
		ProjectID:       project.ID,
		ProjectTitle:    project.Title,
		NumberOfCoffees: n,
		TotalAmount:     float64(n) * pricing.CoffeePrice,
		Status:          models.StatusPending,
		PaymentProof:    in.PaymentProof,
		PaymentType:     paymentType,
		UTR:             strings.TrimSpace(in.UTR),
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		logger.Log.Error("Error creating coffee purchase",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Coffee purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("project_id", project.ID.String()),
		zap.Int("coffees", n),
		zap.Float64("total", purchase.TotalAmount),
	)

	s.record(ledger.Entry{
		PurchaseID:  purchase.ID.String(),
		Action:      ledger.ActionCreated,
		ActorID:     userID.String(),
		TotalAmount: purchase.TotalAmount,
	})
	publish(ctx, s.events, broker.EventPurchaseCreated, purchase.ID.String(), summarize(purchase))

	return purchase, nil
}

// ListPurchases returns every purchase with its buyer, newest first.
// Purchases whose buyer was deleted are returned with a nil Buyer.
func (s *CoffeeService) ListPurchases(ctx context.Context) ([]models.PurchaseView, error) {
	purchases, err := s.purchases.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(purchases))
	seen := make(map[uuid.UUID]bool, len(purchases))
	for _, p := range purchases {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		view := models.PurchaseView{CoffeePurchase: p}
		if u, ok := users[p.UserID]; ok {
			view.Buyer = &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CoffeeService) ListUserPurchases(ctx context.Context, userID uuid.UUID) ([]models.CoffeePurchase, error) {
	return s.purchases.ListByUser(ctx, userID)
}

// Approve marks a pending purchase approved and stores the access link
func (s *CoffeeService) Approve(ctx context.Context, adminID, purchaseID uuid.UUID, projectLink string) (*models.CoffeePurchase, error) {
	projectLink = strings.TrimSpace(projectLink)
	return s.decide(ctx, adminID, purchaseID, models.StatusApproved, projectLink, map[string]interface{}{
		"project_link": projectLink,
	})
}

// Reject marks a pending purchase rejected with a free-text reason
func (s *CoffeeService) Reject(ctx context.Context, adminID, purchaseID uuid.UUID, reason string) (*models.CoffeePurchase, error) {
	reason = strings.TrimSpace(reason)
	return s.decide(ctx, adminID, purchaseID, models.StatusRejected, reason, map[string]interface{}{
		"rejection_reason": reason,
	})
}

func (s *CoffeeService) decide(
	ctx context.Context,
	adminID, purchaseID uuid.UUID,
	status models.PurchaseStatus,
	detail string,
	fields map[string]interface{},
) (*models.CoffeePurchase, error) {
	updated, err := s.purchases.Decide(ctx, purchaseID, status, fields)
	if err != nil {
		logger.Log.Error("Failed to update purchase status",
			zap.String("purchase_id", purchaseID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, err
	}

	purchase, err := s.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	if !updated {
		if !purchase.IsDecided() {
			// still pending but the conditional update matched nothing
			return nil, apperr.New(http.StatusConflict, "Purchase could not be updated, try again")
		}
		logger.Log.Warn("Purchase already decided",
			zap.String("purchase_id", purchaseID.String()),
			zap.String("status", string(purchase.Status)),
		)
		return nil, apperr.BadRequest("Purchase already %s", purchase.Status)
	}

	logger.Log.Info("Purchase decided",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("status", string(status)),
		zap.String("admin_id", adminID.String()),
	)

	action := ledger.ActionApproved
	eventType := broker.EventPurchaseApproved
	if status == models.StatusRejected {
		action = ledger.ActionRejected
		eventType = broker.EventPurchaseRejected
	}
	s.record(ledger.Entry{
		PurchaseID:  purchaseID.String(),
		Action:      action,
		ActorID:     adminID.String(),
		TotalAmount: purchase.TotalAmount,
		Detail:      detail,
	})
	publish(ctx, s.events, eventType, purchaseID.String(), summarize(purchase))

	return purchase, nil
}

// PurchaseSummary is the event payload for purchase changes. Payment proofs
// stay out of pub/sub and the admin feed.
type PurchaseSummary struct {
	ID              string                `json:"_id"`
	ProjectTitle    string                `json:"projectTitle"`
	NumberOfCoffees int                   `json:"numberOfCoffees"`
	TotalAmount     float64               `json:"totalAmount"`
	Status          models.PurchaseStatus `json:"status"`
}

func summarize(p *models.CoffeePurchase) PurchaseSummary {
	return PurchaseSummary{
		ID:              p.ID.String(),
		ProjectTitle:    p.ProjectTitle,
		NumberOfCoffees: p.NumberOfCoffees,
		TotalAmount:     p.TotalAmount,
		Status:          p.Status,
	}
}

// History returns the ledger entries of one purchase
func (s *CoffeeService) History(ctx context.Context, purchaseID uuid.UUID) ([]ledger.Entry, error) {
	purchase, err := s.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	if s.ledger == nil {
		return []ledger.Entry{}, nil
	}
	return s.ledger.ForPurchase(purchaseID.String())
}

// record appends to the ledger after the database write has committed.
// The database stays the source of truth, so a ledger failure is logged only.
func (s *CoffeeService) record(entry ledger.Entry) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Append(entry); err != nil {
		logger.Log.Error("Failed to append purchase ledger entry",
			zap.String("purchase_id", entry.PurchaseID),
			zap.String("action", string(entry.Action)),
			zap.Error(err),
		)
	}
}
