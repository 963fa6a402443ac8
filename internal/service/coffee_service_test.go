package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/apperr"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/broker"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/ledger"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// recordingBroker keeps published events in memory
type recordingBroker struct {
	mu     sync.Mutex
	events []broker.Event
	err    error
}

func (b *recordingBroker) Publish(_ context.Context, event broker.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBroker) Subscribe(context.Context) (<-chan broker.Event, error) {
	return nil, errors.New("not supported")
}

func (b *recordingBroker) Close() error { return nil }

func (b *recordingBroker) types() []broker.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]broker.EventType, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type CoffeeServiceTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDatabase
	ledger  *ledger.Ledger
	events  *recordingBroker
	service *service.CoffeeService
	content *service.ContentService
	user    *models.User
	adminID uuid.UUID
	project *models.Project
	ctx     context.Context
}

func (s *CoffeeServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.testDB = testutil.SetupTestDatabase(s.T())

	var err error
	s.ledger, err = ledger.Open(filepath.Join(s.T().TempDir(), "ledger.jsonl"))
	s.Require().NoError(err)

	s.events = &recordingBroker{}
	db := s.testDB.DB
	projects := repository.NewProjectRepository(db)
	s.service = service.NewCoffeeService(
		repository.NewSingleton[models.Coffee](db),
		projects,
		repository.NewPurchaseRepository(db),
		repository.NewUserRepository(db),
		s.ledger,
		s.events,
	)
	s.content = service.NewContentService(db, projects, service.AboutDefaults{Name: "Owner", Title: "Developer"})

	s.user = testutil.DefaultTestUser(s.T(), db)
	s.adminID = testutil.DefaultAdminUser(s.T(), db).ID
	s.project = testutil.CreateTestProject(s.T(), db, "Chat App", false)
}

func (s *CoffeeServiceTestSuite) TearDownTest() {
	_ = s.ledger.Close()
	s.testDB.Teardown(s.T())
}

func (s *CoffeeServiceTestSuite) purchase(n int) *models.CoffeePurchase {
	p, err := s.service.CreatePurchase(s.ctx, s.user.ID, service.PurchaseInput{
		ProjectID:       s.project.ID.String(),
		NumberOfCoffees: n,
	})
	s.Require().NoError(err)
	return p
}

func (s *CoffeeServiceTestSuite) TestPricingDefaults() {
	pricing, err := s.service.GetPricing(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, pricing.MinCoffee)
	s.Equal(10, pricing.MaxCoffee)
	s.Equal(50.0, pricing.CoffeePrice)
	s.Equal("INR", pricing.Currency)

	again, err := s.service.GetPricing(s.ctx)
	s.Require().NoError(err)
	s.Equal(pricing.ID, again.ID)
}

func (s *CoffeeServiceTestSuite) TestUpdatePricing() {
	pricing, err := s.service.UpdatePricing(s.ctx, service.CoffeeInput{
		CoffeePrice: floatPtr(75),
		Currency:    strPtr(" usd "),
	})
	s.Require().NoError(err)
	s.Equal(75.0, pricing.CoffeePrice)
	s.Equal("USD", pricing.Currency)
	s.Equal(1, pricing.MinCoffee)

	_, err = s.service.UpdatePricing(s.ctx, service.CoffeeInput{MinCoffee: floatPtr(8), MaxCoffee: floatPtr(3)})
	s.Equal(400, apperr.Status(err))

	_, err = s.service.UpdatePricing(s.ctx, service.CoffeeInput{CoffeePrice: floatPtr(-1)})
	s.Equal(400, apperr.Status(err))

	// rejected updates leave the stored document alone
	current, err := s.service.GetPricing(s.ctx)
	s.Require().NoError(err)
	s.Equal(75.0, current.CoffeePrice)
	s.Equal(10, current.MaxCoffee)
}

func (s *CoffeeServiceTestSuite) TestPricingBoundsMustBeWhole() {
	_, err := s.service.UpdatePricing(s.ctx, service.CoffeeInput{MinCoffee: floatPtr(1.5)})
	s.Equal(400, apperr.Status(err))
	s.EqualError(err, "minCoffee must be a whole number")

	_, err = s.service.UpdatePricing(s.ctx, service.CoffeeInput{MaxCoffee: floatPtr(9.99)})
	s.EqualError(err, "maxCoffee must be a whole number")

	pricing, err := s.service.UpdatePricing(s.ctx, service.CoffeeInput{MinCoffee: floatPtr(2.0), MaxCoffee: floatPtr(12)})
	s.Require().NoError(err)
	s.Equal(2, pricing.MinCoffee)
	s.Equal(12, pricing.MaxCoffee)
}

func (s *CoffeeServiceTestSuite) TestTotalFixedAtCreation() {
	p := s.purchase(4)
	s.Equal(200.0, p.TotalAmount)
	s.Equal(models.StatusPending, p.Status)
	s.Equal(models.PaymentUPI, p.PaymentType)

	_, err := s.service.UpdatePricing(s.ctx, service.CoffeeInput{CoffeePrice: floatPtr(10)})
	s.Require().NoError(err)

	mine, err := s.service.ListUserPurchases(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(200.0, mine[0].TotalAmount)
}

func (s *CoffeeServiceTestSuite) TestCoffeeCountBounds() {
	_, err := s.service.UpdatePricing(s.ctx, service.CoffeeInput{MinCoffee: floatPtr(2), MaxCoffee: floatPtr(5)})
	s.Require().NoError(err)

	for _, n := range []int{0, 1, 6} {
		_, err := s.service.CreatePurchase(s.ctx, s.user.ID, service.PurchaseInput{
			ProjectID:       s.project.ID.String(),
			NumberOfCoffees: n,
		})
		s.Equal(400, apperr.Status(err), "n=%d", n)
	}

	s.Equal(5, s.purchase(5).NumberOfCoffees)
}

func (s *CoffeeServiceTestSuite) TestPaymentType() {
	p, err := s.service.CreatePurchase(s.ctx, s.user.ID, service.PurchaseInput{
		ProjectID:       s.project.ID.String(),
		NumberOfCoffees: 1,
		PaymentType:     "BANK",
		UTR:             "  1234  ",
	})
	s.Require().NoError(err)
	s.Equal(models.PaymentBank, p.PaymentType)
	s.Equal("1234", p.UTR)

	_, err = s.service.CreatePurchase(s.ctx, s.user.ID, service.PurchaseInput{
		ProjectID:       s.project.ID.String(),
		NumberOfCoffees: 1,
		PaymentType:     "crypto",
	})
	s.Equal(400, apperr.Status(err))
}

func (s *CoffeeServiceTestSuite) TestDecisionsAreTerminal() {
	p := s.purchase(1)

	approved, err := s.service.Approve(s.ctx, s.adminID, p.ID, " https://example.com/repo ")
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, approved.Status)
	s.Equal("https://example.com/repo", approved.ProjectLink)

	_, err = s.service.Reject(s.ctx, s.adminID, p.ID, "changed my mind")
	s.Equal(400, apperr.Status(err))
	s.EqualError(err, "Purchase already approved")

	_, err = s.service.Approve(s.ctx, s.adminID, p.ID, "")
	s.Equal(400, apperr.Status(err))

	mine, err := s.service.ListUserPurchases(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, mine[0].Status)
	s.Empty(mine[0].RejectionReason)
}

func (s *CoffeeServiceTestSuite) TestDecideMissingPurchase() {
	_, err := s.service.Approve(s.ctx, s.adminID, uuid.New(), "")
	s.ErrorIs(err, service.ErrPurchaseNotFound)

	_, err = s.service.History(s.ctx, uuid.New())
	s.ErrorIs(err, service.ErrPurchaseNotFound)
}

func (s *CoffeeServiceTestSuite) TestHistoryAndEvents() {
	p := s.purchase(2)
	_, err := s.service.Reject(s.ctx, s.adminID, p.ID, "No payment found")
	s.Require().NoError(err)

	history, err := s.service.History(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(ledger.ActionCreated, history[0].Action)
	s.Equal(s.user.ID.String(), history[0].ActorID)
	s.Equal(100.0, history[0].TotalAmount)
	s.Equal(ledger.ActionRejected, history[1].Action)
	s.Equal(s.adminID.String(), history[1].ActorID)
	s.Equal("No payment found", history[1].Detail)

	s.Equal([]broker.EventType{broker.EventPurchaseCreated, broker.EventPurchaseRejected}, s.events.types())
}

func (s *CoffeeServiceTestSuite) TestEventsCarrySummaryOnly() {
	p, err := s.service.CreatePurchase(s.ctx, s.user.ID, service.PurchaseInput{
		ProjectID:       s.project.ID.String(),
		NumberOfCoffees: 2,
		PaymentProof:    "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg",
		UTR:             "UTR-998877",
	})
	s.Require().NoError(err)
	_, err = s.service.Approve(s.ctx, s.adminID, p.ID, "https://example.com/repo")
	s.Require().NoError(err)

	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	s.Require().Len(s.events.events, 2)

	for i, status := range []models.PurchaseStatus{models.StatusPending, models.StatusApproved} {
		var summary service.PurchaseSummary
		s.Require().NoError(json.Unmarshal(s.events.events[i].Data, &summary))
		s.Equal(p.ID.String(), summary.ID)
		s.Equal("Chat App", summary.ProjectTitle)
		s.Equal(2, summary.NumberOfCoffees)
		s.Equal(100.0, summary.TotalAmount)
		s.Equal(status, summary.Status)

		raw := string(s.events.events[i].Data)
		s.NotContains(raw, "paymentProof")
		s.NotContains(raw, "iVBORw0KGgo")
		s.NotContains(raw, "UTR-998877")
	}
}

func (s *CoffeeServiceTestSuite) TestBrokerFailureDoesNotFailRequest() {
	s.events.err = errors.New("redis down")

	p := s.purchase(1)
	s.NotEqual(uuid.Nil, p.ID)
}

func (s *CoffeeServiceTestSuite) TestProjectDeleteKeepsPurchases() {
	p := s.purchase(1)
	s.Require().NoError(s.content.DeleteProject(s.ctx, s.project.ID))

	mine, err := s.service.ListUserPurchases(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(p.ID, mine[0].ID)
	s.Equal("Chat App", mine[0].ProjectTitle)

	_, err = s.service.Approve(s.ctx, s.adminID, p.ID, "")
	s.NoError(err)
}

func (s *CoffeeServiceTestSuite) TestListPurchasesWithDeletedBuyer() {
	s.purchase(1)
	other := testutil.CreateTestUser(s.T(), s.testDB.DB, "Other", "other@example.com", "secret123", models.RoleUser)
	_, err := s.service.CreatePurchase(s.ctx, other.ID, service.PurchaseInput{
		ProjectID:       s.project.ID.String(),
		NumberOfCoffees: 1,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.testDB.DB.Delete(other).Error)

	views, err := s.service.ListPurchases(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 2)

	byUser := map[uuid.UUID]*models.UserSummary{}
	for _, v := range views {
		byUser[v.UserID] = v.Buyer
	}
	s.Nil(byUser[other.ID])
	s.Require().NotNil(byUser[s.user.ID])
	s.Equal("test@example.com", byUser[s.user.ID].Email)
}

func TestCoffeeServiceSuite(t *testing.T) {
	suite.Run(t, new(CoffeeServiceTestSuite))
}
