package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/broker"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/handler"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/ledger"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/testutil"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

// testApp is the full router wired to an in-memory database and miniredis
type testApp struct {
	db       *testutil.TestDatabase
	redis    *testutil.TestRedis
	ledger   *ledger.Ledger
	events   *broker.RedisEventBroker
	liveFeed *handler.LiveFeedHandler
	router   *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	testDB := testutil.SetupTestDatabase(t)
	testRedis := testutil.SetupTestRedis(t)

	purchaseLedger, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.jsonl"))
	require.NoError(t, err)

	events := broker.NewRedisEventBroker(testRedis.Client)

	userRepo := repository.NewUserRepository(testDB.DB)
	projectRepo := repository.NewProjectRepository(testDB.DB)
	purchaseRepo := repository.NewPurchaseRepository(testDB.DB)

	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour)
	contentService := service.NewContentService(testDB.DB, projectRepo, service.AboutDefaults{
		Name:  "Shubham Kumar",
		Title: "Full Stack MERN Developer",
	})
	contactService := service.NewContactService(repository.NewCollection[models.Contact](testDB.DB), events)
	coffeeService := service.NewCoffeeService(
		repository.NewSingleton[models.Coffee](testDB.DB),
		projectRepo, purchaseRepo, userRepo, purchaseLedger, events,
	)

	liveFeed := handler.NewLiveFeedHandler(events, []string{"http://localhost:3000"})

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:   testJWTSecret,
		CORSOrigins: []string{"http://localhost:3000"},
	}, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Public:   handler.NewPublicHandler(contentService, coffeeService),
		Contact:  handler.NewContactHandler(contactService),
		Admin:    handler.NewAdminHandler(authService, contentService, contactService, coffeeService),
		LiveFeed: liveFeed,
	})

	return &testApp{
		db:       testDB,
		redis:    testRedis,
		ledger:   purchaseLedger,
		events:   events,
		liveFeed: liveFeed,
		router:   router,
	}
}

func (a *testApp) close(t *testing.T) {
	_ = a.ledger.Close()
	a.redis.Teardown(t)
	a.db.Teardown(t)
}

// do sends a JSON request; token may be empty
func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, user *models.User) string {
	token, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[map[string]interface{}](t, w)["message"].(string)
}
