package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"adorder-be/internal/dto"
	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/serverutils"
	"adorder-be/internal/pkg/testdb"
	"adorder-be/internal/repository/memory"
	"adorder-be/internal/repository/unitofwork"
	"adorder-be/internal/service"
	"adorder-be/pkg/admin/dashboard"
	"adorder-be/pkg/admin/user"
	"adorder-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret         = "controller-secret"
	testCallbackSecret = "callback-secret"
)

type envelope struct {
	Success bool                     `json:"success"`
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Data    json.RawMessage          `json:"data"`
	Error   *serverutils.ErrorDetail `json:"error"`
}

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	db := testdb.New(t)
	log := logger.NewNopLogger()
	factory := unitofwork.NewRepositoryFactory(db)
	pub := events.NewNatsPublisher(nil, log)
	mail := service.NewPublisherService("mail.outbox", gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}))

	products := service.NewProductService(factory, memory.NewCatalogCache(0))
	orders := service.NewOrderService(factory, products, pub, log)
	ledger := service.NewLedgerService(factory)
	payments := service.NewPaymentService(factory, pub, mail, log, service.PaymentConfig{
		CallbackSecret: testCallbackSecret,
		MinAmount:      1000,
	})
	cancellations := service.NewCancellationService(factory, pub, mail, log, true)
	auth := serverutils.JwtMiddleware(testSecret)

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(log)})
	api := app.Group("/api")
	NewAuthController(service.NewAuthService(factory, dashboard.NewAggregator(log), log, testSecret, time.Hour), auth).RegisterRoutes(api)
	NewOrderController(orders, service.NewMessageService(factory, pub), auth).RegisterRoutes(api)
	NewCancellationController(cancellations, auth).RegisterRoutes(api)
	NewPaymentController(payments, auth).RegisterRoutes(api)
	NewProductController(products, auth).RegisterRoutes(api)
	NewWalletController(ledger, auth).RegisterRoutes(api)
	NewCustomerController(service.NewCustomerService(factory), auth).RegisterRoutes(api)
	NewAdminController(service.NewAdminService(factory, log, user.NewManager(log, pub), pub), orders, ledger, auth).RegisterRoutes(api)

	testdb.SeedPricingRule(t, db, entity.UserTierT1, "1")
	return &testServer{app: app, db: db}
}

func (s *testServer) token(t *testing.T, u *model.User) string {
	token, _, err := service.IssueToken(&entity.User{Id: u.Id, Tier: entity.UserTier(u.Tier)}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/orders", "/api/wallet", "/api/customers", "/api/payment", "/api/dashboard"} {
		status, env := s.do(t, "GET", path, "", nil)
		assert.Equal(t, 401, status, path)
		assert.False(t, env.Success)
	}
}

func TestLoginThenConfirmOrder(t *testing.T) {
	s := newTestServer(t)
	u := testdb.SeedUser(t, s.db, entity.UserTierT1, 10000)
	product := testdb.SeedProduct(t, s.db, "Place Traffic", 1000)

	status, env := s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": u.Email, "password": "password123"})
	require.Equal(t, 200, status)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	status, _ = s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": u.Email, "password": "nope"})
	assert.Equal(t, 401, status)

	cart := map[string]interface{}{
		"productId":   product.Id,
		"productName": product.Name,
		"unitPrice":   1000,
		"items":       []map[string]interface{}{{"clientName": "Cafe Moon", "dailyCount": 1, "weeks": 1}},
	}
	status, env = s.do(t, "POST", "/api/orders/confirm", login.AccessToken, cart)
	require.Equal(t, 200, status, env.Message)
	var confirmed struct {
		OrderId    uuid.UUID `json:"orderId"`
		NewBalance int64     `json:"newBalance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &confirmed))
	assert.Equal(t, int64(3000), confirmed.NewBalance)

	status, env = s.do(t, "POST", "/api/orders/confirm", login.AccessToken, cart)
	assert.Equal(t, 400, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "InsufficientBalance", env.Error.Kind)
	assert.EqualValues(t, 4000, env.Error.Details["shortage"])

	status, _ = s.do(t, "GET", "/api/orders/"+confirmed.OrderId.String(), login.AccessToken, nil)
	assert.Equal(t, 200, status)

	status, env = s.do(t, "GET", "/api/orders/not-a-uuid", login.AccessToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "InvalidArgument", env.Error.Kind)

	status, env = s.do(t, "GET", "/api/wallet?type=deduct", login.AccessToken, nil)
	require.Equal(t, 200, status)
	var wallet struct {
		Balance int64 `json:"balance"`
		Total   int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wallet))
	assert.Equal(t, int64(3000), wallet.Balance)
	assert.Equal(t, int64(1), wallet.Total)
}

func TestConfirmOrder_RejectsOversizedLine(t *testing.T) {
	s := newTestServer(t)
	u := testdb.SeedUser(t, s.db, entity.UserTierT1, 0)
	product := testdb.SeedProduct(t, s.db, "Place Traffic", 1000)

	cart := map[string]interface{}{
		"productId": product.Id,
		"unitPrice": 1000,
		"items":     []map[string]interface{}{{"clientName": "Cafe Moon", "dailyCount": int64(1) << 40, "weeks": 1 << 20}},
	}
	status, env := s.do(t, "POST", "/api/orders/confirm", s.token(t, u), cart)
	assert.Equal(t, 400, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "InvalidArgument", env.Error.Kind)

	var orders int64
	require.NoError(t, s.db.Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCustomerRoutes_OwnerScoped(t *testing.T) {
	s := newTestServer(t)
	owner := testdb.SeedUser(t, s.db, entity.UserTierT1, 0)
	other := testdb.SeedUser(t, s.db, entity.UserTierT2, 0)

	status, env := s.do(t, "POST", "/api/customers", s.token(t, owner), map[string]interface{}{"business_name": "Cafe Moon"})
	require.Equal(t, 201, status, env.Message)
	var created struct {
		Id uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, _ = s.do(t, "GET", "/api/customers/"+created.Id.String(), s.token(t, owner), nil)
	assert.Equal(t, 200, status)

	status, env = s.do(t, "GET", "/api/customers/"+created.Id.String(), s.token(t, other), nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "NotFound", env.Error.Kind)

	status, env = s.do(t, "POST", "/api/customers/"+created.Id.String()+"/keywords", s.token(t, owner),
		map[string]interface{}{"keywords": []string{"gangnam cafe", "Gangnam Cafe"}})
	require.Equal(t, 200, status, env.Message)
	var added struct {
		Added      []dto.KeywordResponse `json:"added"`
		Duplicates []string              `json:"duplicates"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &added))
	assert.Len(t, added.Added, 1)
	assert.Equal(t, []string{"Gangnam Cafe"}, added.Duplicates)
}

func TestAdminRoutes_RequireCapability(t *testing.T) {
	s := newTestServer(t)
	member := testdb.SeedUser(t, s.db, entity.UserTierT1, 0)
	admin := testdb.SeedUser(t, s.db, entity.UserTierAdmin, 0)

	paths := []string{"/api/admin/orders", "/api/admin/users", "/api/admin/cancellation-requests", "/api/admin/pricing-rules"}
	for _, path := range paths {
		status, env := s.do(t, "GET", path, s.token(t, member), nil)
		assert.Equal(t, 403, status, path)
		assert.Equal(t, "Forbidden", env.Error.Kind, path)

		status, _ = s.do(t, "GET", path, s.token(t, admin), nil)
		assert.Equal(t, 200, status, path)
	}

	status, env := s.do(t, "POST", "/api/admin/users/"+member.Id.String()+"/ledger-adjustments", s.token(t, admin),
		map[string]interface{}{"amount": 5000, "memo": "welcome credit"})
	require.Equal(t, 200, status, env.Message)

	status, env = s.do(t, "GET", "/api/admin/users/"+member.Id.String()+"/wallet", s.token(t, admin), nil)
	require.Equal(t, 200, status)
	var res struct {
		Wallet struct {
			Balance int64 `json:"balance"`
		} `json:"wallet"`
		Reconcile struct {
			Consistent bool `json:"consistent"`
		} `json:"reconcile"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(5000), res.Wallet.Balance)
	assert.True(t, res.Reconcile.Consistent)
}

func TestPaymentCallback_IsPublic(t *testing.T) {
	s := newTestServer(t)
	u := testdb.SeedUser(t, s.db, entity.UserTierT1, 0)

	status, env := s.do(t, "POST", "/api/payment", s.token(t, u), map[string]interface{}{"amount": 20000, "payment_method": "card"})
	require.Equal(t, 200, status, env.Message)
	var created struct {
		TransactionId uuid.UUID `json:"transaction_id"`
		Status        string    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending", created.Status)

	callback := map[string]interface{}{
		"transaction_id":    created.TransactionId,
		"pg_transaction_id": "PG-1",
		"status":            "completed",
		"amount":            20000,
		"signature":         "deadbeef",
	}
	status, env = s.do(t, "POST", "/api/payment/callback", "", callback)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Unauthenticated", env.Error.Kind)

	callback["signature"] = service.CallbackSignature(created.TransactionId, "completed", 20000, testCallbackSecret)
	status, env = s.do(t, "POST", "/api/payment/callback", "", callback)
	require.Equal(t, 200, status, env.Message)
	assert.Equal(t, int64(20000), testdb.Balance(t, s.db, u.Id))

	status, env = s.do(t, "POST", "/api/payment/callback", "", map[string]interface{}{"status": "completed"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "InvalidArgument", env.Error.Kind)
}
