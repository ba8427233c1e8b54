package transport_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/muhammadheryan/telecom-distribution/constant"
	dashboardmocks "github.com/muhammadheryan/telecom-distribution/mocks/application/dashboard"
	notificationmocks "github.com/muhammadheryan/telecom-distribution/mocks/application/notification"
	productmocks "github.com/muhammadheryan/telecom-distribution/mocks/application/product"
	requestmocks "github.com/muhammadheryan/telecom-distribution/mocks/application/request"
	stockmocks "github.com/muhammadheryan/telecom-distribution/mocks/application/stock"
	usermocks "github.com/muhammadheryan/telecom-distribution/mocks/application/user"
	"github.com/muhammadheryan/telecom-distribution/model"
	"github.com/muhammadheryan/telecom-distribution/transport"
	cerr "github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	validToken = "valid-token"
	sessionID  = "session-1"
	apiKey     = "internal-key"
	origin     = "http://localhost:3000"
)

var (
	agentA    = model.Principal{ID: 2, Name: "Agent A", Role: constant.RoleAgent}
	retailerR = model.Principal{ID: 4, Name: "Retailer R", Role: constant.RoleRetailer}
)

type apps struct {
	user         *usermocks.UserApp
	product      *productmocks.ProductApp
	request      *requestmocks.RequestApp
	stock        *stockmocks.StockApp
	dashboard    *dashboardmocks.DashboardApp
	notification *notificationmocks.NotificationApp
}

func setup(t *testing.T) (apps, http.Handler) {
	t.Helper()
	a := apps{
		user:         usermocks.NewUserApp(t),
		product:      productmocks.NewProductApp(t),
		request:      requestmocks.NewRequestApp(t),
		stock:        stockmocks.NewStockApp(t),
		dashboard:    dashboardmocks.NewDashboardApp(t),
		notification: notificationmocks.NewNotificationApp(t),
	}
	h := transport.NewTransport(&transport.RestHandler{
		UserApp:         a.user,
		ProductApp:      a.product,
		RequestApp:      a.request,
		StockApp:        a.stock,
		DashboardApp:    a.dashboard,
		NotificationApp: a.notification,
	}, transport.Options{
		AllowedOrigins: []string{origin},
		InternalAPIKey: apiKey,
		Metrics:        metrics.New("test"),
	})
	return a, h
}

// authAs makes validToken resolve to p.
func (a apps) authAs(p model.Principal) {
	a.user.On("ValidateToken", mock.Anything, validToken).Return(p, sessionID, nil)
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + validToken}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var res model.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockCall   func(a apps)
		wantStatus int
		wantDetail string
	}{
		{
			name: "success",
			body: `{"email":"agent@example.com","password":"secret1"}`,
			mockCall: func(a apps) {
				a.user.On("Login", mock.Anything, &model.LoginRequest{Email: "agent@example.com", Password: "secret1"}).
					Return(&model.LoginResponse{AccessToken: "tok", TokenType: "bearer", User: model.UserResponse{ID: 2, Role: constant.RoleAgent}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"email":"agent@example.com"}`,
			mockCall:   func(a apps) {},
			wantStatus: http.StatusBadRequest,
			wantDetail: "password is required",
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			mockCall:   func(a apps) {},
			wantStatus: http.StatusBadRequest,
			wantDetail: "invalid request body",
		},
		{
			name: "wrong password",
			body: `{"email":"agent@example.com","password":"nope123"}`,
			mockCall: func(a apps) {
				a.user.On("Login", mock.Anything, mock.Anything).Return(nil, cerr.SetCustomError(constant.ErrInvalidPassword)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantDetail: constant.ErrorTypeMessage[constant.ErrInvalidPassword],
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			a, h := setup(t)
			tt.mockCall(a)

			rr := do(h, http.MethodPost, "/api/auth/login", tt.body, nil)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeError(t, rr).Detail)
				return
			}
			var res model.LoginResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
			assert.Equal(t, "tok", res.AccessToken)
		})
	}
}

func TestRegister_Validation(t *testing.T) {
	_, h := setup(t)

	rr := do(h, http.MethodPost, "/api/auth/register",
		`{"name":"R","email":"not-an-email","phone":"1","password":"secret1","role":"retailer"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	res := decodeError(t, rr)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrInvalidRequest], res.Code)
	assert.Equal(t, "email must be a valid email", res.Detail)
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, h := setup(t)
		rr := do(h, http.MethodGet, "/api/product-requests", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, constant.ErrorTypeCode[constant.ErrUnauthorize], decodeError(t, rr).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		a, h := setup(t)
		a.user.On("ValidateToken", mock.Anything, "stale").Return(model.Principal{}, "", errors.New("token expired")).Once()

		rr := do(h, http.MethodGet, "/api/dashboard", "", map[string]string{"Authorization": "Bearer stale"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("public labels need no token", func(t *testing.T) {
		_, h := setup(t)
		rr := do(h, http.MethodGet, "/api/labels", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestLogout(t *testing.T) {
	a, h := setup(t)
	a.authAs(agentA)
	a.user.On("Logout", mock.Anything, sessionID).Return(nil).Once()

	rr := do(h, http.MethodPost, "/api/auth/logout", "", bearer())
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestTransitions(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mockCall   func(a apps)
		wantStatus int
		wantCode   constant.ErrorType
	}{
		{
			name: "approve success",
			path: "/api/product-requests/10/approve",
			mockCall: func(a apps) {
				a.request.On("Approve", mock.Anything, agentA, uint64(10)).
					Return(&model.ProductRequest{ID: 10, Status: constant.RequestStatusApproved}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "approve by non-target",
			path: "/api/product-requests/10/approve",
			mockCall: func(a apps) {
				a.request.On("Approve", mock.Anything, agentA, uint64(10)).
					Return(nil, cerr.SetCustomErrorWithDetail(constant.ErrForbidden, "only the request's target can approve it")).Once()
			},
			wantStatus: http.StatusForbidden,
			wantCode:   constant.ErrForbidden,
		},
		{
			name: "fulfill without stock",
			path: "/api/product-requests/10/fulfill",
			mockCall: func(a apps) {
				a.request.On("Fulfill", mock.Anything, agentA, uint64(10)).
					Return(nil, cerr.SetCustomError(constant.ErrInsufficientStock)).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   constant.ErrInsufficientStock,
		},
		{
			name: "reject approved request",
			path: "/api/product-requests/10/reject",
			mockCall: func(a apps) {
				a.request.On("Reject", mock.Anything, agentA, uint64(10)).
					Return(nil, cerr.SetCustomError(constant.ErrInvalidState)).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   constant.ErrInvalidState,
		},
		{
			name:       "non-numeric id does not route",
			path:       "/api/product-requests/abc/approve",
			mockCall:   func(a apps) {},
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			a, h := setup(t)
			a.user.On("ValidateToken", mock.Anything, validToken).Return(agentA, sessionID, nil).Maybe()
			tt.mockCall(a)

			rr := do(h, http.MethodPut, tt.path, "", bearer())
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != 0 {
				assert.Equal(t, constant.ErrorTypeCode[tt.wantCode], decodeError(t, rr).Code)
			}
		})
	}
}

func TestCreateRequest(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		a, h := setup(t)
		a.authAs(retailerR)
		target := uint64(2)
		a.request.On("Create", mock.Anything, retailerR, &model.CreateRequestInput{
			ProductType: constant.ProductTypeSIM, Quantity: 5, Reason: "restock", TargetID: &target,
		}).Return(&model.ProductRequest{ID: 10, OrderID: "ORD-AAAA0001", Status: constant.RequestStatusPending}, nil).Once()

		rr := do(h, http.MethodPost, "/api/product-requests",
			`{"product_type":"SIM","quantity":5,"reason":"restock","target_id":2}`, bearer())
		assert.Equal(t, http.StatusCreated, rr.Code)

		var res model.ProductRequest
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, constant.RequestStatusPending, res.Status)
	})

	t.Run("zero quantity", func(t *testing.T) {
		a, h := setup(t)
		a.authAs(retailerR)

		rr := do(h, http.MethodPost, "/api/product-requests",
			`{"product_type":"SIM","quantity":0,"reason":"restock","target_id":2}`, bearer())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "quantity must be greater than 0", decodeError(t, rr).Detail)
	})

	t.Run("unknown product type", func(t *testing.T) {
		a, h := setup(t)
		a.authAs(retailerR)

		rr := do(h, http.MethodPost, "/api/product-requests",
			`{"product_type":"Router","quantity":1,"reason":"restock","target_id":2}`, bearer())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "product_type must be one of [SIM Mobile Fiber]", decodeError(t, rr).Detail)
	})
}

func TestListRequests(t *testing.T) {
	a, h := setup(t)
	a.authAs(agentA)
	a.request.On("List", mock.Anything, agentA).Return([]model.RequestRow{
		{ProductRequest: model.ProductRequest{ID: 1}, Actions: []constant.RequestAction{constant.ActionApprove}},
		{ProductRequest: model.ProductRequest{ID: 2}, Actions: []constant.RequestAction{}},
	}, nil).Once()

	rr := do(h, http.MethodGet, "/api/product-requests", "", bearer())
	require.Equal(t, http.StatusOK, rr.Code)

	var res []struct {
		ID      uint64   `json:"id"`
		Actions []string `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, []string{"approve"}, res[0].Actions)
	assert.NotNil(t, res[1].Actions)
}

func TestDashboardStats_PassesCachedPayloadThrough(t *testing.T) {
	a, h := setup(t)
	a.authAs(retailerR)
	a.dashboard.On("Stats", mock.Anything, retailerR).
		Return(json.RawMessage(`{"total_requests":3,"pending_requests":1,"fulfilled_requests":2}`), nil).Once()

	rr := do(h, http.MethodGet, "/api/dashboard/stats", "", bearer())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"total_requests":3,"pending_requests":1,"fulfilled_requests":2}`, rr.Body.String())
}

func TestResetStock(t *testing.T) {
	distributor := model.Principal{ID: 1, Role: constant.RoleDistributor}
	a, h := setup(t)
	a.authAs(distributor)
	a.stock.On("Reset", mock.Anything, distributor, &model.ResetStockRequest{Confirm: true}).
		Return(&model.ResetStockResponse{RecordsReset: 4}, nil).Once()

	rr := do(h, http.MethodPost, "/api/stock/reset", `{"confirm":true}`, bearer())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"records_reset":4}`, rr.Body.String())
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		accept   string
		wantLang string
	}{
		{name: "explicit hindi", query: "?lang=hi", wantLang: "hi"},
		{name: "accept-language hindi", accept: "hi-IN,hi;q=0.9", wantLang: "hi"},
		{name: "unknown falls back to english", query: "?lang=fr", wantLang: "en"},
		{name: "no preference", wantLang: "en"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, h := setup(t)
			headers := map[string]string{}
			if tt.accept != "" {
				headers["Accept-Language"] = tt.accept
			}

			rr := do(h, http.MethodGet, "/api/labels"+tt.query, "", headers)
			require.Equal(t, http.StatusOK, rr.Code)

			var res model.LabelsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
			assert.Equal(t, tt.wantLang, res.Language)
			assert.NotEmpty(t, res.Labels["dashboard"])
		})
	}
}

func TestInternalMetrics(t *testing.T) {
	_, h := setup(t)

	rr := do(h, http.MethodGet, "/internal/metrics", "", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(h, http.MethodGet, "/internal/metrics", "", map[string]string{"Authorization": "Bearer " + apiKey})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "go_goroutines"))
}

func TestCORSPreflight(t *testing.T) {
	_, h := setup(t)

	rr := do(h, http.MethodOptions, "/api/product-requests/10/approve", "", map[string]string{
		"Origin":                         origin,
		"Access-Control-Request-Method":  http.MethodPut,
		"Access-Control-Request-Headers": "Authorization, Content-Type",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, origin, rr.Header().Get("Access-Control-Allow-Origin"))
}
