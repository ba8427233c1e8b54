package transport

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	dashboardapp "github.com/muhammadheryan/telecom-distribution/application/dashboard"
	notificationapp "github.com/muhammadheryan/telecom-distribution/application/notification"
	productapp "github.com/muhammadheryan/telecom-distribution/application/product"
	requestapp "github.com/muhammadheryan/telecom-distribution/application/request"
	stockapp "github.com/muhammadheryan/telecom-distribution/application/stock"
	userapp "github.com/muhammadheryan/telecom-distribution/application/user"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/i18n"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

const apiPrefix = "/api"

type RestHandler struct {
	UserApp         userapp.UserApp
	ProductApp      productapp.ProductApp
	RequestApp      requestapp.RequestApp
	StockApp        stockapp.StockApp
	DashboardApp    dashboardapp.DashboardApp
	NotificationApp notificationapp.NotificationApp
}

type Options struct {
	AllowedOrigins []string
	InternalAPIKey string
	Metrics        *metrics.Metrics
}

func NewTransport(rh *RestHandler, opts Options) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Internal routes
	if opts.Metrics != nil {
		mux.Handle("/internal/metrics", InternalMiddleware(opts.InternalAPIKey)(opts.Metrics.Handler())).Methods(http.MethodGet)
	}

	api := mux.PathPrefix(apiPrefix).Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", rh.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	api.HandleFunc("/labels", rh.Labels).Methods(http.MethodGet)

	// protected routes
	api.HandleFunc("/auth/logout", rh.Logout).Methods(http.MethodPost)
	api.HandleFunc("/users/me", rh.Me).Methods(http.MethodGet)
	api.HandleFunc("/users/me/preferences", rh.GetPreferences).Methods(http.MethodGet)
	api.HandleFunc("/users/me/preferences", rh.UpdatePreferences).Methods(http.MethodPut)
	api.HandleFunc("/users/create", rh.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/agents", rh.ListAgents).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", rh.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/stats", rh.DashboardStats).Methods(http.MethodGet)

	api.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)

	api.HandleFunc("/product-requests", rh.ListRequests).Methods(http.MethodGet)
	api.HandleFunc("/product-requests", rh.CreateRequest).Methods(http.MethodPost)
	api.HandleFunc("/product-requests/{id:[0-9]+}", rh.GetRequest).Methods(http.MethodGet)
	api.HandleFunc("/product-requests/{id:[0-9]+}/approve", rh.ApproveRequest).Methods(http.MethodPut)
	api.HandleFunc("/product-requests/{id:[0-9]+}/fulfill", rh.FulfillRequest).Methods(http.MethodPut)
	api.HandleFunc("/product-requests/{id:[0-9]+}/reject", rh.RejectRequest).Methods(http.MethodPut)

	api.HandleFunc("/stock", rh.ListStock).Methods(http.MethodGet)
	api.HandleFunc("/stock/transactions", rh.ListStockTransactions).Methods(http.MethodGet)
	api.HandleFunc("/stock/reset", rh.ResetStock).Methods(http.MethodPost)

	api.HandleFunc("/notifications", rh.ListNotifications).Methods(http.MethodGet)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(MetricsMiddleware(opts.Metrics))
	api.Use(AuthMiddleware(rh.UserApp))

	return handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "Accept-Language"}),
	)(mux)
}

// Labels handler
// @Summary Dashboard labels
// @Description English or Hindi label table; lang wins over Accept-Language, unknown falls back to English
// @Tags Labels
// @Produce json
// @Param lang query string false "Language code (en, hi)"
// @Success 200 {object} model.LabelsResponse
// @Router /api/labels [get]
func (s *RestHandler) Labels(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	writeSuccess(w, model.LabelsResponse{Language: lang, Labels: i18n.Labels(lang)})
}

// Register handler
// @Summary Register user
// @Description Register a new user and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
