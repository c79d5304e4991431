package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/meowexpress/ecommerce-api/api/middleware"
	"github.com/meowexpress/ecommerce-api/api/web"
	"github.com/meowexpress/ecommerce-api/core/auth"
	"github.com/meowexpress/ecommerce-api/core/cart"
	"github.com/meowexpress/ecommerce-api/core/order"
	"github.com/meowexpress/ecommerce-api/core/product"
	"github.com/meowexpress/ecommerce-api/core/user"
	"github.com/meowexpress/ecommerce-api/lock"
	"github.com/meowexpress/ecommerce-api/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Keeper     *auth.Keeper
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Keeper)
	admin := auth.Admin()

	// Mutations of one user's cart are serialized through these locks so two
	// concurrent requests can't lose each other's read-modify-write.
	userLocks := &lock.Keyed{}

	a.Handle(http.MethodPost, "/users", user.HandleRegister(cfg.DB))
	a.Handle(http.MethodPost, "/users/login", user.HandleLogin(cfg.DB, cfg.Keeper))
	a.Handle(http.MethodGet, "/users/details", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodPut, "/users/update-profile", user.HandleUpdateProfile(cfg.DB), authen)
	a.Handle(http.MethodPut, "/users/reset-password", user.HandleResetPassword(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users/all", user.HandleList(cfg.DB), authen, admin)
	a.Handle(http.MethodPatch, "/users/{id}/set-as-admin", user.HandlePromote(cfg.DB), authen, admin)
	a.Handle(http.MethodPatch, "/users/{id}/remove-as-admin", user.HandleDemote(cfg.DB), authen, admin)

	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), authen, admin)
	a.Handle(http.MethodGet, "/products/all", product.HandleList(cfg.DB), authen)
	a.Handle(http.MethodPost, "/products/search-by-name", product.HandleSearchByName(cfg.DB))
	a.Handle(http.MethodPost, "/products/search-by-price", product.HandleSearchByPrice(cfg.DB))
	a.Handle(http.MethodGet, "/products", product.HandleListAvailable(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPut, "/products/{id}/update", product.HandleUpdate(cfg.DB), authen, admin)
	a.Handle(http.MethodPatch, "/products/{id}/archive", product.HandleArchive(cfg.DB), authen, admin)
	a.Handle(http.MethodPatch, "/products/{id}/activate", product.HandleActivate(cfg.DB), authen, admin)

	a.Handle(http.MethodGet, "/cart/get-cart", cart.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPost, "/cart/add-to-cart", cart.HandleAddItem(cfg.DB, userLocks), authen)
	a.Handle(http.MethodPut, "/cart/update-cart-quantity", cart.HandleUpdateQuantity(cfg.DB, userLocks), authen)
	a.Handle(http.MethodDelete, "/cart/{productId}/remove-from-cart", cart.HandleDeleteItem(cfg.DB, userLocks), authen)
	a.Handle(http.MethodDelete, "/cart/clear-cart", cart.HandleClear(cfg.DB, userLocks), authen)

	a.Handle(http.MethodPost, "/orders/checkout", order.HandleCheckout(cfg.DB, userLocks), authen)
	a.Handle(http.MethodGet, "/orders/my-orders", order.HandleListOwn(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders/all-orders", order.HandleListAll(cfg.DB), authen, admin)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
