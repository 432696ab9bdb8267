package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"github.com/dtroode/storefront/internal/api/http/handler"
	"github.com/dtroode/storefront/internal/api/http/middleware"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/web"
)

// AuthService is the auth surface the router needs: the page flows and the
// per-request session lookup.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// Config contains HTTP routing parameters.
type Config struct {
	CSRFKey        []byte
	Secure         bool
	Cookie         handler.SessionCookie
	RequestTimeout time.Duration
}

// Router wires the storefront handlers into a chi router.
type Router struct {
	cfg            Config
	authService    AuthService
	catalogService handler.CatalogService
	cartService    handler.CartService
	orderService   handler.OrderService
	health         handler.HealthChecker
	renderer       *web.Renderer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	cfg Config,
	authService AuthService,
	catalogService handler.CatalogService,
	cartService handler.CartService,
	orderService handler.OrderService,
	health handler.HealthChecker,
	renderer *web.Renderer,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		cfg:            cfg,
		authService:    authService,
		catalogService: catalogService,
		cartService:    cartService,
		orderService:   orderService,
		health:         health,
		renderer:       renderer,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the handler tree with request logging, CSRF protection
// and session authentication.
func (r *Router) Register() http.Handler {
	views := handler.NewViews(r.renderer, r.contextManager, r.logger)
	shop := handler.NewShop(views, r.catalogService, r.cartService)
	orders := handler.NewOrder(views, r.orderService)
	admin := handler.NewAdmin(views, r.catalogService)
	auth := handler.NewAuth(views, r.authService, r.cfg.Cookie)
	health := handler.NewHealth(r.health, r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.cfg.Cookie.Name, r.logger)
	requireUser := middleware.RequireUser(r.contextManager)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)
	if r.cfg.RequestTimeout > 0 {
		mux.Use(chimiddleware.Timeout(r.cfg.RequestTimeout))
	}

	mux.NotFound(views.NotFound)
	mux.Get("/healthz", health.Check)
	mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	mux.Get("/images/*", shop.Image)

	mux.Group(func(mux chi.Router) {
		if !r.cfg.Secure {
			mux.Use(plaintext)
		}
		mux.Use(csrf.Protect(r.cfg.CSRFKey,
			csrf.Secure(r.cfg.Secure),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(views.Forbidden)),
		))
		mux.Use(authenticate.Handle)

		mux.Get("/", shop.Index)
		mux.Get("/products", shop.Products)
		mux.Get("/products/{id}", shop.Product)
		mux.Get("/user/{id}", shop.Seller)
		mux.Get("/search", shop.Search)

		mux.Get("/login", auth.LoginForm)
		mux.Post("/login", auth.Login)
		mux.Get("/signup", auth.SignupForm)
		mux.Post("/signup", auth.Signup)
		mux.Post("/logout", auth.Logout)
		mux.Get("/reset", auth.ResetForm)
		mux.Post("/reset", auth.Reset)
		mux.Get("/reset/{token}", auth.NewPasswordForm)
		mux.Post("/new-password", auth.NewPassword)

		mux.Group(func(mux chi.Router) {
			mux.Use(requireUser)

			mux.Get("/cart", shop.Cart)
			mux.Post("/cart", shop.AddToCart)
			mux.Post("/cart/delete", shop.DeleteCartItem)
			mux.Post("/cart-delete-item", shop.DeleteCartItem)

			mux.Get("/checkout", orders.Checkout)
			mux.Post("/create-order", orders.CreateOrder)
			mux.Get("/orders", orders.Orders)
			mux.Get("/orders/{id}/invoice", orders.Invoice)

			mux.Route("/admin", func(mux chi.Router) {
				mux.Get("/add-product", admin.AddProductForm)
				mux.Post("/add-product", admin.AddProduct)
				mux.Get("/products", admin.Products)
				mux.Get("/edit-product/{id}", admin.EditProductForm)
				mux.Post("/edit-product", admin.EditProduct)
				mux.Delete("/product/{id}", admin.DeleteProduct)
			})
		})
	})

	return mux
}

// plaintext marks requests served without TLS so the CSRF check does not
// demand an HTTPS referer.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
