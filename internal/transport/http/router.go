package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/kapee-shop/api/internal/application/bestselling"
	"github.com/kapee-shop/api/internal/application/blog"
	"github.com/kapee-shop/api/internal/application/contact"
	"github.com/kapee-shop/api/internal/application/order"
	"github.com/kapee-shop/api/internal/application/otp"
	"github.com/kapee-shop/api/internal/application/product"
	"github.com/kapee-shop/api/internal/application/upload"
	"github.com/kapee-shop/api/internal/application/user"
	"github.com/kapee-shop/api/internal/config"
	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/kapee-shop/api/internal/infrastructure/jwt"
	s3infra "github.com/kapee-shop/api/internal/infrastructure/s3"
	"github.com/kapee-shop/api/internal/infrastructure/smtp"
	"github.com/kapee-shop/api/internal/transport/http/handler"
	appmiddleware "github.com/kapee-shop/api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo        *dynamo.UserRepo
	ProductRepo     *dynamo.ProductRepo
	OrderRepo       *dynamo.OrderRepo
	BlogRepo        *dynamo.BlogRepo
	ContactRepo     *dynamo.ContactRepo
	BestSellingRepo *dynamo.BestSellingRepo
	OTPRepo         *dynamo.OTPRepo
	S3Store         *s3infra.Store
	Mailer          smtp.Mailer
	JWTProvider     *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	userSvc := user.NewService(user.ServiceDeps{UserRepo: deps.UserRepo, Tokens: deps.JWTProvider})
	otpSvc := otp.NewService(otp.ServiceDeps{UserRepo: deps.UserRepo, OTPRepo: deps.OTPRepo, Mailer: deps.Mailer})
	productSvc := product.NewService(product.ServiceDeps{ProductRepo: deps.ProductRepo})
	bestSvc := bestselling.NewService(bestselling.ServiceDeps{EntryRepo: deps.BestSellingRepo, ProductRepo: deps.ProductRepo})
	orderSvc := order.NewService(order.ServiceDeps{OrderRepo: deps.OrderRepo})
	blogSvc := blog.NewService(blog.ServiceDeps{BlogRepo: deps.BlogRepo})
	contactSvc := contact.NewService(contact.ServiceDeps{ContactRepo: deps.ContactRepo, Mailer: deps.Mailer, AdminEmail: cfg.AdminEmail})
	uploadSvc := upload.NewService(upload.ServiceDeps{ObjectStore: deps.S3Store})

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	otpH := handler.NewOTPHandler(otpSvc)
	productH := handler.NewProductHandler(productSvc)
	bestH := handler.NewBestSellingHandler(bestSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	blogH := handler.NewBlogHandler(blogSvc)
	contactH := handler.NewContactHandler(contactSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/users/register", userH.Register)
		r.With(sensitiveRL.Limit).Post("/users/login", userH.Login)
		r.With(sensitiveRL.Limit).Post("/users/reset-password", userH.ResetPassword)

		r.With(sensitiveRL.Limit).Post("/otp", otpH.Create)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
		r.With(sensitiveRL.Limit).Post("/otp/resend", otpH.Resend)

		r.Get("/products", productH.List)
		r.Get("/products/search", productH.Search)
		r.Get("/products/{id}", productH.Get)

		r.Get("/best-selling", bestH.List)
		r.Get("/best-selling/featured", bestH.Featured)
		r.Get("/best-selling/{id}", bestH.Get)

		r.Get("/blogs", blogH.List)
		r.Get("/blogs/search", blogH.Search)
		r.Get("/blogs/{id}", blogH.Get)

		r.Post("/contacts", contactH.Submit)

		r.Post("/orders", orderH.Create)
		r.Post("/orders/batch", orderH.CreateBatch)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Delete("/users/{id}", userH.Delete)

				r.Post("/products", productH.Create)
				r.Post("/products/seed", productH.Seed)
				r.Put("/products/{id}", productH.Update)
				r.Delete("/products/{id}", productH.Delete)

				r.Post("/best-selling", bestH.Promote)
				r.Put("/best-selling/{id}", bestH.Update)
				r.Patch("/best-selling/{id}/sales", bestH.AdjustSales)
				r.Delete("/best-selling/{id}", bestH.Remove)

				r.Get("/orders", orderH.List)
				r.Get("/orders/{id}", orderH.Get)
				r.Put("/orders/{id}", orderH.Update)
				r.Delete("/orders/{id}", orderH.Delete)

				r.Post("/blogs", blogH.Create)
				r.Put("/blogs/{id}", blogH.Update)
				r.Delete("/blogs/{id}", blogH.Delete)

				r.Get("/contacts", contactH.List)
				r.Get("/contacts/{id}", contactH.Get)
				r.Delete("/contacts/{id}", contactH.Delete)

				r.Post("/uploads/image", uploadH.UploadImage)
			})
		})
	})

	return r
}
