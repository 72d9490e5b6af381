package router

import (
	"net/http"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api"
	m "github.com/GnanaJothi-79/elite-device-boutique/internal/api/middleware"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	AllowedOrigins []string
	// 空值表示 /auth 不限流
	AuthLimiter m.ILimiter
}

func SetupRouter(server *api.Server, tokenMaker token.Maker, logger *zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(middleware.RealIP)
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.SessionMiddleware)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.SuccessJSON(w, map[string]string{"status": "ok"})
	})

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", server.ProductHandler.ListProducts)
		r.Get("/products/{id}", server.ProductHandler.GetProduct)
		r.Get("/categories", server.ProductHandler.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", server.CartHandler.GetCart)
			r.Delete("/", server.CartHandler.Clear)
			r.Post("/items", server.CartHandler.AddItem)
			r.Put("/items/{productID}", server.CartHandler.UpdateItem)
			r.Delete("/items/{productID}", server.CartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", server.CheckoutHandler.Begin)
			r.Get("/", server.CheckoutHandler.GetFlow)
			r.Post("/shipping", server.CheckoutHandler.SubmitShipping)
			r.Post("/payment", server.CheckoutHandler.SubmitPayment)
			r.Post("/back", server.CheckoutHandler.Back)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
		})

		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(m.NewRateLimitMiddleware(opts.AuthLimiter))
			}
			r.Post("/signup", server.AuthHandler.Signup)
			r.Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})
	})

	chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		log.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", constants.SessionIDHeader, constants.RequestIDHeader},
		ExposedHeaders:   []string{constants.SessionIDHeader, constants.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
