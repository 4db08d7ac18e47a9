package router

import (
	"github.com/ammarmusa/travel-app-backend/internal/config"
	"github.com/ammarmusa/travel-app-backend/internal/handler"
	"github.com/ammarmusa/travel-app-backend/internal/middleware"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// New wires all routes. Auth register/login are public; everything else sits
// behind JWT authentication.
func New(
	authHandler *handler.AuthHandler,
	wishlistHandler *handler.WishlistHandler,
	activityHandler *handler.ActivityHandler,
	cfg *config.Config,
	mm *metrics.Manager,
	log *logger.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(mm))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/token", authHandler.Login)

	// Protected routes
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.JWTAuth(cfg.JWT.Secret, log))

		authRouter.Get("/auth/me", authHandler.Me)

		authRouter.Post("/wishlist/", wishlistHandler.Create)
		authRouter.Get("/wishlist/", wishlistHandler.ListAll)
		authRouter.Get("/wishlist/mine", wishlistHandler.ListMine)
		authRouter.Get("/wishlist/{wishlistID}", wishlistHandler.Get)
		authRouter.Put("/wishlist/{wishlistID}", wishlistHandler.Update)
		authRouter.Delete("/wishlist/{wishlistID}", wishlistHandler.Delete)

		authRouter.Post("/wishlist/{wishlistID}/activities", activityHandler.Add)
		authRouter.Put("/wishlist/{wishlistID}/activities/{activityID}", activityHandler.Update)
		authRouter.Delete("/wishlist/{wishlistID}/activities/{activityID}", activityHandler.Remove)
	})

	return r
}
