package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"playoh/internal/auth"
	"playoh/internal/events"
	"playoh/internal/ids"
	"playoh/internal/kv"
	"playoh/internal/media"
	"playoh/internal/playoh"
	"playoh/internal/ratelimiter"
	"playoh/internal/views"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	kv          kv.Store
	api         *playoh.Client
	views       *views.Renderer
	ids         *ids.Codec
	bus         *events.Bus
	media       media.Uploader
	tokens      auth.Inspector
	rateLimiter ratelimiter.Limiter
	device      *deviceSealer
}

type config struct {
	addr        string
	env         string
	apiURL      string
	apiTimeout  time.Duration
	kv          kvConfig
	db          dbConfig
	redis       redisConfig
	sqlitePath  string
	sessionKey  string
	hashidsSalt string
	cloudinary  string
	defaultTZ   int
	corsOrigins []string
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type kvConfig struct {
	driver string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/health", app.healthCheckHandler)
	r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

	// websocket upgrades must not sit behind the request timeout
	r.With(app.DeviceMiddleware, app.RequireSession).Get("/tabs/home/live", app.liveHandler)

	r.Group(func(r chi.Router) {
		//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(app.DeviceMiddleware)

		// Public routes
		r.Get("/login", app.loginPageHandler)
		r.With(app.RateLimiterMiddleware).Post("/login", app.loginHandler)
		r.Get("/register", app.registerPageHandler)
		r.With(app.RateLimiterMiddleware).Post("/register", app.registerHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.RequireSession)

			r.Get("/", redirectTo("/tabs/home"))
			r.Get("/tabs", redirectTo("/tabs/home"))

			r.Route("/tabs/home", func(r chi.Router) {
				r.Get("/", app.homeHandler)
				r.Get("/join/{ref}", app.joinConfirmHandler)
				r.Post("/join/{ref}", app.joinHandler)
			})

			r.Route("/tabs/bookings", func(r chi.Router) {
				r.Get("/", app.bookingsHandler)
				r.Get("/{ref}/cancel", app.cancelBookingConfirmHandler)
				r.Post("/{ref}/cancel", app.cancelBookingHandler)
			})

			r.Route("/tabs/profile", func(r chi.Router) {
				r.Get("/", app.profileHandler)
				r.Get("/logout", app.logoutConfirmHandler)
				r.Post("/logout", app.logoutHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.RequireAdmin)
					r.Get("/users/new", app.newUserPageHandler)
					r.Post("/users", app.createUserHandler)
				})
			})

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(app.RequireAdmin)

				r.Route("/tabs/schedules", func(r chi.Router) {
					r.Get("/", app.adminSchedulesHandler)
					r.Get("/new", app.newScheduleHandler)
					r.Post("/", app.createScheduleHandler)
					r.Get("/delete-all", app.deleteAllSchedulesConfirmHandler)
					r.Post("/delete-all", app.deleteAllSchedulesHandler)
					r.Route("/{ref}", func(r chi.Router) {
						r.Post("/", app.updateScheduleHandler)
						r.Get("/edit", app.editScheduleHandler)
						r.Get("/participants", app.participantsHandler)
						r.Get("/delete", app.deleteScheduleConfirmHandler)
						r.Post("/delete", app.deleteScheduleHandler)
					})
				})

				r.Route("/tabs/sports-management", func(r chi.Router) {
					r.Get("/", app.sportsHandler)
					r.Get("/new", app.newSportHandler)
					r.Post("/", app.createSportHandler)
					r.Route("/{ref}", func(r chi.Router) {
						r.Post("/", app.updateSportHandler)
						r.Get("/edit", app.editSportHandler)
						r.Get("/delete", app.deleteSportConfirmHandler)
						r.Post("/delete", app.deleteSportHandler)
					})
				})

				r.Route("/tabs/venue-management", func(r chi.Router) {
					r.Get("/", app.venuesHandler)
					r.Post("/rename", app.renameVenueHandler)
					r.Post("/merge", app.mergeVenuesHandler)
					r.Get("/delete", app.deleteVenueConfirmHandler)
					r.Post("/delete", app.deleteVenueHandler)
				})
			})
		})
	})

	r.NotFound(app.notFoundResponse)

	return r
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		// live feeds hold hijacked connections that Shutdown does not wait for
		app.bus.Close()
		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "api", app.config.apiURL)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
