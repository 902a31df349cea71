package router

import (
	"database/sql"
	"net/http"
	"strings"

	_ "petpatrol/docs"

	"petpatrol/internal/adapters/auth/jwt"
	rediscache "petpatrol/internal/adapters/cache/redis"
	memobjects "petpatrol/internal/adapters/objectstore/memory"
	mem "petpatrol/internal/adapters/storage/memory"
	pg "petpatrol/internal/adapters/storage/postgres"
	"petpatrol/internal/domain/catalog"
	"petpatrol/internal/domain/listings"
	"petpatrol/internal/domain/users"
	"petpatrol/internal/middleware"
	"petpatrol/internal/platform/config"
	"petpatrol/internal/platform/logger"
	"petpatrol/internal/ports/auth"
	"petpatrol/internal/ports/objectstore"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// nil = config.Default()
	Config *config.Config
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: caché de tablas de referencia.
	Redis *redis.Client
	// Opcional: sin S3 se usa un store en memoria.
	Objects objectstore.Store

	// nil = JWT propio con auth.jwt_secret.
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	if opts.Verifier == nil || opts.Issuer == nil {
		m := jwt.NewManager(cfg.Auth.JWTSecret, cfg.App.Name, cfg.Auth.TokenTTL)
		if opts.Verifier == nil {
			opts.Verifier = m
		}
		if opts.Issuer == nil {
			opts.Issuer = m
		}
	}

	objects := opts.Objects
	if objects == nil {
		objects = memobjects.New(defaultObjectsBaseURL(cfg.Storage))
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader, middleware.DebugUserHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.AuthContext(opts.Verifier, cfg.Auth.DevHeader))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		catalogRepo  catalog.Repository
		listingStore listings.Store
		userRepo     users.Repository
	)

	if opts.DB != nil {
		catalogRepo = pg.NewCatalogRepo(opts.DB)
		listingStore = pg.NewListingsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
	} else {
		catalogRepo = mem.NewCatalogRepo()
		listingStore = mem.NewListingsStore()
		userRepo = mem.NewUserRepo()
	}
	catalogRepo = rediscache.NewCatalogRepo(catalogRepo, opts.Redis, cfg.Redis.CatalogTTL, log)

	// Services por módulo
	catalogSvc := catalog.NewService(catalogRepo)
	listingsSvc := listings.NewService(listingStore, listings.Options{
		Objects:       objects,
		Refs:          catalogSvc,
		Logger:        log,
		MaxImageBytes: cfg.Storage.MaxImageBytes,
	})
	usersSvc := users.NewService(userRepo, opts.Issuer)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc, log)
	listings.RegisterRoutes(r, listingsSvc, listings.HandlerOptions{
		CreateTimeout: cfg.Listings.CreateTimeout,
		MaxImageBytes: cfg.Storage.MaxImageBytes,
		AuthRequired:  cfg.Auth.Required,
		Logger:        log,
	})
	users.RegisterRoutes(r, usersSvc, users.HandlerOptions{
		LoginLimiter: httprate.LimitByIP(cfg.RateLimit.LoginRequests, cfg.RateLimit.Window),
		Logger:       log,
	})

	return r
}

func defaultObjectsBaseURL(s config.StorageConfig) string {
	if base := strings.TrimRight(strings.TrimSpace(s.PublicBaseURL), "/"); base != "" {
		return base
	}
	bucket := s.Bucket
	if bucket == "" {
		bucket = "petpatrol-images"
	}
	return "https://" + bucket + ".s3.amazonaws.com"
}
