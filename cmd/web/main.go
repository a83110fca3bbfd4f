package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"playoh/internal/auth"
	appconf "playoh/internal/config"
	"playoh/internal/db"
	"playoh/internal/events"
	"playoh/internal/ids"
	"playoh/internal/kv"
	"playoh/internal/media"
	"playoh/internal/playoh"
	"playoh/internal/ratelimiter"
	"playoh/internal/views"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	// Default values
	defaultRequests := 10
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	strategy := ratelimiter.StrategyFixedWindow
	if val, exists := os.LookupEnv("RATE_LIMITER_STRATEGY"); exists {
		switch val {
		case ratelimiter.StrategyFixedWindow, ratelimiter.StrategyTokenBucket:
			strategy = val
		default:
			fmt.Println("Invalid RATE_LIMITER_STRATEGY, defaulting to", strategy)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
		Strategy:             strategy,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel
	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return d
}

func loadConfig() config {
	var origins []string
	for _, o := range strings.Split(getString("CORS_ALLOWED_ORIGINS", "http://localhost:8080"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return config{
		addr:       getString("ADDR", ":8080"),
		env:        getString("ENV", "development"),
		apiURL:     getString("API_BASE_URL", appconf.DefaultAPIBaseURL),
		apiTimeout: getDuration("API_TIMEOUT", 30*time.Second),
		kv: kvConfig{
			driver: getString("KV_DRIVER", "memory"),
		},
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(getInt("DB_MAX_CONNS", 10)),
			maxIdleTime: getString("DB_MAX_IDLE_TIME", "15m"),
		},
		redis: redisConfig{
			addr:     getString("REDIS_ADDR", "localhost:6379"),
			password: os.Getenv("REDIS_PASSWORD"),
			db:       getInt("REDIS_DB", 0),
		},
		sqlitePath:  getString("SQLITE_PATH", "playoh.db"),
		sessionKey:  os.Getenv("SESSION_KEY"),
		hashidsSalt: getString("HASHIDS_SALT", appconf.AppShortName),
		cloudinary:  os.Getenv("CLOUDINARY_URL"),
		defaultTZ:   getInt("DEFAULT_TZ_OFFSET_MINUTES", 0),
		corsOrigins: origins,
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
}

// openStore connects the key-value backend that holds device sessions.
func openStore(cfg config, logger *zap.SugaredLogger) (kv.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.kv.driver {
	case "memory":
		logger.Warn("using the in-memory session store; sessions are lost on restart")
		return kv.NewMemory(), nil
	case "redis":
		return kv.NewRedis(ctx, kv.RedisOptions{
			Addr:     cfg.redis.addr,
			Password: cfg.redis.password,
			DB:       cfg.redis.db,
		})
	case "postgres":
		pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
		if err != nil {
			return nil, err
		}
		expvar.Publish("database", expvar.Func(func() any {
			return pool.Stat().TotalConns()
		}))
		return kv.NewPostgres(ctx, pool)
	case "sqlite":
		return kv.NewSQLite(ctx, cfg.sqlitePath)
	}
	return nil, fmt.Errorf("unknown KV_DRIVER %q", cfg.kv.driver)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfig()

	// Logger
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer store.Close()
	logger.Infow("session store ready", "driver", cfg.kv.driver)

	codec, err := ids.NewCodec(cfg.hashidsSalt)
	if err != nil {
		logger.Fatal(err)
	}

	renderer, err := views.New(codec)
	if err != nil {
		logger.Fatal(err)
	}

	// icon uploads are optional
	var uploader media.Uploader = media.Disabled{}
	if cfg.cloudinary != "" {
		cld, err := media.NewCloudinary(cfg.cloudinary)
		if err != nil {
			logger.Fatal(err)
		}
		uploader = cld
	}

	sealer, err := newDeviceSealer(cfg.sessionKey, cfg.env == "production")
	if err != nil {
		logger.Fatal(err)
	}
	if cfg.sessionKey == "" {
		logger.Warn("SESSION_KEY is not set; device cookies will not survive a restart")
	}

	api := playoh.New(cfg.apiURL,
		playoh.WithTimeout(cfg.apiTimeout),
		playoh.WithLogger(logger.Named("api")),
		playoh.WithUserAgent(appconf.AppShortName+"-web/"+appconf.AppVersion),
	)

	bus := events.NewBus()

	app := &application{
		config:      cfg,
		logger:      logger,
		kv:          store,
		api:         api,
		views:       renderer,
		ids:         codec,
		bus:         bus,
		media:       uploader,
		tokens:      auth.NewUnverifiedInspector(),
		rateLimiter: ratelimiter.New(cfg.rateLimiter),
		device:      sealer,
	}

	//Metrics collected http://localhost:8080/debug/vars
	expvar.NewString("version").Set(appconf.AppVersion)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("live_subscribers", expvar.Func(func() any {
		return bus.Subscribers()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
