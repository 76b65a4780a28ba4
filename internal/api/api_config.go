package api

import (
	"context"
	"crypto/rand"
	"database/sql"
	"embed"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/yachay/tareas-api/internal/auth"
	"github.com/yachay/tareas-api/internal/database"
)

const defaultTokenExpiry = 30 * 24 * time.Hour

type APIConfig struct {
	db          *database.Queries
	dbURL       string
	platform    string
	secret      string
	tokenExpiry time.Duration
	logger      *slog.Logger
}

func (cfg *APIConfig) Init(envPath string, altDBUrl string) {
	// get environment variables
	if len(envPath) != 0 {
		_ = godotenv.Load(envPath)
	}

	cfg.platform = os.Getenv("PLATFORM")
	cfg.secret = os.Getenv("SECRET")

	if len(altDBUrl) != 0 {
		cfg.dbURL = altDBUrl
	} else {
		cfg.GenerateDBConnectionString()
	}

	{
		slogLevel := os.Getenv("SLOG_LEVEL")
		switch slogLevel {
		case "DEBUG":
			cfg.NewLogger(slog.LevelDebug)
		case "WARN":
			cfg.NewLogger(slog.LevelWarn)
		case "ERROR":
			cfg.NewLogger(slog.LevelError)
		default:
			cfg.NewLogger(slog.LevelInfo)
		}
	}

	// The signing secret must come from the environment. Only a dev
	// platform may run without one, on an ephemeral random secret that
	// invalidates all tokens at process exit.
	if cfg.secret == "" {
		if cfg.platform != "dev" {
			slog.Error("SECRET environment variable is required outside the dev platform")
			os.Exit(1)
		}
		rBytes := make([]byte, 32)
		if _, err := rand.Read(rBytes); err != nil {
			slog.Error("could not generate ephemeral dev secret: " + err.Error())
			os.Exit(1)
		}
		cfg.secret = hex.EncodeToString(rBytes)
		slog.Warn("SECRET not set; using an ephemeral dev-only signing secret")
	}

	cfg.tokenExpiry = defaultTokenExpiry
	if expiryString := os.Getenv("TOKEN_EXPIRY"); expiryString != "" {
		expiry, err := time.ParseDuration(expiryString)
		if err != nil {
			slog.Error("could not parse TOKEN_EXPIRY as a duration: " + err.Error())
			os.Exit(1)
		}
		cfg.tokenExpiry = expiry
	}
}

func (cfg *APIConfig) NewLogger(level slog.Level) {
	cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout,
		&slog.HandlerOptions{Level: level}))
	slog.SetDefault(cfg.logger)
}

func (cfg *APIConfig) GenerateDBConnectionString() *string {
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		cfg.dbURL = dbURL
		return &cfg.dbURL
	}

	envOrDefault := func(envVar string, defaultVal string) string {
		envVal := os.Getenv(envVar)
		if len(envVal) == 0 {
			envVal = defaultVal
		}
		return envVal
	}

	dbUser := envOrDefault("DB_USER", "postgres")
	dbPassword := envOrDefault("DB_PASSWORD", "postgres")
	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	dbName := envOrDefault("DB_NAME", "tareas")

	cfg.dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser,
		dbPassword,
		dbHost,
		dbPort,
		dbName,
	)
	return &cfg.dbURL
}

func (cfg *APIConfig) ConnectToDB(fs embed.FS, migrationsDir string) {
	db, err := sql.Open("postgres", cfg.dbURL)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Default to relative directory so tests know where to find migrations
	// Otherwise, use embedded directory in a compiled binary context
	if len(migrationsDir) == 0 {
		migrationsDir = "../../sql/schema"
	} else {
		goose.SetBaseFS(fs)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}

	if err = goose.Up(db, migrationsDir); err != nil {
		slog.Error("could not apply database migrations with goose; " + err.Error())
		panic(err)
	}

	cfg.db = database.New(db)

	if err := cfg.seedDefaultCategories(context.Background()); err != nil {
		slog.Error("could not seed default categories; " + err.Error())
		panic(err)
	}
}

// seedDefaultCategories inserts the default category rows on a fresh
// database. A non-empty categories table is left untouched.
func (cfg *APIConfig) seedDefaultCategories(ctx context.Context) error {
	count, err := cfg.db.GetCategoryCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range []string{"Normal", "Prioritaria"} {
		if _, err := cfg.db.CreateCategory(ctx, database.CreateCategoryParams{Name: name}); err != nil {
			return err
		}
		slog.Info("seeded default category", slog.String("name", name))
	}
	return nil
}

// ================= MIDDLEWARE ================= //

type ctxKey string

// middlewareAuthenticate authenticates JSON Web Tokens and resolves their
// subject to a stored user before passing off requests to another handler.
// Every failure collapses to the same 401; the cause only reaches the logs.
func (cfg *APIConfig) middlewareAuthenticate(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := auth.GetBearerToken(r.Header)
		if err != nil {
			slog.Error("could not get bearer token: " + err.Error())
			respondWithError(w, http.StatusUnauthorized, "invalid or missing token", nil)
			return
		}
		validatedUserID, err := auth.ValidateJWT(tokenString, cfg.secret, "HS256")
		if err != nil {
			slog.Error("failed validation for JWT: " + err.Error())
			respondWithError(w, http.StatusUnauthorized, "invalid or missing token", nil)
			return
		}
		dbUser, err := cfg.db.GetUserByID(r.Context(), validatedUserID)
		if err != nil {
			slog.Error("token subject does not resolve to a user: " + err.Error())
			respondWithError(w, http.StatusUnauthorized, "invalid or missing token", nil)
			return
		}
		ctxUserID := ctxKey("user_id")
		ctx := context.WithValue(r.Context(), ctxUserID, dbUser.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ============== HELPERS =================

func getContextKeyValueAsUUID(ctx context.Context, key string) uuid.UUID {
	contextKeyValue, ok := ctx.Value(ctxKey(key)).(uuid.UUID)
	if !ok {
		slog.Info("Failed to retrieve key from context")
		return uuid.Nil
	}
	return contextKeyValue
}
