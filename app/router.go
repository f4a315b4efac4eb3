// Package app wires every service together and exposes the HTTP routes
package app

import (
	"bitwise74/file-api/app/auth"
	"bitwise74/file-api/app/file"
	"bitwise74/file-api/app/maintenance"
	"bitwise74/file-api/app/root"
	"bitwise74/file-api/db"
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/registry"
	"bitwise74/file-api/internal/service"
	"bitwise74/file-api/internal/token"
	"bitwise74/file-api/pkg/middleware"
	"bitwise74/file-api/storage"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

// NewRouter assembles every dependency explicitly and returns the ready
// engine. No hidden container, everything handlers use sits in Deps.
func NewRouter() (*gin.Engine, error) {
	makeLogger()

	d := &internal.Deps{
		Locks: service.NewFileLocks(),
	}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database
	d.Registry = registry.NewGorm(database)

	backend, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend, %w", err)
	}

	if err := backend.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run storage setup, %w", err)
	}
	d.Storage = backend

	ttl, err := time.ParseDuration(viper.GetString("auth.token_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid token ttl, %w", err)
	}

	tokens, err := token.NewService(map[token.Type][]byte{
		token.TypeUser:  []byte(viper.GetString("auth.user_secret")),
		token.TypeAdmin: []byte(viper.GetString("auth.admin_secret")),
		token.TypeFile:  []byte(viper.GetString("auth.file_secret")),
	}, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service, %w", err)
	}
	d.Tokens = tokens

	d.Flush = &service.Flush{
		Registry:    d.Registry,
		Backend:     d.Storage,
		Concurrency: viper.GetInt("flush.concurrency"),
	}

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	rateLimit := viper.GetInt("security.rate_limit")
	maxUploadSize := viper.GetInt64("upload.max_size")

	bearer := middleware.NewAuthMiddleware(tokens, token.TypeUser, token.TypeAdmin)
	bearerOptional := middleware.NewOptionalAuthMiddleware(tokens, token.TypeUser, token.TypeAdmin, token.TypeFile)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	a := m.Group("/auth/token")
	{
		// POST /api/auth/token/generate/:tokenType	-> Issues a new token of the given type
		a.POST("/generate/:tokenType", func(c *gin.Context) { auth.TokenGenerate(c, d) })

		// GET /api/auth/token/info/:tokenType		-> Decodes the bearer token
		a.GET("/info/:tokenType", func(c *gin.Context) { auth.TokenInfo(c, d) })

		// GET /api/auth/token/validate/:tokenType	-> Validates the bearer token
		a.GET("/validate/:tokenType", bearer, func(c *gin.Context) { auth.TokenValidate(c, d) })
	}

	ff := m.Group("/files")
	{
		// GET /api/files		-> Returns the caller's files, paginated
		ff.GET("", bearer, func(c *gin.Context) { file.FileList(c, d) })

		// POST /api/files         	-> Uploads a new file, blob first, then the record
		ff.POST("", bearer, middleware.BodySizeLimiter(maxUploadSize), func(c *gin.Context) { file.FileUpload(c, d) })

		// GET /api/files/:id		-> Serves a file's content if the caller may read it
		ff.GET("/:id", bearerOptional, func(c *gin.Context) { file.FileFetch(c, d) })

		// GET /api/files/:id/info	-> Returns a file's metadata
		ff.GET("/:id/info", bearerOptional, middleware.NewCacheMiddleware(store, 15*time.Second), func(c *gin.Context) { file.FileInfo(c, d) })

		// PATCH /api/files/:id		-> Renames a file or toggles its visibility
		ff.PATCH("/:id", bearer, func(c *gin.Context) { file.FileEdit(c, d) })

		// DELETE /api/files/:id	-> Deletes a file's blob and record
		ff.DELETE("/:id", bearer, func(c *gin.Context) { file.FileDelete(c, d) })
	}

	mt := m.Group("/maintenance", middleware.NewAuthMiddleware(tokens, token.TypeAdmin), middleware.RequireAdmin())
	{
		// POST /api/maintenance/flush	-> Reclaims orphaned blobs and records
		mt.POST("/flush", func(c *gin.Context) { maintenance.FlushStorage(c, d) })
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

