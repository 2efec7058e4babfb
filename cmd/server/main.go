package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/canusa-hub/knowledge-nexus/api/handlers"
	"github.com/canusa-hub/knowledge-nexus/api/routes"
	"github.com/canusa-hub/knowledge-nexus/config"
	"github.com/canusa-hub/knowledge-nexus/internal/extractor"
	"github.com/canusa-hub/knowledge-nexus/internal/genai"
	"github.com/canusa-hub/knowledge-nexus/internal/indexer"
	"github.com/canusa-hub/knowledge-nexus/internal/presence"
	"github.com/canusa-hub/knowledge-nexus/internal/search"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/internal/service/category"
	"github.com/canusa-hub/knowledge-nexus/internal/service/document"
	mongostore "github.com/canusa-hub/knowledge-nexus/internal/store/mongo"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
	"github.com/canusa-hub/knowledge-nexus/pkg/queue"
	"github.com/canusa-hub/knowledge-nexus/pkg/storage"
)

func main() {
	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/app.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	cfg := config.GetServerConfig()

	// stores
	db, err := mongostore.Connect(ctx)
	if err != nil {
		log.Fatal("Failed to connect to mongodb", logger.Error(err))
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes", logger.Error(err))
	}
	articleStore := mongostore.NewArticleStore(db)
	categoryStore := mongostore.NewCategoryStore(db)
	documentStore := mongostore.NewDocumentStore(db)
	userStore := mongostore.NewUserStore(db)
	sessionStore := mongostore.NewSessionStore(db)

	// blob storage
	blobs, err := storage.New(storage.Backend(cfg.StorageBackend), log)
	if err != nil {
		log.Fatal("Failed to init storage", logger.Error(err))
	}

	// task queue
	q := queue.NewAsynqQueue(queue.DefaultConfig())
	defer q.Close()

	// AI client; Available() gates every call site, so a missing API key
	// just turns the AI features off.
	gen := genai.NewGeminiClient(nil)
	if !gen.Available() {
		log.Warn("Gemini API key not configured, AI features disabled")
	}

	// vector index
	var index vectorindex.Index
	if pc := config.GetPineconeConfig(); pc.APIKey != "" {
		index = vectorindex.NewPineconeIndex(pc)
	} else {
		log.Warn("Pinecone not configured, using in-memory vector index")
		index = vectorindex.NewMemoryIndex()
	}
	embedder := indexer.NewHashEmbedder()
	ix := indexer.NewIndexer(index, embedder, log)

	// presence over the same redis asynq uses
	redisCfg := config.GetRedisConfig()
	tracker := presence.NewRedisTracker(redis.NewClient(&redis.Options{
		Addr: redisCfg.Addr,
		DB:   redisCfg.DB,
	}))

	// services
	articleSvc := article.NewService(articleStore, userStore, ix, gen, log)
	categorySvc := category.NewService(categoryStore, log)
	documentSvc := document.NewService(
		documentStore,
		blobs,
		q,
		extractor.NewExtractor(log),
		gen,
		articleSvc,
		cfg.TargetLanguage,
		log,
	)
	engine := search.NewEngine(articleStore, index, embedder, gen, log)

	// handlers and routes
	h := handlers.New(handlers.Deps{
		Documents:     documentSvc,
		Articles:      articleSvc,
		Categories:    categorySvc,
		Engine:        engine,
		Tracker:       tracker,
		ArticleStore:  articleStore,
		DocumentStore: documentStore,
		CategoryStore: categoryStore,
		Log:           log,
	})
	r := gin.New()
	r.Use(gin.Recovery())
	routes.Setup(r, h, sessionStore, userStore)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	// start server
	go func() {
		log.Info("Server starting", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error:", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown:", logger.Error(err))
	}
}
