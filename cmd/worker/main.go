package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/canusa-hub/knowledge-nexus/config"
	"github.com/canusa-hub/knowledge-nexus/internal/extractor"
	"github.com/canusa-hub/knowledge-nexus/internal/genai"
	"github.com/canusa-hub/knowledge-nexus/internal/indexer"
	"github.com/canusa-hub/knowledge-nexus/internal/service/article"
	"github.com/canusa-hub/knowledge-nexus/internal/service/document"
	mongostore "github.com/canusa-hub/knowledge-nexus/internal/store/mongo"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
	"github.com/canusa-hub/knowledge-nexus/pkg/storage"
	"github.com/canusa-hub/knowledge-nexus/pkg/worker"
)

func main() {
	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/worker.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.GetServerConfig()

	// stores
	db, err := mongostore.Connect(ctx)
	if err != nil {
		log.Fatal("Failed to connect to mongodb", logger.Error(err))
	}
	documentStore := mongostore.NewDocumentStore(db)
	articleStore := mongostore.NewArticleStore(db)
	userStore := mongostore.NewUserStore(db)

	// blob storage
	blobs, err := storage.New(storage.Backend(cfg.StorageBackend), log)
	if err != nil {
		log.Fatal("Failed to init storage", logger.Error(err))
	}

	gen := genai.NewGeminiClient(nil)
	if !gen.Available() {
		log.Warn("Gemini API key not configured, documents will be processed without AI analysis")
	}

	// article seeding from processed documents indexes into the same
	// vector store the server queries
	var index vectorindex.Index
	if pc := config.GetPineconeConfig(); pc.APIKey != "" {
		index = vectorindex.NewPineconeIndex(pc)
	} else {
		index = vectorindex.NewMemoryIndex()
	}
	ix := indexer.NewIndexer(index, indexer.NewHashEmbedder(), log)
	articleSvc := article.NewService(articleStore, userStore, ix, gen, log)

	// the worker side never enqueues, so no queue client
	docService := document.NewService(
		documentStore,
		blobs,
		nil,
		extractor.NewExtractor(log),
		gen,
		articleSvc,
		cfg.TargetLanguage,
		log,
	)

	redisCfg := config.GetRedisConfig()
	w := worker.New(&worker.Config{
		RedisAddr:   redisCfg.Addr,
		RedisDB:     redisCfg.DB,
		Concurrency: 10,
	}, docService, log)

	// stop the worker on interrupt
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("Shutting down worker...")
		cancel()
	}()

	if err := w.Run(ctx); err != nil {
		log.Error("Worker stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("Worker stopped")
}
