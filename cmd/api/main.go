package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/orbsocial/backend/internal/analysis/conversation"
	scoring "github.com/orbsocial/backend/internal/analysis/emotion"
	"github.com/orbsocial/backend/internal/config"
	"github.com/orbsocial/backend/internal/handler"
	"github.com/orbsocial/backend/internal/model/feedback"
	"github.com/orbsocial/backend/internal/model/profile"
	analysisservice "github.com/orbsocial/backend/internal/service/analysis"
	"github.com/orbsocial/backend/internal/service/classifier"
	feedbackservice "github.com/orbsocial/backend/internal/service/feedback"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// 规则打分器与会话上下文分析器
	scorer := scoring.NewScorer(scoring.Weights{
		Strong:    cfg.Analysis.StrongWeight,
		Moderate:  cfg.Analysis.ModerateWeight,
		Booster:   cfg.Analysis.BoosterWeight,
		TieMargin: cfg.Analysis.TieMargin,
	})
	profiles := profile.NewMemoryStore()
	conversations := conversation.NewAnalyzer(cfg.Analysis.WindowSize, profiles)

	// 外部分类器依赖大模型实例，凭证缺失时只走规则通路
	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing with rule-based analysis only - 请检查 Ark 模型相关环境变量")
			chatModel = nil
		}
	} else {
		log.Println("Ark 凭证未配置，跳过外部分类器初始化")
	}

	classifierSvc, err := classifier.NewService(ctx, chatModel, classifier.Config{
		Enabled: cfg.AI.ClassifierEnabled,
		Timeout: cfg.AI.ClassifierTimeout,
	})
	if err != nil {
		log.Printf("warning: failed to initialize classifier service: %v", err)
		classifierSvc = nil
	}
	switch {
	case classifierSvc != nil && classifierSvc.Enabled():
		log.Println("External emotion classifier enabled")
	case cfg.AI.ClassifierEnabled:
		log.Println("External classifier requested but chat model unavailable, falling back to rules")
	default:
		log.Println("External classifier disabled by configuration")
	}

	var externalClassifier analysisservice.Classifier
	if classifierSvc != nil {
		externalClassifier = classifierSvc
	}

	analysisSvc := analysisservice.NewService(scorer, externalClassifier, conversations, profiles, analysisservice.Config{
		MaxTextLength: cfg.Analysis.MaxTextLength,
	})
	feedbackSvc := feedbackservice.NewService(feedback.NewMemoryRepository())

	router := handler.NewRouter(analysisSvc, feedbackSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("OrbSocial emotion backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
