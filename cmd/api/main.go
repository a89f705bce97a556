package main

import (
	"flag"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attrition/internal/config"
	"attrition/internal/documents"
	"attrition/internal/metrics"
	"attrition/internal/training"
	"attrition/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "", "Config file (yaml|toml|json)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		utils.Logger().Fatal("load config", zap.Error(err))
	}
	logger := utils.NewLogger(cfg.LogOptions())
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)
	srv := &server{
		trainer:  training.NewTrainer(cfg.TrainerConfig(), cfg.Rand(), logger),
		registry: training.NewRegistry(),
		docs:     documents.Default(),
		metrics:  metrics.New(),
		logger:   logger,
		apiKey:   cfg.Server.APIKey,
	}
	r := srv.router()

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	logger.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
