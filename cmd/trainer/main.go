package main

import (
	"errors"
	"flag"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"attrition/internal/config"
	"attrition/internal/data"
	"attrition/internal/models"
	"attrition/internal/report"
	"attrition/internal/training"
	"attrition/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "", "Config file (yaml|toml|json)")
	dataPath := flag.String("data", "data/employees.csv", "Employee CSV")
	regen := flag.Bool("regen", false, "Regenerate the synthetic dataset before training")
	n := flag.Int("n", 2000, "Number of synthetic records")
	labeled := flag.Float64("labeled", 0.6, "Share of synthetic records with an explicit resignation flag")
	seed := flag.Int64("seed", 0, "Seed for generation, split and fitting; 0 keeps the configured seed")
	estimators := flag.Int("estimators", 0, "Trees per ensemble; 0 keeps the configured value")
	maxDepth := flag.Int("max_depth", 0, "Maximum tree depth; 0 keeps the configured value")
	minSamples := flag.Int("min_samples", 0, "Minimum samples to split; 0 keeps the configured value")
	maxFeatures := flag.String("max_features", "", "Features per split: sqrt|log2|all|<n>")
	importanceOut := flag.String("importance_out", "data/feature_importance.png", "PNG of feature importances, empty to skip")
	metricsOut := flag.String("metrics_out", "data/metrics.csv", "CSV of evaluation metrics, empty to skip")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		utils.Logger().Fatal("load config", zap.Error(err))
	}
	logger := utils.NewLogger(cfg.LogOptions())
	defer logger.Sync()

	if *seed != 0 {
		cfg.Training.Seed = *seed
	}
	if *estimators > 0 {
		cfg.Forest.NEstimators = *estimators
	}
	if *maxDepth > 0 {
		cfg.Forest.MaxDepth = *maxDepth
	}
	if *minSamples > 0 {
		cfg.Forest.MinSamplesSplit = *minSamples
	}
	if *maxFeatures != "" {
		if _, err := models.ParseMaxFeatures(*maxFeatures); err != nil {
			logger.Fatal("invalid -max_features", zap.Error(err))
		}
		cfg.Forest.MaxFeatures = *maxFeatures
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	rng := cfg.Rand()

	if *regen {
		logger.Info("generating synthetic dataset", zap.Int("n", *n), zap.String("out", *dataPath))
		recs := data.GenerateEmployees(*n, *labeled, rand.New(rand.NewSource(rng.Int63())))
		if err := data.SaveEmployees(*dataPath, recs); err != nil {
			logger.Fatal("save dataset", zap.Error(err))
		}
	}

	records, err := data.LoadEmployees(*dataPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Fatal("dataset not found, run with -regen", zap.String("path", *dataPath))
	}
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}

	res, err := training.NewTrainer(cfg.TrainerConfig(), rng, logger).TrainModels(records)
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}
	for _, info := range []training.ModelInfo{res.RandomForest, res.ExtraTrees} {
		logger.Info("feature importance",
			zap.String("model", info.Name),
			zap.Any("importance", info.FeatureImportances),
		)
	}
	logger.Info("best model", zap.String("model", res.Best()))

	if *metricsOut != "" {
		if err := report.SaveMetricsCSV(*metricsOut, res); err != nil {
			logger.Error("write metrics", zap.Error(err))
		} else {
			logger.Info("metrics written", zap.String("path", *metricsOut))
		}
	}
	if *importanceOut != "" {
		if err := report.PlotImportances(*importanceOut, res); err != nil {
			logger.Error("plot importances", zap.Error(err))
		} else {
			logger.Info("importance chart written", zap.String("path", *importanceOut))
		}
	}
}
