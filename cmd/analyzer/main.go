package main

import (
	"flag"

	"go.uber.org/zap"

	"attrition/internal/config"
	"attrition/internal/data"
	"attrition/internal/evaluation"
	"attrition/internal/features"
	"attrition/internal/report"
	"attrition/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "", "Config file (yaml|toml|json)")
	dataPath := flag.String("data", "data/employees.csv", "Employee CSV")
	points := flag.Int("points", 8, "Number of points on the curve")
	minSize := flag.Int("min_size", 20, "Smallest training size")
	outImg := flag.String("out_img", "data/learning_curve.png", "PNG output")
	outCsv := flag.String("out_csv", "data/learning_curve.csv", "CSV output")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		utils.Logger().Fatal("load config", zap.Error(err))
	}
	logger := utils.NewLogger(cfg.LogOptions())
	defer logger.Sync()

	records, err := data.LoadEmployees(*dataPath)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}
	if len(records) == 0 {
		logger.Fatal("empty dataset", zap.String("path", *dataPath))
	}

	rng := cfg.Rand()
	train, test := evaluation.TrainTestSplit(features.BuildTrainingSet(records), cfg.Training.TestFraction, rng)
	if len(train) == 0 || len(test) == 0 {
		logger.Fatal("dataset too small to split", zap.Int("records", len(records)))
	}
	sizes := report.CurveSizes(len(train), *points, *minSize)

	curve, err := report.LearningCurve(train, test, sizes, cfg.TrainerConfig(), rng)
	if err != nil {
		logger.Fatal("learning curve", zap.Error(err))
	}
	for _, p := range curve {
		logger.Info("curve point",
			zap.Int("size", p.Size),
			zap.Float64("rf_acc", p.RandomForest.Accuracy),
			zap.Float64("et_acc", p.ExtraTrees.Accuracy),
			zap.Float64("rf_f1", p.RandomForest.F1),
			zap.Float64("et_f1", p.ExtraTrees.F1),
		)
	}

	if err := report.SaveCurveCSV(*outCsv, curve); err != nil {
		logger.Fatal("write curve csv", zap.Error(err))
	}
	if err := report.PlotCurve(*outImg, curve); err != nil {
		logger.Fatal("plot curve", zap.Error(err))
	}
	logger.Info("learning curve written", zap.String("csv", *outCsv), zap.String("png", *outImg))
}
