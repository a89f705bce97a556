package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attrition/internal/data"
	"attrition/internal/documents"
	"attrition/internal/metrics"
	"attrition/internal/training"
)

type server struct {
	trainer  *training.Trainer
	registry *training.Registry
	docs     *documents.NaiveBayes
	metrics  *metrics.Metrics
	logger   *zap.Logger
	apiKey   string
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/")
	api.Use(s.apiKeyMiddleware)
	api.POST("/train", s.handleTrain)
	api.GET("/models", s.handleModels)
	api.POST("/predict", s.handlePredict)
	api.POST("/batch", s.handleBatch)
	api.POST("/classify", s.handleClassify)
	api.POST("/classify/batch", s.handleClassifyBatch)
	return r
}

func (s *server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()
	elapsed := time.Since(start)
	s.metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), elapsed)
	s.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("elapsed", elapsed),
	)
}

func (s *server) apiKeyMiddleware(c *gin.Context) {
	if s.apiKey == "" {
		c.Next()
		return
	}
	if c.GetHeader("X-API-Key") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

type trainReq struct {
	Records []data.Employee `json:"records" binding:"required,min=1,dive"`
}

func (s *server) handleTrain(c *gin.Context) {
	var req trainReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start := time.Now()
	res, err := s.trainer.TrainModels(req.Records)
	if err != nil {
		s.metrics.ObserveTraining(time.Since(start), nil, err)
		status := http.StatusInternalServerError
		if errors.Is(err, training.ErrNoRecords) || errors.Is(err, training.ErrEmptySplit) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Warn("training failed", zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.registry.Store(res)
	s.metrics.ObserveTraining(time.Since(start), map[string]float64{
		res.RandomForest.Name: res.RandomForest.F1Score / 100,
		res.ExtraTrees.Name:   res.ExtraTrees.F1Score / 100,
	}, nil)
	c.JSON(http.StatusOK, gin.H{
		"randomForest": res.RandomForest,
		"extraTrees":   res.ExtraTrees,
		"bestModel":    res.Best(),
	})
}

func (s *server) handleModels(c *gin.Context) {
	rf, et, ok := s.registry.Snapshot()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"trained": false})
		return
	}
	best, _ := s.registry.Best()
	c.JSON(http.StatusOK, gin.H{
		"trained":      true,
		"randomForest": rf,
		"extraTrees":   et,
		"bestModel":    best.Name(),
	})
}

func (s *server) handlePredict(c *gin.Context) {
	var req data.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.predict(req))
}

func (s *server) handleBatch(c *gin.Context) {
	var items []data.Employee
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := make([]training.Prediction, len(items))
	for i := range items {
		out[i] = s.predict(items[i])
	}
	c.JSON(http.StatusOK, out)
}

type classifyReq struct {
	Filename string `json:"filename"`
}

func (s *server) handleClassify(c *gin.Context) {
	var req classifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := s.docs.Classify(req.Filename)
	s.metrics.ObserveClassification(string(res.Category))
	c.JSON(http.StatusOK, res)
}

type classifyBatchReq struct {
	Filenames []string `json:"filenames" binding:"required"`
}

func (s *server) handleClassifyBatch(c *gin.Context) {
	var req classifyBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := s.docs.ClassifyBatch(req.Filenames)
	for _, res := range out {
		s.metrics.ObserveClassification(string(res.Category))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) predict(e data.Employee) training.Prediction {
	p := s.registry.PredictWithBestModel(e)
	s.metrics.ObservePrediction(p.ModelUsed)
	return p
}
