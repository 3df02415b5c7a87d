package v1

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"survey-portal/survey-portal-backend/internal/config"
	"survey-portal/survey-portal-backend/internal/survey"
	"survey-portal/survey-portal-backend/internal/survey/export"
	"survey-portal/survey-portal-backend/pkg/storage"
)

// SurveysAPI holds the survey report API dependencies
type SurveysAPI struct {
	Handler *survey.Handler
	source  export.AssetSource
}

// SetupSurveysAPI wires the asset source, loader and generator from cfg.
// Close releases the asset source once the server has stopped.
func SetupSurveysAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*SurveysAPI, error) {
	source, err := NewAssetSource(ctx, cfg.Assets)
	if err != nil {
		return nil, err
	}
	service := NewSurveyService(source, cfg, logger)
	return &SurveysAPI{
		Handler: survey.NewHandler(service, cfg.Server.MaxUploadBytes, logger),
		source:  source,
	}, nil
}

// Close stops the asset cache, if one is running.
func (a *SurveysAPI) Close() error {
	return CloseAssetSource(a.source)
}

// NewSurveyService builds the generation service without the HTTP layer.
func NewSurveyService(source export.AssetSource, cfg *config.Config, logger *zap.Logger) survey.Service {
	loader := export.NewAssetLoader(source, cfg.Assets.Loader, logger)
	generator := export.NewGenerator(cfg.Report, logger)
	return survey.NewService(loader, generator, cfg.Assets.Paths, logger)
}

// CloseAssetSource closes sources that hold background resources.
func CloseAssetSource(source export.AssetSource) error {
	if c, ok := source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewAssetSource opens the configured letterhead store, cached when
// cfg.CacheTTL is set.
func NewAssetSource(ctx context.Context, cfg config.AssetsConfig) (export.AssetSource, error) {
	source, err := newAssetSource(ctx, cfg)
	if err != nil || cfg.CacheTTL <= 0 {
		return source, err
	}
	return export.NewCachedSource(source, cfg.CacheTTL), nil
}

func newAssetSource(ctx context.Context, cfg config.AssetsConfig) (export.AssetSource, error) {
	switch cfg.Source {
	case config.SourceDir:
		return export.DirSource(cfg.Dir), nil
	case config.SourceS3:
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			Region:          cfg.Region,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Endpoint:        cfg.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return export.NewBucketSource(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown assets source %q", cfg.Source)
	}
}

// RegisterSurveysRoutes registers the survey routes on the router group
func RegisterSurveysRoutes(router *gin.RouterGroup, api *SurveysAPI) {
	api.Handler.RegisterRoutes(router)
}
