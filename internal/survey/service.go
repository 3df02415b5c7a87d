package survey

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"survey-portal/survey-portal-backend/internal/survey/export"
)

type Service interface {
	GenerateReport(ctx context.Context, req ReportRequest) (*export.Document, error)
	Observations() []string
}

type surveyService struct {
	loader    *export.AssetLoader
	generator *export.Generator
	assets    AssetPaths
	logger    *zap.Logger
}

func NewService(loader *export.AssetLoader, generator *export.Generator, assets AssetPaths, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &surveyService{
		loader:    loader,
		generator: generator,
		assets:    assets,
		logger:    logger,
	}
}

func (s *surveyService) GenerateReport(ctx context.Context, req ReportRequest) (*export.Document, error) {
	set, err := s.loader.Load(ctx, export.AssetRequest{
		Background:  s.assets.Background,
		Signature:   s.assets.Signature,
		Attachments: req.Images,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load report assets: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := req.Form.ReportData()
	doc, err := s.generator.Generate(data, set)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report for %q: %w", data.Reference, err)
	}

	for _, w := range doc.Warnings {
		s.logger.Debug("Report degraded", zap.String("generation_id", doc.ID), zap.String("warning", w))
	}
	return doc, nil
}

func (s *surveyService) Observations() []string {
	return StandardObservations()
}
