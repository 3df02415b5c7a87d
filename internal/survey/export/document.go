package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"survey-portal/survey-portal-backend/pkg/pdf"
)

// Names under which images are registered with the surface.
const (
	backgroundImage = "background"
	signatureImage  = "signature"
)

const (
	fileNamePrefix   = "empty_container_survey_"
	fileNameFallback = "report"
	documentCreator  = "survey-portal"
)

// Generator lays out survey reports. It holds no per-report state, so one
// Generator may serve concurrent calls.
type Generator struct {
	cfg        LayoutConfig
	logger     *zap.Logger
	newSurface func(width, height float64, opts pdf.Options) Surface
}

// NewGenerator creates a generator with the given layout.
func NewGenerator(cfg LayoutConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:    cfg,
		logger: logger,
		newSurface: func(width, height float64, opts pdf.Options) Surface {
			return pdf.NewCanvas(width, height, opts)
		},
	}
}

// Generate renders the report onto pages sized after the background image
// and returns the encoded document. It fails only when the layout is
// invalid or the background cannot be used; both are detected before the
// first page is created.
func (g *Generator) Generate(data *ReportData, assets *AssetSet) (*Document, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if assets == nil || assets.Background == nil {
		return nil, ErrBackgroundMissing
	}
	if data == nil {
		data = &ReportData{}
	}

	bg := assets.Background
	width, height := float64(bg.Width), float64(bg.Height)
	if err := g.cfg.validateCanvas(width, height); err != nil {
		return nil, err
	}

	surface := g.newSurface(width, height, pdf.Options{
		Title:    g.cfg.Text.Title,
		Creator:  documentCreator,
		Compress: g.cfg.Compress,
	})
	if err := surface.RegisterImage(backgroundImage, bg.Format, bg.Data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBackgroundInvalid, bg.Name, err)
	}

	id := uuid.NewString()
	logger := g.logger.With(zap.String("generation_id", id))
	r := &renderer{
		surface:  surface,
		cfg:      g.cfg,
		logger:   logger,
		warnings: append([]string(nil), assets.Warnings...),
	}

	if sig := assets.Signature; sig != nil {
		if err := surface.RegisterImage(signatureImage, sig.Format, sig.Data); err != nil {
			r.warn(fmt.Sprintf("signature %s could not be embedded: %v", sig.Name, err), zap.String("asset", sig.Name))
		}
	}

	var gallery []galleryItem
	for i, a := range assets.Attachments {
		if a.Raster == nil {
			continue
		}
		name := fmt.Sprintf("attachment-%d", i+1)
		if err := surface.RegisterImage(name, a.Raster.Format, a.Raster.Data); err != nil {
			r.warn(fmt.Sprintf("attachment %s could not be embedded: %v", a.Raster.Name, err), zap.String("asset", a.Raster.Name))
			continue
		}
		gallery = append(gallery, galleryItem{name: name, raster: a.Raster, title: a.Title})
	}

	r.layout = NewLayout(surface, g.cfg, backgroundImage)
	r.layout.CreatePage()

	r.renderTitle()
	r.renderIntro()
	r.renderFields(data.Fields)
	r.renderObservations(data.Observations)
	r.renderRemarks(data.Remarks)
	r.renderFooter(data.Footer)
	r.renderSignature(surface.HasImage(signatureImage))
	r.renderGallery(gallery)

	out, err := surface.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	doc := &Document{
		ID:       id,
		Data:     out,
		FileName: FileName(data.Reference),
		Pages:    r.layout.Pages(),
		Warnings: r.warnings,
	}
	logger.Info("Survey report generated",
		zap.String("file_name", doc.FileName),
		zap.Int("pages", doc.Pages),
		zap.Int("attachments", len(gallery)),
		zap.Int("warnings", len(doc.Warnings)),
		zap.Int("bytes", len(out)))
	return doc, nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeName    = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// FileName derives the download name from the report reference, e.g.
// "MSKU 123 456" becomes "empty_container_survey_MSKU_123_456.pdf".
func FileName(reference string) string {
	id := whitespaceRun.ReplaceAllString(strings.TrimSpace(reference), "_")
	id = unsafeName.ReplaceAllString(id, "")
	id = strings.TrimLeft(id, ".")
	if id == "" {
		id = fileNameFallback
	}
	return fileNamePrefix + id + ".pdf"
}
