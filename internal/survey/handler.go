package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"survey-portal/survey-portal-backend/internal/survey/export"
)

// Multipart field names of the report upload.
const (
	formFieldReport = "report"
	formFieldImages = "images"
	formFieldTitles = "image_titles"
)

type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	surveys := rg.Group("/surveys")
	{
		surveys.POST("/report", h.GenerateReport)
		surveys.GET("/observations", h.ListObservations)
	}
}

// GenerateReport accepts either a JSON survey form or a multipart upload with
// the form under "report" and photos under "images".
func (h *Handler) GenerateReport(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var (
		req ReportRequest
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		req, err = h.bindMultipart(c)
	} else {
		err = c.ShouldBindJSON(&req.Form)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request exceeds %d bytes", tooLarge.Limit)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.GenerateReport(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to generate survey report",
			zap.String("container_no", req.Form.ContainerNo), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Header("X-Report-Pages", strconv.Itoa(doc.Pages))
	c.Header("X-Report-Warnings", strconv.Itoa(len(doc.Warnings)))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

func (h *Handler) bindMultipart(c *gin.Context) (ReportRequest, error) {
	var req ReportRequest

	form, err := c.MultipartForm()
	if err != nil {
		return req, err
	}

	raw := form.Value[formFieldReport]
	if len(raw) == 0 || strings.TrimSpace(raw[0]) == "" {
		return req, fmt.Errorf("%s field is required", formFieldReport)
	}
	if err := json.Unmarshal([]byte(raw[0]), &req.Form); err != nil {
		return req, fmt.Errorf("invalid %s field: %w", formFieldReport, err)
	}

	titles := form.Value[formFieldTitles]
	for i, fh := range form.File[formFieldImages] {
		data, err := readUpload(fh)
		if err != nil {
			return req, err
		}
		title := ""
		if i < len(titles) {
			title = strings.TrimSpace(titles[i])
		}
		req.Images = append(req.Images, export.AttachmentSource{Name: fh.Filename, Title: title, Data: data})
	}
	return req, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return data, nil
}

func (h *Handler) ListObservations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"observations": h.service.Observations()})
}
