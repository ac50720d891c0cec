package handlers

import (
	"context"
	"errors"

	"movie-loader/internal/services"
	"movie-loader/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Presigner issues upload URLs for new import files.
type Presigner interface {
	PresignUpload(ctx context.Context, filename string) (string, string, error)
}

type ImportHandler struct {
	service   services.ImportService
	presigner Presigner
	logger    *logrus.Logger
}

// NewImportHandler builds the handler. presigner is nil when imports are read
// from local disk, which also disables choosing a source per request.
func NewImportHandler(service services.ImportService, presigner Presigner, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		service:   service,
		presigner: presigner,
		logger:    logger,
	}
}

// RunImport godoc
// @Summary Run a full reload
// @Description Clear the store and load every record of the source file
// @Tags imports
// @Accept json
// @Produce json
// @Param request body ImportRequest false "Optional object key in the import bucket"
// @Success 200 {object} utils.StandardResponse "Import report"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 409 {object} utils.StandardResponse "Import already running"
// @Failure 500 {object} utils.StandardResponse "Import failed"
// @Router /imports [post]
func (h *ImportHandler) RunImport(c *fiber.Ctx) error {
	var req ImportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	if req.Object != "" && h.presigner == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "object is only supported with an import bucket")
	}

	report, err := h.service.Run(c.UserContext(), req.Object)
	if err != nil {
		if errors.Is(err, services.ErrImportInProgress) {
			return utils.ErrorResponse(c, fiber.StatusConflict, err.Error())
		}
		h.logger.WithError(err).Error("Import failed")
		return utils.ErrorWithDataResponse(c, fiber.StatusInternalServerError, "Import failed", report)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Import completed successfully", report)
}

// GetLastImport godoc
// @Summary Get the last import report
// @Tags imports
// @Produce json
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /imports/last [get]
func (h *ImportHandler) GetLastImport(c *fiber.Ctx) error {
	report := h.service.LastReport()
	if report == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No import has run yet")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Last import retrieved successfully", report)
}

// GetPresignedURL godoc
// @Summary Get presigned URL for uploading an import file
// @Tags imports
// @Produce json
// @Param filename query string true "Filename"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 503 {object} utils.StandardResponse
// @Router /imports/presign [get]
func (h *ImportHandler) GetPresignedURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	presignedURL, object, err := h.presigner.PresignUpload(c.UserContext(), filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", PresignResponse{
		PresignedURL: presignedURL,
		Object:       object,
	})
}
