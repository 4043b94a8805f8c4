package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
	"github.com/leftsolutions/transactions_processor/internal/dto"
	"github.com/leftsolutions/transactions_processor/internal/middleware"
)

// importHandler handles HTTP requests related to monthly imports
type importHandler struct {
	importService portssvc.TransactionImportSvcFacade
	jobService    portssvc.ImportJobSvcFacade
}

// newImportHandler creates a new importHandler
func newImportHandler(is portssvc.TransactionImportSvcFacade, js portssvc.ImportJobSvcFacade) *importHandler {
	return &importHandler{importService: is, jobService: js}
}

// registerImportRoutes registers routes related to monthly imports. The
// import command route additionally runs the given middlewares (rate limit).
func registerImportRoutes(rg *gin.RouterGroup, is portssvc.TransactionImportSvcFacade, js portssvc.ImportJobSvcFacade, commandMiddlewares ...gin.HandlerFunc) {
	h := newImportHandler(is, js)

	imports := rg.Group("/imports")
	{
		handlerChain := append(commandMiddlewares, h.importMonth)
		imports.POST("/:month", handlerChain...)
		imports.GET("/months/:month/status", h.status)
	}
}

// importMonth godoc
// @Summary Import a month's transactions from a CSV file
// @Description Validates each row of the uploaded CSV and atomically replaces the month's transactions. By default the import runs in the background and the current job status is returned; pass wait=true to block until it finishes.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param month path string true "Target month (YYYY-MM)"
// @Param file formData file true "CSV file (iban,date,currency,category,amount)"
// @Param wait query bool false "Block until the import finishes" default(false)
// @Success 202 {object} dto.ImportJobStatusResponse "Import accepted"
// @Success 200 {object} dto.ImportJobStatusResponse "Import finished (wait=true)"
// @Failure 400 {object} map[string]string "Invalid month or file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Import already in progress"
// @Failure 503 {object} map[string]string "Import queue full"
// @Security BearerAuth
// @Router /imports/{month} [post]
func (h *importHandler) importMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := domain.ParsePeriod(c.Param("month"))
	if err != nil {
		logger.Warn("Invalid month in import path", slog.String("month", c.Param("month")))
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_MONTH_FORMAT", "message": "Expected format: yyyy-MM"})
		return
	}

	workspaceID, ok := middleware.GetWorkspaceIDFromContext(c)
	if !ok {
		logger.Error("Workspace ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Import request without file part", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart part 'file' is required"})
		return
	}

	logger = logger.With(
		slog.String("month", period.String()),
		slog.String("filename", fileHeader.Filename),
	)
	logger.Info("Received import request")

	if c.Query("wait") == "true" {
		h.importAndWait(c, workspaceID, period, fileHeader)
		return
	}

	// Copy the upload to a temp file so it outlives the request; the worker
	// removes it when done.
	csvPath := filepath.Join(os.TempDir(), "import-"+uuid.NewString()+".csv")
	if err := c.SaveUploadedFile(fileHeader, csvPath); err != nil {
		logger.Error("Failed to spool uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	job, err := h.importService.ImportMonthlyAsync(c.Request.Context(), workspaceID, period, csvPath)
	if err != nil {
		respondImportError(c, logger, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToImportJobStatusResponse(job))
}

func (h *importHandler) importAndWait(c *gin.Context, workspaceID string, period domain.Period, fileHeader *multipart.FileHeader) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	job, err := h.importService.ImportMonthly(c.Request.Context(), workspaceID, period, file)
	if err != nil {
		respondImportError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToImportJobStatusResponse(job))
}

// respondImportError maps service errors on the import command path.
func respondImportError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyProcessing):
		logger.Warn("Import already in progress")
		c.JSON(http.StatusConflict, gin.H{"error": "Import already in progress for this month"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Import rejected by validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": appErrorMessage(err, "Invalid CSV input")})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusServiceUnavailable {
			logger.Warn("Import queue full")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Import failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
	}
}

// status godoc
// @Summary Get the import job status for a month
// @Description Returns the durable import job for the caller's workspace and month. A month never imported is reported with state NOT_FOUND.
// @Tags imports
// @Produce json
// @Param month path string true "Target month (YYYY-MM)"
// @Success 200 {object} dto.ImportJobStatusResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /imports/months/{month}/status [get]
func (h *importHandler) status(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := domain.ParsePeriod(c.Param("month"))
	if err != nil {
		logger.Warn("Invalid month in status path", slog.String("month", c.Param("month")))
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_MONTH_FORMAT", "message": "Expected format: yyyy-MM"})
		return
	}

	workspaceID, ok := middleware.GetWorkspaceIDFromContext(c)
	if !ok {
		logger.Error("Workspace ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	job, err := h.jobService.GetStatus(c.Request.Context(), workspaceID, period)
	if err != nil {
		logger.Error("Failed to fetch import job status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch import status"})
		return
	}

	c.JSON(http.StatusOK, dto.ToImportJobStatusResponse(job))
}

// appErrorMessage returns the AppError message when present, otherwise the
// fallback, keeping raw wrapped causes out of API responses.
func appErrorMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
