package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ImportHandler accepts bank statement uploads.
type ImportHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer, auditService services.AuditServicer) *ImportHandler {
	return &ImportHandler{importService: importService, auditService: auditService}
}

// ImportTransactions imports a bank statement
// @Summary     Import bank statement
// @Description Upload a CSV or XLSX statement from a supported bank. Debits become expenses, credits become incomes. The import is all or nothing.
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "Statement file (.csv or .xlsx)"
// @Success     201 {object} services.ImportResult "Import committed"
// @Failure     400 {object} ErrorResponse "Missing file, unsupported file or unparseable row"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /import-transactions [post]
func (h *ImportHandler) ImportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(c, apperrors.ErrFileTooLarge)
			return
		}
		respondWithError(c, apperrors.ErrNoFile)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	result, err := h.importService.ImportStatement(userID, header.Filename, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "IMPORT_STATEMENT", "statement", "", c.ClientIP(),
		map[string]interface{}{
			"bank":     result.Bank,
			"filename": header.Filename,
			"expenses": result.Expenses,
			"incomes":  result.Incomes,
		})

	c.JSON(http.StatusCreated, gin.H{
		"message": importMessage(result),
		"result":  result,
	})
}

func importMessage(result *services.ImportResult) string {
	return fmt.Sprintf("Successfully imported %d transactions from %s.", result.Imported, result.Bank)
}
