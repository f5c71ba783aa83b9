package http

import (
	"errors"
	"net/http"

	"sales-intel-scryper/internal/intel/dto"
	"sales-intel-scryper/internal/intel/repository"
	"sales-intel-scryper/internal/intel/service"
	"sales-intel-scryper/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IntelHandler handles HTTP requests for company intelligence.
type IntelHandler struct {
	intelService service.IntelService
	logger       *logger.Logger
}

// NewIntelHandler creates a new IntelHandler.
func NewIntelHandler(intelService service.IntelService, logger *logger.Logger) *IntelHandler {
	return &IntelHandler{intelService: intelService, logger: logger}
}

// RegisterRoutes registers the intelligence routes to the Echo group.
func (h *IntelHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:company", h.GetIntelligence)
	g.DELETE("/:company/cache", h.InvalidateCache)
}

// GetIntelligence godoc
// @Summary Get SEC intelligence for a company
// @Description Resolve a company name or ticker and return its composed SEC intelligence
// @Tags intelligence
// @Produce  json
// @Param   company  path    string  true   "Company name or ticker"
// @Param   refresh  query   bool    false  "Bypass the cache and re-run the pipeline"
// @Success 200 {object} dto.IntelligenceResponse
// @Success 404 {object} dto.NotApplicableResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /intelligence/{company} [get]
func (h *IntelHandler) GetIntelligence(c echo.Context) error {
	company := c.Param("company")
	if company == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Company name or ticker is required"})
	}
	forceRefresh := c.QueryParam("refresh") == "true"

	data, err := h.intelService.GetIntelligence(c.Request().Context(), company, forceRefresh)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			// Not an error condition: the company is simply not a regulated
			// filer, so SEC intelligence does not apply.
			return c.JSON(http.StatusNotFound, dto.NotApplicableResponse{
				Company: company,
				Message: "No SEC registration found for this company",
			})
		}
		h.logger.Error("Failed to get intelligence", logger.StringField("company", company), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve SEC intelligence"})
	}

	return c.JSON(http.StatusOK, dto.IntelligenceResponse{Data: data})
}

// InvalidateCache godoc
// @Summary Invalidate the cached intelligence for a company
// @Description Delete the whole cache entry; the next request re-runs the pipeline
// @Tags intelligence
// @Produce  json
// @Param   company  path    string  true   "Company name or ticker"
// @Success 204 {object} nil
// @Failure 404 {object} dto.NotApplicableResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /intelligence/{company}/cache [delete]
func (h *IntelHandler) InvalidateCache(c echo.Context) error {
	company := c.Param("company")
	if company == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Company name or ticker is required"})
	}

	if err := h.intelService.InvalidateCache(c.Request().Context(), company); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, dto.NotApplicableResponse{
				Company: company,
				Message: "No SEC registration found for this company",
			})
		}
		h.logger.Error("Failed to invalidate cache", logger.StringField("company", company), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to invalidate cache"})
	}

	return c.NoContent(http.StatusNoContent)
}
