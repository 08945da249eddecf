package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cvboost/scoring-system/internal/api/metrics"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

// AnalysisHandler handles HTTP requests for scan, fetch, optimize, and
// compare operations. Domain errors bubble to the central error handler.
type AnalysisHandler struct {
	service ports.AnalysisService
}

func NewAnalysisHandler(service ports.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// ScanResume handles POST /v1/analyses/resume.
//
// @Summary      Score a résumé
// @Tags         analyses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scanResumeRequest  true  "Résumé text"
// @Success      201   {object}  scanResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/analyses/resume [post]
func (h *AnalysisHandler) ScanResume(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req scanResumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.ScanResume(c.Request().Context(), ports.ScanResumeInput{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}

	metrics.ScansTotal.WithLabelValues(string(result.Kind)).Inc()
	return c.JSON(http.StatusCreated, toScanResponse(result))
}

// ScanProfile handles POST /v1/analyses/profile.
//
// @Summary      Score a professional profile
// @Tags         analyses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scanProfileRequest  true  "Profile fields"
// @Success      201   {object}  scanResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/analyses/profile [post]
func (h *AnalysisHandler) ScanProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req scanProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.ScanProfile(c.Request().Context(), ports.ScanProfileInput{
		UserID:  userID,
		Profile: toProfileFields(req),
	})
	if err != nil {
		return err
	}

	metrics.ScansTotal.WithLabelValues(string(result.Kind)).Inc()
	return c.JSON(http.StatusCreated, toScanResponse(result))
}

// Get handles GET /v1/analyses/:id.
//
// @Summary      Get an analysis by id
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis id"
// @Success      200  {object}  domain.Analysis
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/analyses/{id} [get]
func (h *AnalysisHandler) Get(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	analysis, err := h.service.Get(c.Request().Context(), ports.GetAnalysisInput{
		ID:     c.Param("id"),
		Role:   role,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analysis)
}

// List handles GET /v1/analyses.
//
// @Summary      List analyses for the authenticated user
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Param        kind    query     string  false  "Filter by kind (resume|profile)"
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listAnalysesResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/analyses [get]
func (h *AnalysisHandler) List(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListAnalysesInput{
		Role:   role,
		UserID: userID,
		Kind:   c.QueryParam("kind"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listAnalysesResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Optimize handles POST /v1/analyses/:id/optimize.
//
// @Summary      Generate an optimized variant of an analyzed document
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis id"
// @Success      200  {object}  optimizeResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/analyses/{id}/optimize [post]
func (h *AnalysisHandler) Optimize(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Optimize(c.Request().Context(), ports.GetAnalysisInput{
		ID:     c.Param("id"),
		Role:   role,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, optimizeResponse{
		ID:      result.ID,
		Kind:    string(result.Kind),
		Content: result.Content,
		Profile: result.Profile,
		Cached:  result.Cached,
	})
}

// Compare handles GET /v1/analyses/:id/compare.
//
// @Summary      Compare original and optimized scores
// @Tags         analyses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Analysis id"
// @Success      200  {object}  domain.Comparison
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/analyses/{id}/compare [get]
func (h *AnalysisHandler) Compare(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	comparison, err := h.service.Compare(c.Request().Context(), ports.GetAnalysisInput{
		ID:     c.Param("id"),
		Role:   role,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comparison)
}
