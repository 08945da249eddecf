package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

// AccountHandler serves the plan/usage snapshot and the admin plan override.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type usageResponse struct {
	ResumeScans  int       `json:"resume_scans"`
	ProfileScans int       `json:"profile_scans"`
	ScanLimit    int       `json:"scan_limit"`
	ResetAt      time.Time `json:"reset_at"`
}

type entitlementsResponse struct {
	ResumeScan     bool `json:"resume_scan"`
	ProfileScan    bool `json:"profile_scan"`
	ContentExport  bool `json:"content_export"`
	APIAccess      bool `json:"api_access"`
	ComparisonView bool `json:"comparison_view"`
}

type accountResponse struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Plan         string               `json:"plan"`
	PlanStatus   string               `json:"plan_status"`
	PlanExpires  *time.Time           `json:"plan_expires,omitempty"`
	Usage        usageResponse        `json:"usage"`
	Entitlements entitlementsResponse `json:"entitlements"`
}

type overridePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free one_time basic pro"`
}

func toAccountResponse(u *domain.User, now time.Time) accountResponse {
	limit, ok := domain.ScanLimit(u.Plan)
	if !ok {
		limit = 0
	}
	usage := u.Usage.Current(now)
	return accountResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		Plan:        string(u.Plan),
		PlanStatus:  string(u.PlanStatus),
		PlanExpires: u.PlanExpires,
		Usage: usageResponse{
			ResumeScans:  usage.ResumeScans,
			ProfileScans: usage.ProfileScans,
			ScanLimit:    limit,
			ResetAt:      usage.ResetAt,
		},
		Entitlements: entitlementsResponse{
			ResumeScan:     u.CanPerform(domain.ActionResumeScan, now),
			ProfileScan:    u.CanPerform(domain.ActionProfileScan, now),
			ContentExport:  u.CanPerform(domain.ActionContentExport, now),
			APIAccess:      u.CanPerform(domain.ActionAPIAccess, now),
			ComparisonView: u.CanPerform(domain.ActionComparisonView, now),
		},
	}
}

// Get handles GET /v1/account — the authenticated user's plan and usage.
//
// @Summary      Get the current account snapshot
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/account [get]
func (h *AccountHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Snapshot(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(user, time.Now().UTC()))
}

// OverridePlan handles POST /v1/admin/users/:id/plan — admin-only plan set.
//
// @Summary      Override a user's plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      overridePlanRequest  true  "Target plan"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/plan [post]
func (h *AccountHandler) OverridePlan(c echo.Context) error {
	var req overridePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.OverridePlan(c.Request().Context(), c.Param("id"), domain.Plan(req.Plan))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(user, time.Now().UTC()))
}
