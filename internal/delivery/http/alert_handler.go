package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pricealert/internal/delivery/http/dto"
	"pricealert/internal/usecase"
)

// AlertHandler serves the JSON alert API
type AlertHandler struct {
	alertService *usecase.AlertService
	logger       *zap.Logger
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *usecase.AlertService, logger *zap.Logger) *AlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertHandler{
		alertService: alertService,
		logger:       logger,
	}
}

// ListAlerts returns all alerts, newest first
// GET /api/alerts
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	alerts := h.alertService.Alerts()

	out := make([]dto.AlertOutput, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.NewAlertOutput(a))
	}
	return SuccessResponse(c, out)
}

// GetAlert returns a single alert
// GET /api/alerts/:id
func (h *AlertHandler) GetAlert(c echo.Context) error {
	alert, err := h.alertService.GetAlert(c.Param("id"))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return SuccessResponse(c, dto.NewAlertOutput(alert))
}

// CreateAlert adds an alert
// POST /api/alerts
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req dto.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	condition := req.Condition
	if condition == "" {
		condition = "above"
	}

	alert, err := h.alertService.CreateAlert(req.Symbol, string(req.TargetPrice), condition)
	if err != nil {
		h.logger.Debug("create alert rejected", zap.Error(err))
		return serviceErrorResponse(c, err)
	}
	return CreatedResponse(c, dto.NewAlertOutput(alert))
}

// RemoveAlert deletes an alert. Unknown ids succeed with removed=false.
// DELETE /api/alerts/:id
func (h *AlertHandler) RemoveAlert(c echo.Context) error {
	id := c.Param("id")
	out := dto.RemoveAlertOutput{ID: id, Removed: h.alertService.RemoveAlert(id)}
	if !out.Removed {
		return SuccessMessageResponse(c, "Alert not present", out)
	}
	return SuccessMessageResponse(c, "Alert removed", out)
}

// GetStats returns the stats bar counters
// GET /api/stats
func (h *AlertHandler) GetStats(c echo.Context) error {
	return SuccessResponse(c, statsOf(h.alertService))
}

// GetPrices returns the price table in display order
// GET /api/prices
func (h *AlertHandler) GetPrices(c echo.Context) error {
	symbols := h.alertService.Symbols()

	out := make([]dto.PriceOutput, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.PriceOutput{Symbol: s, Price: h.alertService.Price(s).String()})
	}
	return SuccessResponse(c, out)
}

func statsOf(s *usecase.AlertService) dto.StatsOutput {
	counts := s.Counts()
	return dto.StatsOutput{
		Total:     counts.Total,
		Active:    counts.Active,
		Triggered: counts.Triggered,
		Tokens:    len(s.Symbols()),
	}
}
