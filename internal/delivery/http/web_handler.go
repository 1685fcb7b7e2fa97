package http

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pricealert/internal/delivery/http/dto"
	"pricealert/internal/domain"
	appmiddleware "pricealert/internal/middleware"
	"pricealert/internal/usecase"
	"pricealert/internal/utils"
)

// Effects is the read side of the cosmetic scheduler
type Effects interface {
	Now() time.Time
	Glitching() bool
}

// WebHandler renders the terminal dashboard and its HTMX fragments
type WebHandler struct {
	templates    *template.Template
	alertService *usecase.AlertService
	effects      Effects
	logger       *zap.Logger
}

// NewWebHandler creates a new WebHandler; a nil logger discards output
func NewWebHandler(
	templates *template.Template,
	alertService *usecase.AlertService,
	effects Effects,
	logger *zap.Logger,
) *WebHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebHandler{
		templates:    templates,
		alertService: alertService,
		effects:      effects,
		logger:       logger,
	}
}

// GET / - Render dashboard
func (h *WebHandler) HandleDashboard(c echo.Context) error {
	return h.render(c, http.StatusOK, "dashboard", h.dashboard(c.QueryParam("error")))
}

// POST /alerts - Handle NEW_ALERT form submission
func (h *WebHandler) HandleCreateAlert(c echo.Context) error {
	condition, err := domain.ParseCondition(c.FormValue("condition"))
	if err != nil {
		return redirectWithError(c, "Condition must be ABOVE or BELOW")
	}

	_, err = h.alertService.SubmitForm(usecase.Form{
		Symbol:      c.FormValue("symbol"),
		TargetPrice: c.FormValue("target_price"),
		Condition:   condition,
	})
	switch {
	case err == nil, errors.Is(err, usecase.ErrEmptyTargetPrice):
		// an empty price never reaches the store; the button is disabled client-side anyway
		return c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, usecase.ErrInvalidTargetPrice):
		return redirectWithError(c, "Target price must be a number")
	default:
		h.logger.Error("failed to create alert", zap.Error(err))
		return redirectWithError(c, "Failed to create alert")
	}
}

// POST /alerts/:id/delete - Remove an alert
func (h *WebHandler) HandleRemoveAlert(c echo.Context) error {
	h.alertService.RemoveAlert(c.Param("id"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// POST /form/symbol - Change the pending token
func (h *WebHandler) HandleSelectSymbol(c echo.Context) error {
	h.alertService.SelectSymbol(c.FormValue("symbol"))

	if appmiddleware.IsHTMX(c) {
		return h.render(c, http.StatusOK, "price", h.pendingPrice())
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// POST /form/condition - Change the pending condition
func (h *WebHandler) HandleSelectCondition(c echo.Context) error {
	if err := h.alertService.SelectCondition(c.FormValue("condition")); err != nil {
		if appmiddleware.IsHTMX(c) {
			return c.NoContent(http.StatusBadRequest)
		}
		return redirectWithError(c, "Condition must be ABOVE or BELOW")
	}

	if appmiddleware.IsHTMX(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// GET /fragments/header - Clock and glitch state, polled every second
func (h *WebHandler) HandleHeader(c echo.Context) error {
	return h.render(c, http.StatusOK, "header", h.header())
}

// GET /fragments/price - Current price of a token
func (h *WebHandler) HandlePrice(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return h.render(c, http.StatusOK, "price", h.pendingPrice())
	}
	return h.render(c, http.StatusOK, "price", utils.FormatPrice(h.alertService.Price(symbol)))
}

func (h *WebHandler) header() dto.HeaderViewModel {
	return dto.HeaderViewModel{
		Clock:  utils.FormatClock(h.effects.Now()),
		Glitch: h.effects.Glitching(),
	}
}

func (h *WebHandler) pendingPrice() string {
	return utils.FormatPrice(h.alertService.Price(h.alertService.Form().Symbol))
}

func (h *WebHandler) dashboard(errMsg string) dto.DashboardViewModel {
	form := h.alertService.Form()
	alerts := h.alertService.Alerts()

	symbols := h.alertService.Symbols()
	options := make([]dto.SymbolOption, 0, len(symbols))
	for _, s := range symbols {
		options = append(options, dto.SymbolOption{Symbol: s, Selected: s == form.Symbol})
	}

	rows := make([]dto.AlertViewModel, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, dto.NewAlertViewModel(a))
	}

	return dto.DashboardViewModel{
		Header:       h.header(),
		Stats:        statsOf(h.alertService),
		Symbols:      options,
		PendingPrice: utils.FormatPrice(h.alertService.Price(form.Symbol)),
		IsAbove:      form.Condition != domain.ConditionBelow,
		TargetPrice:  form.TargetPrice,
		CanSubmit:    form.CanSubmit(),
		Alerts:       rows,
		Error:        errMsg,
	}
}

func (h *WebHandler) render(c echo.Context, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render page")
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func redirectWithError(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(msg))
}

// RegisterWebRoutes registers all web routes (HTML pages and fragments)
func RegisterWebRoutes(e *echo.Echo, handler *WebHandler) {
	e.GET("/", handler.HandleDashboard)
	e.POST("/alerts", handler.HandleCreateAlert)
	e.POST("/alerts/:id/delete", handler.HandleRemoveAlert)
	e.POST("/form/symbol", handler.HandleSelectSymbol)
	e.POST("/form/condition", handler.HandleSelectCondition)

	fragments := e.Group("/fragments", appmiddleware.NoStoreMiddleware)
	fragments.GET("/header", handler.HandleHeader)
	fragments.GET("/price", handler.HandlePrice)
}
