package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Astemirdum/loan-ledger/ledger/internal/errs"
	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	md "github.com/Astemirdum/loan-ledger/pkg/middleware"
	"github.com/Astemirdum/loan-ledger/pkg/validate"
	_ "github.com/Astemirdum/loan-ledger/swagger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	ledgerSvc LedgerService
	log       *zap.Logger
}

func New(ledgerSvc LedgerService, log *zap.Logger) *Handler {
	return &Handler{
		ledgerSvc: ledgerSvc,
		log:       log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost},
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/loans", h.IssueLoan, md.RequireActor)
	api.GET("/loans", h.ListLoans)
	api.GET("/loans/:loanId", h.GetLoan)
	api.POST("/loans/:loanId/return", h.ReturnLoan, md.RequireActor)
	api.GET("/loans/:loanId/fine", h.GetFine)

	api.GET("/patrons/:patronId/eligibility", h.Eligibility)
	api.GET("/patrons/:patronId/fines", h.PatronFines)

	api.GET("/stats", h.Stats)
	api.GET("/stats/returns", h.ReturnStats)
	api.GET("/stats/popular-books", h.PopularBooks)
	api.GET("/stats/active-patrons", h.ActivePatrons)
	api.GET("/stats/loans-by-month", h.LoansByMonth)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// fail maps a ledger error to its status code. Raw storage errors never
// reach the client.
func (h *Handler) fail(err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrInconsistent):
		// 500, whatever the cause was
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrBookUnavailable), errors.Is(err, errs.ErrAlreadyReturned):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPatronIneligible):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidDateRange), errors.Is(err, errs.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusServiceUnavailable
	}
	if code == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	return echo.NewHTTPError(code, errs.Message(err))
}

func (h *Handler) IssueLoan(c echo.Context) error {
	var req model.IssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	req.IssuedBy, _ = md.Actor(ctx)

	loan, err := h.ledgerSvc.Issue(ctx, req)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	loanID, err := uuid.Parse(c.Param("loanId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loanId is invalid")
	}
	ctx := c.Request().Context()
	returnedBy, _ := md.Actor(ctx)

	fine, err := h.ledgerSvc.ReturnLoan(ctx, loanID, returnedBy)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, model.ReturnResponse{
		LoanID:     loanID,
		FineAmount: fine,
	})
}

func (h *Handler) GetLoan(c echo.Context) error {
	loanID, err := uuid.Parse(c.Param("loanId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loanId is invalid")
	}
	loan, err := h.ledgerSvc.GetLoan(c.Request().Context(), loanID)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, h.ledgerSvc.View(loan))
}

func (h *Handler) GetFine(c echo.Context) error {
	loanID, err := uuid.Parse(c.Param("loanId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loanId is invalid")
	}
	loan, err := h.ledgerSvc.GetLoan(c.Request().Context(), loanID)
	if err != nil {
		return h.fail(err)
	}
	view := h.ledgerSvc.View(loan)
	return c.JSON(http.StatusOK, model.FineResponse{
		LoanID:      loan.ID,
		OverdueDays: view.OverdueDays,
		Fine:        view.Fine,
		Final:       loan.ReturnDate != nil,
	})
}

func (h *Handler) ListLoans(c echo.Context) error {
	var (
		err    error
		filter model.LoanFilter
	)
	switch status := model.LoanStatus(c.QueryParam("status")); status {
	case "", model.LoanStatusActive, model.LoanStatusReturned:
		filter.Status = status
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	if patronParam := c.QueryParam("patronId"); patronParam != "" {
		if filter.PatronID, err = strconv.ParseInt(patronParam, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "patronId is invalid")
		}
	}
	if bookParam := c.QueryParam("bookId"); bookParam != "" {
		if filter.BookID, err = strconv.ParseInt(bookParam, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bookId is invalid")
		}
	}
	if overdueParam := c.QueryParam("overdue"); overdueParam != "" {
		if filter.OverdueOnly, err = strconv.ParseBool(overdueParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "overdue is invalid")
		}
	}

	loans, err := h.ledgerSvc.ListLoans(c.Request().Context(), filter)
	if err != nil {
		return h.fail(err)
	}
	views := make([]model.LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, h.ledgerSvc.View(loan))
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) Eligibility(c echo.Context) error {
	patronID, err := patronParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	canBorrow, err := h.ledgerSvc.CanPatronBorrow(ctx, patronID)
	if err != nil {
		return h.fail(err)
	}
	hasActive, err := h.ledgerSvc.HasActiveLoans(ctx, patronID)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, model.Eligibility{
		PatronID:       patronID,
		CanBorrow:      canBorrow,
		HasActiveLoans: hasActive,
	})
}

func (h *Handler) PatronFines(c echo.Context) error {
	patronID, err := patronParam(c)
	if err != nil {
		return err
	}
	total, err := h.ledgerSvc.TotalFinesByPatron(c.Request().Context(), patronID)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, model.PatronFines{
		PatronID: patronID,
		Total:    total,
	})
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.ledgerSvc.Stats(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ReturnStats(c echo.Context) error {
	stats, err := h.ledgerSvc.ReturnStats(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) PopularBooks(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	books, err := h.ledgerSvc.PopularBooks(c.Request().Context(), limit)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) ActivePatrons(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	patrons, err := h.ledgerSvc.MostActivePatrons(c.Request().Context(), limit)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, patrons)
}

func (h *Handler) LoansByMonth(c echo.Context) error {
	months, err := h.ledgerSvc.LoansByMonth(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, months)
}

const maxLimit = 100

// limitParam reads an optional ?limit=; zero leaves the default to the ledger.
func limitParam(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
	}
	return limit, nil
}

func patronParam(c echo.Context) (int64, error) {
	patronID, err := strconv.ParseInt(c.Param("patronId"), 10, 64)
	if err != nil || patronID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "patronId is invalid")
	}
	return patronID, nil
}
