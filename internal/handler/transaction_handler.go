package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eaglebank/ledger/internal/cqrs"
	"github.com/eaglebank/ledger/internal/middleware"
	"github.com/eaglebank/ledger/internal/models"
	"github.com/eaglebank/ledger/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(context.Context, cqrs.CreateTransactionCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(context.Context, cqrs.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
	GetSummary(context.Context, cqrs.SummaryQuery) (*models.Summary, error)
}

type TransactionHandler struct {
	commands      TransactionCommander
	queries       TransactionQuerier
	secureCookies bool
}

type CreateTransactionRequest struct {
	Title  string  `json:"title" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Type   string  `json:"type" validate:"required,oneof=credit debit"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

type GetTransactionResponse struct {
	Transaction *models.TransactionView `json:"transaction"`
}

type SummaryResponse struct {
	Summary *models.Summary `json:"summary"`
}

// NewTransactionHandler builds the handler. secureCookies marks minted session
// cookies Secure, which production deployments behind TLS want.
func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier, secureCookies bool) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries, secureCookies: secureCookies}
}

// RegisterRoutes mounts the ledger under group. Only creation is reachable
// without a session cookie.
func (h *TransactionHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateTransaction)

	authed := group.Group("", session.RequireSession())
	authed.GET("", h.ListTransactions)
	authed.GET("/summary", h.GetSummary)
	authed.GET("/:id", h.GetTransaction)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	sessionID, minted := session.Resolve(session.FromRequest(c))

	_, err := h.commands.CreateTransaction(c.Request.Context(), cqrs.CreateTransactionCommand{
		SessionID: sessionID,
		Title:     req.Title,
		Amount:    decimal.NewFromFloat(req.Amount),
		Type:      req.Type,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to create transaction")
		return
	}

	if minted {
		session.SetCookie(c, sessionID, h.secureCookies)
	}
	c.Status(http.StatusCreated)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	sessionID, _ := session.GetSessionID(c)

	views, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		SessionID: sessionID,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to list transactions")
		return
	}
	if views == nil {
		views = []models.TransactionView{}
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	sessionID, _ := session.GetSessionID(c)

	view, err := h.queries.GetTransaction(c.Request.Context(), cqrs.GetTransactionQuery{
		TransactionID: c.Param("id"),
		SessionID:     sessionID,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, GetTransactionResponse{Transaction: view})
}

func (h *TransactionHandler) GetSummary(c *gin.Context) {
	sessionID, _ := session.GetSessionID(c)

	summary, err := h.queries.GetSummary(c.Request.Context(), cqrs.SummaryQuery{
		SessionID: sessionID,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}

// respondWithDomainError maps a service error onto exactly one status code.
// Anything unclassified is reported with fallback and a 500.
func respondWithDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, models.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), fallback, "error", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
