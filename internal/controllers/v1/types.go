// Package v1 implements the HTTP API of the backend.
package v1

import (
	"errors"
	"net/http"

	"github.com/centsible/backend/internal/forecast"
	"github.com/centsible/backend/internal/goals"
	"github.com/centsible/backend/internal/models"
	cs_uuid "github.com/centsible/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

type URIID struct {
	ID cs_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, goals.ErrNotOwner) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

// AttachRoutes attaches all v1 routes to the given router group.
func AttachRoutes(r *gin.RouterGroup, forecasts *forecast.Service) {
	r.GET("", GetV1)
	r.OPTIONS("", OptionsV1)

	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterBudgetRoutes(r.Group("/budgets"))
	RegisterGoalRoutes(r.Group("/goals"))
	RegisterInvitationRoutes(r.Group("/goal-invitations"))
	RegisterStatsRoutes(r.Group("/stats"))
	RegisterForecastRoutes(r.Group("/forecast"), forecasts)
	RegisterUserRoutes(r.Group("/users"))
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"` // URL of the transaction collection
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`           // URL of the budget collection
	Goals        string `json:"goals" example:"https://example.com/v1/goals"`               // URL of the goal collection
	Invitations  string `json:"invitations" example:"https://example.com/v1/goal-invitations"`
	Stats        string `json:"stats" example:"https://example.com/v1/stats"`
	Forecast     string `json:"forecast" example:"https://example.com/v1/forecast"`
	Users        string `json:"users" example:"https://example.com/v1/users"`
}

// GetV1 returns the link collection for v1 of the API.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions: "/v1/transactions",
			Budgets:      "/v1/budgets",
			Goals:        "/v1/goals",
			Invitations:  "/v1/goal-invitations",
			Stats:        "/v1/stats",
			Forecast:     "/v1/forecast",
			Users:        "/v1/users",
		},
	})
}

// OptionsV1 returns the allowed HTTP verbs for the v1 root.
func OptionsV1(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}
