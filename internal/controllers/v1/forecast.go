package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/forecast"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterForecastRoutes registers the routes for the forecast with
// the RouterGroup that is passed.
func RegisterForecastRoutes(r *gin.RouterGroup, forecasts *forecast.Service) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetForecast(forecasts))
}

type ForecastResponse struct {
	Error *string            `json:"error"` // The error, if any occurred
	Data  *forecast.Forecast `json:"data"`  // The prediction
}

// GetForecast returns the predicted balance change for the next month.
// Predictions are cached, a failing oracle degrades to a zero prediction
// with an explanation instead of an error.
func GetForecast(forecasts *forecast.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, _, err := models.AllTransactions()
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ForecastResponse{
				Error: &e,
			})
			return
		}

		prediction := forecasts.Get(c.Request.Context(), transactions)
		c.JSON(http.StatusOK, ForecastResponse{Data: &prediction})
	}
}
