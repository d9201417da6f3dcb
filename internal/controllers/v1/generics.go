package v1

import (
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
// The allowed verbs differ per resource, so the handler setting the allow header is passed in.
//
// Note: This function only works for resources with an ID, not for calculated endpoints (like /stats)
func resourceOptionsDetail[R models.Transaction | models.Goal | models.User](c *gin.Context, resource R, options gin.HandlerFunc) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}
