package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/goals"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterInvitationRoutes registers the routes for goal invitations with
// the RouterGroup that is passed.
func RegisterInvitationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetInvitations)
	r.POST("/:id/respond", RespondToInvitation)
}

// GetInvitations returns the pending invitations addressed to an email.
func GetInvitations(c *gin.Context) {
	var query struct {
		Email string `form:"email" binding:"required"`
	}
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationListResponse{
			Error: &e,
		})
		return
	}

	invitations, err := models.InvitationsForEmail(query.Email)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, InvitationListResponse{Data: invitations})
}

// RespondToInvitation answers a pending invitation. Accepting joins the
// recipient to the goal, declining only closes the invitation. Answered
// invitations reject any further response.
func RespondToInvitation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationResponse{
			Error: &e,
		})
		return
	}

	var respond InvitationRespondRequest
	err = httputil.BindData(c, &respond)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationResponse{
			Error: &e,
		})
		return
	}

	var invitation models.GoalInvitation
	err = models.DB.First(&invitation, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationResponse{
			Error: &e,
		})
		return
	}

	goal, err := models.GoalWithParticipants(invitation.GoalID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationResponse{
			Error: &e,
		})
		return
	}

	// Declining does not need an account, accepting does
	var user models.User
	if respond.Accept {
		var exists bool
		user, exists, err = models.UserByEmail(invitation.RecipientEmail)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), InvitationResponse{
				Error: &e,
			})
			return
		}
		if !exists {
			e := errNoAccountForEmail.Error()
			c.JSON(http.StatusBadRequest, InvitationResponse{
				Error: &e,
			})
			return
		}
	}

	invitation, goal, err = goals.Respond(invitation, goal, respond.Accept, user)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Save(&invitation).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvitationResponse{
			Error: &e,
		})
		return
	}

	if respond.Accept {
		err = models.SaveGoal(&goal)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), InvitationResponse{
				Error: &e,
			})
			return
		}
	}

	c.JSON(http.StatusOK, InvitationResponse{Data: &invitation})
}
