package v1

import (
	"errors"
	"net/http"

	"github.com/centsible/backend/internal/goals"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	cs_uuid "github.com/centsible/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

var errNoAccountForEmail = errors.New("there is no account for this email address")

// RegisterGoalRoutes registers the routes for goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGoals)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.DELETE("/:id", DeleteGoal)
		r.POST("/:id/contribute", ContributeToGoal)
		r.POST("/:id/share", ShareGoal)
	}
}

func OptionsGoals(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsGoalDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Goal{}, httputil.OptionsGetDelete)
}

// CreateGoal creates a new goal with the owner as its only participant.
func CreateGoal(c *gin.Context) {
	var editable GoalEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	owner, exists, err := models.UserByEmail(editable.OwnerEmail)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}
	if !exists {
		e := errNoAccountForEmail.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{
			Error: &e,
		})
		return
	}

	goal := goals.Create(editable.Name, editable.TargetAmount, editable.Deadline, owner)
	err = models.SaveGoal(&goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusCreated, GoalResponse{Data: &data})
}

// GetGoals returns all goals including their participants.
func GetGoals(c *gin.Context) {
	var list []models.Goal
	err := models.DB.Preload("Participants").Order("created_at asc").Find(&list).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Goal, 0, len(list))
	for _, goal := range list {
		data = append(data, newGoal(goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

// GetGoal returns a specific goal including its participants.
func GetGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	goal, err := models.GoalWithParticipants(uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// DeleteGoal deletes a goal. Only the owner may do this, the acting user is
// taken from the userId query parameter.
func DeleteGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var query struct {
		UserID cs_uuid.UUID `form:"userId"`
	}
	if err := httputil.BindQuery(c, &query); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	goal, err := models.GoalWithParticipants(uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if err := goals.CanDelete(goal, query.UserID.UUID); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Select("Participants").Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ContributeToGoal adds the contribution to the calling participant's
// amount and recomputes completion.
func ContributeToGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	var contribution GoalContribution
	err = httputil.BindData(c, &contribution)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	goal, err := models.GoalWithParticipants(uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	goal, err = goals.Contribute(goal, contribution.UserID.UUID, contribution.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	err = models.SaveGoal(&goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &e,
		})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// ShareGoal adds a participant to the goal or, when no account exists for
// the email, creates a pending invitation and leaves the goal untouched.
func ShareGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	var share GoalShareRequest
	err = httputil.BindData(c, &share)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	goal, err := models.GoalWithParticipants(uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	var sender models.User
	err = models.DB.First(&sender, "id = ?", share.UserID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	recipient, exists, err := models.UserByEmail(share.Email)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	var recipientUser *models.User
	if exists {
		recipientUser = &recipient
	}

	goal, invitation, err := goals.Share(goal, share.UserID.UUID, share.Email, recipientUser, sender.Email)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	if invitation != nil {
		err = models.DB.Create(invitation).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), GoalShareResponse{
				Error: &e,
			})
			return
		}

		data := newGoal(goal)
		c.JSON(http.StatusCreated, GoalShareResponse{Data: &data, Invitation: invitation})
		return
	}

	err = models.SaveGoal(&goal)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalShareResponse{
			Error: &e,
		})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusOK, GoalShareResponse{Data: &data})
}
