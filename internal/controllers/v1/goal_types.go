package v1

import (
	"fmt"
	"time"

	"github.com/centsible/backend/internal/models"
	cs_uuid "github.com/centsible/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// GoalEditable contains the fields clients can set when creating a goal.
//
// The owner is identified by email since identity arrives on the API, there
// is no session to take it from.
type GoalEditable struct {
	Name         string          `json:"name" example:"New Laptop"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"1500"`
	Deadline     time.Time       `json:"deadline" example:"2026-12-31T00:00:00Z"`
	OwnerEmail   string          `json:"ownerEmail" example:"jane@example.com"`
}

// GoalContribution is the request body for a contribution.
//
// The amount may be negative to adjust an earlier contribution.
type GoalContribution struct {
	UserID cs_uuid.UUID    `json:"userId" binding:"required" format:"UUID"`
	Amount decimal.Decimal `json:"amount" example:"50"`
}

// GoalShareRequest is the request body for sharing a goal with another
// person, identified by email.
type GoalShareRequest struct {
	UserID cs_uuid.UUID `json:"userId" binding:"required" format:"UUID"` // The acting user, must be the owner
	Email  string       `json:"email" binding:"required" example:"joe@example.com"`
}

type GoalLinks struct {
	Self       string `json:"self" example:"/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
	Contribute string `json:"contribute" example:"/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/contribute"`
	Share      string `json:"share" example:"/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/share"`
}

type Goal struct {
	models.Goal
	Links GoalLinks `json:"links"`
}

// newGoal returns the API representation of the resource.
func newGoal(model models.Goal) Goal {
	return Goal{
		Goal: model,
		Links: GoalLinks{
			Self:       fmt.Sprintf("/v1/goals/%s", model.ID),
			Contribute: fmt.Sprintf("/v1/goals/%s/contribute", model.ID),
			Share:      fmt.Sprintf("/v1/goals/%s/share", model.ID),
		},
	}
}

type GoalResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *Goal   `json:"data"`  // The resource
}

type GoalListResponse struct {
	Data  []Goal  `json:"data"`  // List of resources
	Error *string `json:"error"` // The error, if any occurred
}

// GoalShareResponse carries the result of sharing a goal. Exactly one of
// goal and invitation reflects a change: the invitation is set when the
// recipient has no account yet.
type GoalShareResponse struct {
	Error      *string                `json:"error"`      // The error, if any occurred
	Data       *Goal                  `json:"data"`       // The goal after sharing
	Invitation *models.GoalInvitation `json:"invitation"` // Set when the recipient has no account yet
}

type InvitationResponse struct {
	Error *string                `json:"error"` // The error, if any occurred
	Data  *models.GoalInvitation `json:"data"`  // The resource
}

type InvitationListResponse struct {
	Data  []models.GoalInvitation `json:"data"`  // List of resources
	Error *string                 `json:"error"` // The error, if any occurred
}

// InvitationRespondRequest answers a pending invitation.
type InvitationRespondRequest struct {
	Accept bool `json:"accept"`
}
