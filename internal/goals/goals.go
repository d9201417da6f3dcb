// Package goals implements the savings goal state machine.
//
// A goal is either individual or shared. Both follow the same rules: every
// participant tracks their own amount against the goal target, the goal's
// current amount is the sum over all participants, and the goal is completed
// once every participant reached the target. An individual goal is simply the
// single-participant case where the participant mirrors the owner.
//
// All functions here are pure: they take goal values and return updated goal
// values, persistence happens in the caller.
package goals

import (
	"errors"
	"strings"
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	ErrExceedsTarget      = errors.New("this contribution would exceed the goal target")
	ErrNotOwner           = errors.New("only the goal owner may do this")
	ErrAlreadyParticipant = errors.New("this email already participates in the goal")
	ErrNotParticipant     = errors.New("this user does not participate in the goal")
	ErrInvitationClosed   = errors.New("this invitation has already been answered")
)

// Create returns a new in-progress goal with the owner as its only
// participant.
func Create(name string, target decimal.Decimal, deadline time.Time, owner models.User) models.Goal {
	return models.Goal{
		Name:          name,
		TargetAmount:  target,
		Deadline:      deadline,
		CurrentAmount: decimal.Zero,
		OwnerID:       owner.ID,
		Participants: []models.GoalParticipant{
			{
				UserID:        owner.ID,
				Email:         owner.Email,
				CurrentAmount: decimal.Zero,
			},
		},
	}
}

// Contribute adds delta to the calling participant's amount.
//
// The overflow check is against the goal target, not against the shared
// total: every participant saves towards the target on their own. Delta may
// be negative to adjust an earlier contribution; completion flags are
// recomputed either way.
func Contribute(goal models.Goal, userID uuid.UUID, delta decimal.Decimal) (models.Goal, error) {
	i := slices.IndexFunc(goal.Participants, func(p models.GoalParticipant) bool {
		return p.UserID == userID
	})
	if i < 0 {
		return models.Goal{}, ErrNotParticipant
	}

	amount := goal.Participants[i].CurrentAmount.Add(delta)
	if amount.GreaterThan(goal.TargetAmount) {
		return models.Goal{}, ErrExceedsTarget
	}

	goal.Participants = slices.Clone(goal.Participants)
	goal.Participants[i].CurrentAmount = amount

	return recompute(goal), nil
}

// Share adds a participant to the goal or, when no account exists for the
// recipient, returns a pending invitation and leaves the goal untouched.
//
// Exactly one of the returned goal/invitation carries the change: when the
// invitation is nil the goal was updated, otherwise the goal is unchanged.
func Share(goal models.Goal, callerID uuid.UUID, recipientEmail string, recipient *models.User, senderEmail string) (models.Goal, *models.GoalInvitation, error) {
	if callerID != goal.OwnerID {
		return models.Goal{}, nil, ErrNotOwner
	}

	email := strings.ToLower(strings.TrimSpace(recipientEmail))
	if hasParticipant(goal, email) {
		return models.Goal{}, nil, ErrAlreadyParticipant
	}

	if recipient == nil {
		return goal, &models.GoalInvitation{
			GoalID:         goal.ID,
			GoalName:       goal.Name,
			SenderEmail:    senderEmail,
			RecipientEmail: email,
			Status:         models.InvitationPending,
		}, nil
	}

	return join(goal, *recipient), nil, nil
}

// Respond consumes an invitation. Accepting joins the user to the referenced
// goal; declining only closes the invitation. Answered invitations are
// terminal and reject any further response.
func Respond(invitation models.GoalInvitation, goal models.Goal, accept bool, user models.User) (models.GoalInvitation, models.Goal, error) {
	if invitation.Status != models.InvitationPending {
		return models.GoalInvitation{}, models.Goal{}, ErrInvitationClosed
	}

	if !accept {
		invitation.Status = models.InvitationDeclined
		return invitation, goal, nil
	}

	if hasParticipant(goal, user.Email) {
		return models.GoalInvitation{}, models.Goal{}, ErrAlreadyParticipant
	}

	invitation.Status = models.InvitationAccepted
	return invitation, join(goal, user), nil
}

// CanDelete checks the ownership precondition for deleting a goal.
func CanDelete(goal models.Goal, callerID uuid.UUID) error {
	if callerID != goal.OwnerID {
		return ErrNotOwner
	}
	return nil
}

// join appends a new participant with a zero amount and marks the goal as
// shared.
func join(goal models.Goal, user models.User) models.Goal {
	goal.Participants = append(slices.Clone(goal.Participants), models.GoalParticipant{
		GoalID:        goal.ID,
		UserID:        user.ID,
		Email:         user.Email,
		CurrentAmount: decimal.Zero,
	})
	goal.IsShared = true

	return recompute(goal)
}

func hasParticipant(goal models.Goal, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	return slices.IndexFunc(goal.Participants, func(p models.GoalParticipant) bool {
		return strings.EqualFold(p.Email, email)
	}) >= 0
}

// recompute derives the goal-level state from the participants: the current
// amount is the sum over all participants, each participant is completed
// once their own amount reaches the target, and the goal is completed once
// every participant is.
func recompute(goal models.Goal) models.Goal {
	total := decimal.Zero
	completed := true
	now := time.Now().In(time.UTC)

	for i, p := range goal.Participants {
		total = total.Add(p.CurrentAmount)

		done := p.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
		if done && !p.Completed {
			goal.Participants[i].CompletedAt = &now
		}
		if !done {
			goal.Participants[i].CompletedAt = nil
			completed = false
		}
		goal.Participants[i].Completed = done
	}

	goal.CurrentAmount = total
	goal.IsCompleted = completed && len(goal.Participants) > 0

	return goal
}
