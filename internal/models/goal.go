package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvitationStatus is the lifecycle state of a goal invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Goal is a savings goal. Shared goals have more than one participant, each
// tracked independently; for non-shared goals the participant list mirrors
// the owner.
type Goal struct {
	DefaultModel
	Name          string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Deadline      time.Time
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Sum over all participants
	OwnerID       uuid.UUID
	IsShared      bool
	IsCompleted   bool
	Participants  []GoalParticipant `gorm:"constraint:OnDelete:CASCADE"`
}

// GoalParticipant is a single user's share of a goal.
type GoalParticipant struct {
	DefaultModel
	GoalID        uuid.UUID `gorm:"uniqueIndex:goal_participant_email"`
	UserID        uuid.UUID
	Email         string          `gorm:"uniqueIndex:goal_participant_email"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Completed     bool
	CompletedAt   *time.Time
}

// GoalInvitation is created when a goal is shared with an email address that
// has no matching user account. It is consumed by the recipient's response
// and never mutated after reaching a terminal status.
type GoalInvitation struct {
	DefaultModel
	GoalID         uuid.UUID
	GoalName       string
	SenderEmail    string
	RecipientEmail string
	Status         InvitationStatus
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	return nil
}

func (p *GoalParticipant) BeforeSave(_ *gorm.DB) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return nil
}

func (i *GoalInvitation) BeforeSave(_ *gorm.DB) error {
	i.SenderEmail = strings.ToLower(strings.TrimSpace(i.SenderEmail))
	i.RecipientEmail = strings.ToLower(strings.TrimSpace(i.RecipientEmail))

	if i.Status == "" {
		i.Status = InvitationPending
	}

	return nil
}

// GoalWithParticipants loads a goal including its participants.
func GoalWithParticipants(id uuid.UUID) (Goal, error) {
	var goal Goal

	err := withRetry(func() error {
		return DB.Preload("Participants").First(&goal, "id = ?", id).Error
	})
	if err != nil {
		return Goal{}, err
	}

	return goal, nil
}

// SaveGoal persists a goal and its participants in one transaction.
func SaveGoal(goal *Goal) error {
	return withRetry(func() error {
		return DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(goal).Error
	})
}

// InvitationsForEmail returns all pending invitations addressed to an email.
func InvitationsForEmail(email string) ([]GoalInvitation, error) {
	var invitations []GoalInvitation

	err := withRetry(func() error {
		return DB.
			Where(&GoalInvitation{RecipientEmail: strings.ToLower(strings.TrimSpace(email)), Status: InvitationPending}).
			Order("created_at asc").
			Find(&invitations).Error
	})
	if err != nil {
		return nil, err
	}

	return invitations, nil
}
