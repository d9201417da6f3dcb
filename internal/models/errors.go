package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNotPositive      = errors.New("amounts must be larger than zero")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be income or expense")
	ErrProtectedField         = errors.New("the refunded field has its own dedicated operation and cannot be updated directly")

	ErrGoalTargetNotPositive = errors.New("goal target amounts must be larger than zero")
	ErrParticipantExists     = errors.New("this email is already participating in the goal")
	ErrUserEmailExists       = errors.New("this email is already registered")
	ErrBudgetCategoryExists  = errors.New("a budget for this category already exists")
)
