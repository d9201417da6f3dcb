package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	cs_uuid "github.com/centsible/backend/internal/uuid"
	"github.com/centsible/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) defaultGoal() (v1.UserResponse, v1.GoalResponse) {
	owner := createTestUser(suite.T(), v1.UserEditable{Email: "jane@example.com", DisplayName: "Jane"})

	goal := createTestGoal(suite.T(), v1.GoalEditable{
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		OwnerEmail:   owner.Data.Email,
	})

	return owner, goal
}

func (suite *TestSuiteStandard) TestGoalCreate() {
	owner, goal := suite.defaultGoal()

	require.NotNil(suite.T(), goal.Data)
	assert.Equal(suite.T(), "Vacation", goal.Data.Name)
	assert.Equal(suite.T(), owner.Data.ID, goal.Data.OwnerID)
	assert.False(suite.T(), goal.Data.IsShared)
	require.Len(suite.T(), goal.Data.Participants, 1)
	assert.Equal(suite.T(), owner.Data.Email, goal.Data.Participants[0].Email)
}

func (suite *TestSuiteStandard) TestGoalCreateUnknownOwner() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/goals", v1.GoalEditable{
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		OwnerEmail:   "nobody@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGoalGet() {
	_, goal := suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), goal.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGoalList() {
	suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodGet, "/v1/goals", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Len(suite.T(), response.Data[0].Participants, 1)
}

func (suite *TestSuiteStandard) TestGoalContribute() {
	owner, goal := suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.GoalContribution{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Amount: decimal.NewFromInt(400),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), decimal.NewFromInt(400).Equal(response.Data.CurrentAmount))
	assert.False(suite.T(), response.Data.IsCompleted)
}

func (suite *TestSuiteStandard) TestGoalContributeCompletes() {
	owner, goal := suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.GoalContribution{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Amount: decimal.NewFromInt(1000),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.IsCompleted)
}

func (suite *TestSuiteStandard) TestGoalContributeExceedsTarget() {
	owner, goal := suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.GoalContribution{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Amount: decimal.NewFromInt(1500),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGoalShareKnownUser() {
	owner, goal := suite.defaultGoal()
	joe := createTestUser(suite.T(), v1.UserEditable{Email: "joe@example.com"})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Share, v1.GoalShareRequest{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Email:  joe.Data.Email,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalShareResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Nil(suite.T(), response.Invitation)
	assert.True(suite.T(), response.Data.IsShared)
	assert.Len(suite.T(), response.Data.Participants, 2)
}

func (suite *TestSuiteStandard) TestGoalShareUnknownEmail() {
	owner, goal := suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Share, v1.GoalShareRequest{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Email:  "stranger@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.GoalShareResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Invitation)
	assert.Equal(suite.T(), models.InvitationPending, response.Invitation.Status)
	assert.False(suite.T(), response.Data.IsShared, "the goal stays untouched until the invitation is accepted")
	assert.Len(suite.T(), response.Data.Participants, 1)
}

func (suite *TestSuiteStandard) TestGoalShareNotOwner() {
	_, goal := suite.defaultGoal()
	joe := createTestUser(suite.T(), v1.UserEditable{Email: "joe@example.com"})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Share, v1.GoalShareRequest{
		UserID: cs_uuid.UUID{UUID: joe.Data.ID},
		Email:  "somebody@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestGoalInvitationFlow() {
	owner, goal := suite.defaultGoal()

	// Share with an email that has no account yet
	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Share, v1.GoalShareRequest{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Email:  "joe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var share v1.GoalShareResponse
	test.DecodeResponse(suite.T(), &r, &share)
	require.NotNil(suite.T(), share.Invitation)

	// The invitation shows up for the recipient
	r = test.Request(suite.T(), http.MethodGet, "/v1/goal-invitations?email=joe@example.com", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.InvitationListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)

	// Joe registers and accepts
	createTestUser(suite.T(), v1.UserEditable{Email: "joe@example.com"})

	respondURL := fmt.Sprintf("/v1/goal-invitations/%s/respond", list.Data[0].ID)
	r = test.Request(suite.T(), http.MethodPost, respondURL, v1.InvitationRespondRequest{Accept: true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var respond v1.InvitationResponse
	test.DecodeResponse(suite.T(), &r, &respond)
	assert.Equal(suite.T(), models.InvitationAccepted, respond.Data.Status)

	// The goal now has two participants
	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var loaded v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &loaded)
	assert.True(suite.T(), loaded.Data.IsShared)
	assert.Len(suite.T(), loaded.Data.Participants, 2)

	// Answered invitations are terminal
	r = test.Request(suite.T(), http.MethodPost, respondURL, v1.InvitationRespondRequest{Accept: true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// And no longer listed as pending
	r = test.Request(suite.T(), http.MethodGet, "/v1/goal-invitations?email=joe@example.com", nil)
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Empty(suite.T(), list.Data)
}

func (suite *TestSuiteStandard) TestGoalInvitationDecline() {
	owner, goal := suite.defaultGoal()

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Share, v1.GoalShareRequest{
		UserID: cs_uuid.UUID{UUID: owner.Data.ID},
		Email:  "joe@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var share v1.GoalShareResponse
	test.DecodeResponse(suite.T(), &r, &share)

	respondURL := fmt.Sprintf("/v1/goal-invitations/%s/respond", share.Invitation.ID)
	r = test.Request(suite.T(), http.MethodPost, respondURL, v1.InvitationRespondRequest{Accept: false})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var respond v1.InvitationResponse
	test.DecodeResponse(suite.T(), &r, &respond)
	assert.Equal(suite.T(), models.InvitationDeclined, respond.Data.Status)

	// Declining must not touch the goal
	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, nil)
	var loaded v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &loaded)
	assert.Len(suite.T(), loaded.Data.Participants, 1)
}

func (suite *TestSuiteStandard) TestGoalDeleteOwnerOnly() {
	owner, goal := suite.defaultGoal()
	joe := createTestUser(suite.T(), v1.UserEditable{Email: "joe@example.com"})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("%s?userId=%s", goal.Data.Links.Self, joe.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("%s?userId=%s", goal.Data.Links.Self, owner.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/goals/%s", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
