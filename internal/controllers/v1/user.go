package v1

import (
	"fmt"
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUsers)
		r.POST("", CreateUser)
	}

	// User with ID
	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", GetUser)
		r.PATCH("/:id", UpdateUser)
	}
}

func OptionsUsers(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsUserDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.User{}, httputil.OptionsGetPatch)
}

// UserEditable contains the fields clients can set on a user profile.
type UserEditable struct {
	Email       string `json:"email" example:"jane@example.com"`
	DisplayName string `json:"displayName" example:"Jane"`
}

type UserLinks struct {
	Self string `json:"self" example:"/v1/users/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
}

type UserProfile struct {
	models.User
	Links UserLinks `json:"links"`
}

func newUser(model models.User) UserProfile {
	return UserProfile{
		User: model,
		Links: UserLinks{
			Self: fmt.Sprintf("/v1/users/%s", model.ID),
		},
	}
}

type UserResponse struct {
	Error *string      `json:"error"` // The error, if any occurred
	Data  *UserProfile `json:"data"`  // The resource
}

// CreateUser registers a new user profile. The email must be unique.
func CreateUser(c *gin.Context) {
	var editable UserEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	user := models.User{
		Email:       editable.Email,
		DisplayName: editable.DisplayName,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// GetUser returns a specific user profile.
func GetUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// UpdateUser updates a user profile. Only the fields set in the body are
// changed.
func UpdateUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	var editable UserEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	if editable.Email != "" {
		user.Email = editable.Email
	}
	if editable.DisplayName != "" {
		user.DisplayName = editable.DisplayName
	}

	err = models.DB.Save(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}
