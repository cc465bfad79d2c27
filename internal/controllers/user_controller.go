package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare-be/internal/middleware"
	"foodshare-be/internal/models"
	"foodshare-be/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Profile handles GET /users/profile
func (uc *UserController) Profile(c *gin.Context) {
	profile, err := uc.userService.GetProfile(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ProfileEditForm handles GET /users/profile/edit
func (uc *UserController) ProfileEditForm(c *gin.Context) {
	profile, err := uc.userService.GetProfile(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile.User)
}

// ProfileEdit handles POST /users/profile/edit
func (uc *UserController) ProfileEdit(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := uc.userService.UpdateProfile(middleware.UserID(c), &req); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/users/profile")
}
