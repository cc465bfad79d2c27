package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare-be/internal/models"
	"foodshare-be/internal/service"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CreateUser handles POST /admin/users
func (ac *AdminController) CreateUser(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := ac.adminService.CreateUser(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser handles DELETE /admin/users/:id
func (ac *AdminController) DeleteUser(c *gin.Context) {
	if err := ac.adminService.DeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// DeleteItem handles DELETE /admin/items/:id
func (ac *AdminController) DeleteItem(c *gin.Context) {
	if err := ac.adminService.DeleteItem(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Dashboard handles GET /admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	dashboard, err := ac.adminService.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
