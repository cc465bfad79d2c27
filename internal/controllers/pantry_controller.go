package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare-be/internal/models"
	"foodshare-be/internal/service"
)

type PantryController struct {
	pantryService service.PantryService
}

func NewPantryController(pantryService service.PantryService) *PantryController {
	return &PantryController{pantryService: pantryService}
}

// Create handles POST /pantries
func (pc *PantryController) Create(c *gin.Context) {
	var req models.PantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	pantry, err := pc.pantryService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pantry)
}

// List handles GET /pantries
func (pc *PantryController) List(c *gin.Context) {
	pantries, err := pc.pantryService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pantries)
}

// EditForm handles GET /pantries/:id/edit
func (pc *PantryController) EditForm(c *gin.Context) {
	pantry, err := pc.pantryService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pantry)
}

// Update handles PUT /pantries/:id
func (pc *PantryController) Update(c *gin.Context) {
	var req models.PantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := pc.pantryService.Update(c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/pantries")
}
