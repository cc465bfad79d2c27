package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodshare-be/internal/middleware"
	"foodshare-be/internal/models"
	"foodshare-be/internal/service"
)

type ItemController struct {
	itemService   service.ItemService
	ratingService service.RatingService
}

func NewItemController(itemService service.ItemService, ratingService service.RatingService) *ItemController {
	return &ItemController{
		itemService:   itemService,
		ratingService: ratingService,
	}
}

// Create handles POST /items. The donor is the logged-in user; one
// request inserts exactly one item.
func (ic *ItemController) Create(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, err := ic.itemService.Create(middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// List handles GET /items - available, unexpired items with pagination
func (ic *ItemController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	category := c.Query("category")

	resp, err := ic.itemService.List("", category, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles GET /items/search?query=...
func (ic *ItemController) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := ic.itemService.List(c.Query("query"), c.Query("category"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /items/:id - item detail with its ratings
func (ic *ItemController) Get(c *gin.Context) {
	itemID := c.Param("id")

	item, err := ic.itemService.Get(itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	ratings, err := ic.ratingService.ListByItem(itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "ratings": ratings})
}

// EditForm handles GET /items/:id/edit
func (ic *ItemController) EditForm(c *gin.Context) {
	item, err := ic.itemService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update handles PUT /items/:id
func (ic *ItemController) Update(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	err := ic.itemService.Update(c.Param("id"), middleware.UserID(c), middleware.Role(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/items")
}

// Claim handles PUT /items/:id/claim. The claiming pantry is the
// logged-in user, not a field of the request body.
func (ic *ItemController) Claim(c *gin.Context) {
	if err := ic.itemService.Claim(c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item claimed successfully"})
}

// Rate handles POST /items/:id/ratings
func (ic *ItemController) Rate(c *gin.Context) {
	var req models.RateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	itemID := c.Param("id")
	if _, err := ic.ratingService.Rate(itemID, middleware.UserID(c), &req); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/items/"+itemID)
}
