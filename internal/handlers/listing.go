package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casafind/casafind-backend/internal/services"
)

type ListingHandler struct {
	listingService services.ListingService
}

func NewListingHandler(listingService services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

type createListingRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`
	City     string   `json:"city" binding:"required,max=255"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
	Bedrooms *int     `json:"bedrooms" binding:"required,min=1"`
	AgentID  string   `json:"agentId" binding:"required,uuid"`
}

type updateListingRequest struct {
	Title    *string  `json:"title" binding:"omitempty,max=255"`
	City     *string  `json:"city" binding:"omitempty,max=255"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	Bedrooms *int     `json:"bedrooms" binding:"omitempty,min=1"`
	AgentID  *string  `json:"agentId" binding:"omitempty,uuid"`
}

func (lh *ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("agentId is not a valid id"))
		return
	}

	listing, err := lh.listingService.Create(c.Request.Context(), services.CreateListingInput{
		Title:    req.Title,
		City:     req.City,
		Price:    *req.Price,
		Bedrooms: *req.Bedrooms,
		AgentID:  agentID,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"data": listing})
}

func (lh *ListingHandler) List(c *gin.Context) {
	listings, err := lh.listingService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"data": listings})
}

func (lh *ListingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	listing, err := lh.listingService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"data": listing})
}

func (lh *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	input := services.UpdateListingInput{
		Title:    req.Title,
		City:     req.City,
		Price:    req.Price,
		Bedrooms: req.Bedrooms,
	}
	if req.AgentID != nil {
		agentID, err := uuid.Parse(*req.AgentID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("agentId is not a valid id"))
			return
		}
		input.AgentID = &agentID
	}

	listing, err := lh.listingService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"data": listing})
}

func (lh *ListingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := lh.listingService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Listing deleted successfully."})
}

func (lh *ListingHandler) TrackView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	views, err := lh.listingService.TrackView(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"data": gin.H{"listingId": id, "views": views}})
}

// pathID parses the :id path param, responding 400 itself on bad input.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("id is not a valid id"))
		return uuid.Nil, false
	}
	return id, true
}
