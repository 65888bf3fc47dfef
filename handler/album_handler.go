package handler

import (
	"errors"
	"net/http"

	"github.com/annazecevic/catalog-service/domain"
	"github.com/annazecevic/catalog-service/dto"
	"github.com/annazecevic/catalog-service/service"
	"github.com/gin-gonic/gin"
)

type AlbumHandler struct {
	svc service.AlbumService
}

func NewAlbumHandler(svc service.AlbumService) *AlbumHandler {
	return &AlbumHandler{svc: svc}
}

func (h *AlbumHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/getall", h.GetAll)
		api.GET("/search", h.Search)
		api.POST("/add", h.Add)
		api.PUT("/update/:id", h.Update)
		api.DELETE("/delete/:id", h.Delete)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// GET /api/getall
func (h *AlbumHandler) GetAll(c *gin.Context) {
	var q dto.ListAlbumsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	albums, err := h.svc.ListAlbums(c.Request.Context(), q)
	if err != nil {
		writeError(c, err, "error fetching items")
		return
	}
	c.JSON(http.StatusOK, albums)
}

// GET /api/search
func (h *AlbumHandler) Search(c *gin.Context) {
	var q dto.SearchAlbumsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	albums, err := h.svc.SearchAlbums(c.Request.Context(), q)
	if err != nil {
		writeError(c, err, "error retrieving items")
		return
	}
	c.JSON(http.StatusOK, albums)
}

// POST /api/add
func (h *AlbumHandler) Add(c *gin.Context) {
	var req dto.AddAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	album, err := h.svc.AddAlbum(c.Request.Context(), &req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
			return
		}
		// add-time storage rejections surface as 400, matching the
		// write-path contract
		c.JSON(http.StatusBadRequest, gin.H{"error": "error saving item"})
		return
	}
	c.JSON(http.StatusCreated, album)
}

// PUT /api/update/:id
func (h *AlbumHandler) Update(c *gin.Context) {
	var req dto.UpdateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	album, err := h.svc.UpdateAlbum(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err, "error updating item")
		return
	}
	c.JSON(http.StatusOK, album)
}

// DELETE /api/delete/:id
func (h *AlbumHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteAlbum(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "error deleting item")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "item deleted"})
}

// writeError maps service errors to HTTP statuses. Storage error detail is
// logged by the lower layers and never echoed to the client.
func writeError(c *gin.Context, err error, storageMessage string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
	case errors.Is(err, domain.ErrNoMatches):
		c.JSON(http.StatusNotFound, gin.H{"message": "no matching items found"})
	case errors.Is(err, domain.ErrAlbumNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageMessage})
	}
}
