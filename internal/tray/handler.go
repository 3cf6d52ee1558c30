package tray

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/shared/server/middleware"
	"agriboost-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the tray service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tray routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tray/soil-report", h.putSoilReport)
	rg.POST("/tray/crop-image", h.putCropImage)
	rg.GET("/tray", h.current)
}

func (h *Handler) putSoilReport(c *gin.Context) {
	h.put(c, h.Svc.PutSoilReport)
}

func (h *Handler) putCropImage(c *gin.Context) {
	h.put(c, h.Svc.PutCropImage)
}

func (h *Handler) put(c *gin.Context, save func(ctx context.Context, ownerID, fileName string, r io.Reader) (FileRef, error)) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	ref, err := save(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		}
		return
	}
	respond.Created(c, ref)
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	respond.OK(c, h.Svc.Current(userID))
}
