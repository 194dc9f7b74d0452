package webtoon

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webtoon-api/auth/authctx"
	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/logger"
	"github.com/kbukum/webtoon-api/server"
	"github.com/kbukum/webtoon-api/validation"
)

// MessageDeleted is the body message of a successful delete.
const MessageDeleted = "Webtoon deleted successfully"

// CreateRequest is the body of POST /webtoons.
type CreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Characters  string `json:"characters" validate:"omitempty"`
}

// Handler serves the /webtoons routes.
type Handler struct {
	repo Repository
	log  *logger.Logger
}

// NewHandler creates a Handler backed by repo.
func NewHandler(repo Repository, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handler{repo: repo, log: log.WithComponent("webtoon")}
}

// RegisterRoutes mounts the webtoon routes. authn guards the mutating
// routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes, authn gin.HandlerFunc) {
	r.GET("/webtoons", h.list)
	r.GET("/webtoons/:id", h.get)
	r.POST("/webtoons", authn, h.create)
	r.DELETE("/webtoons/:id", authn, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.StoreFailure(err))
		return
	}
	server.RespondOK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	w, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, repoError(err, id))
		return
	}
	server.RespondOK(c, w)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := validation.BindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	principal, err := authctx.PrincipalOrError(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	w := &Webtoon{
		Title:       req.Title,
		Description: req.Description,
		Characters:  req.Characters,
		CreatedBy:   principal.Subject,
	}
	if err := h.repo.Create(c.Request.Context(), w); err != nil {
		server.RespondWithError(c, apperrors.StoreFailure(err))
		return
	}

	h.log.WithContext(c.Request.Context()).Info("Webtoon created", map[string]interface{}{
		"webtoon_id": w.ID,
	})
	server.RespondCreated(c, w)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, repoError(err, id))
		return
	}

	h.log.WithContext(c.Request.Context()).Info("Webtoon deleted", map[string]interface{}{
		"webtoon_id": id,
	})
	server.RespondMessage(c, MessageDeleted)
}

func repoError(err error, id string) *apperrors.AppError {
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFound("webtoon", id)
	}
	return apperrors.StoreFailure(err)
}
