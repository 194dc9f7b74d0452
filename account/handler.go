package account

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/webtoon-api/server"
	"github.com/kbukum/webtoon-api/validation"
)

// CredentialsRequest is the body of POST /register and POST /login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// Handler serves the account routes.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts POST /register and POST /login. Both are public.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var req CredentialsRequest
	if err := validation.BindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	res, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, res)
}

func (h *Handler) login(c *gin.Context) {
	var req CredentialsRequest
	if err := validation.BindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, res)
}
