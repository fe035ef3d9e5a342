package coverletters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/render"
	"coverletter-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes. Extra handlers such as a rate limiter
// run before generation only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generateMiddleware ...gin.HandlerFunc) {
	generate := append(append([]gin.HandlerFunc{}, generateMiddleware...), h.generate)
	rg.POST("/cover-letter/generate", generate...)
	rg.GET("/cover-letter/history", h.history)
	rg.GET("/cover-letter/:id", h.get)
	rg.DELETE("/cover-letter/:id", h.delete)
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Set("statusTransition", Transition(fail(StageValidating, ErrInvalidInput)))
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cl, err := h.Svc.Generate(c.Request.Context(), GenerateInput{
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobDescription: req.JobDescription,
	})
	c.Set("statusTransition", Transition(err))
	if err != nil {
		details := gin.H{"stage": StageOf(err)}
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidInput.Error(), details)
		case errors.Is(err, ErrResumeNotFound):
			respond.Error(c, http.StatusNotFound, "resume_not_found", ErrResumeNotFound.Error(), details)
		case errors.Is(err, llm.ErrUnavailable):
			respond.Error(c, http.StatusBadGateway, "generation_unavailable", "Failed to generate cover letter", details)
		case errors.Is(err, render.ErrFailed):
			respond.Error(c, http.StatusInternalServerError, "render_failure", "Failed to render cover letter", details)
		default:
			respond.Error(c, http.StatusInternalServerError, "store_failure", "Failed to save cover letter", details)
		}
		return
	}

	c.Set("coverLetterId", cl.ID)
	respond.JSON(c, http.StatusCreated, toGenerateResponse(cl))
}

func (h *Handler) history(c *gin.Context) {
	list, err := h.Svc.History(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch history", nil)
		return
	}
	resp := make([]SummaryResponse, 0, len(list))
	for _, cl := range list {
		resp = append(resp, toSummaryResponse(cl))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cl, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		lookupError(c, err)
		return
	}
	respond.OK(c, toDetailResponse(cl))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		lookupError(c, err)
		return
	}
	respond.OK(c, gin.H{"id": id, "deleted": true})
}

func lookupError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "Cover letter not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch cover letter", nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid cover letter id", nil)
		return 0, false
	}
	return id, true
}
