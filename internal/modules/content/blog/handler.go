package blog

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/investordaily/blogd/internal/modules/content/editor"
	"github.com/investordaily/blogd/internal/pkg/response"
	"gorm.io/gorm"
)

// Handler handles blog HTTP requests.
type Handler struct {
	svc   *Service
	store *editor.Store
}

func NewHandler(svc *Service, store *editor.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

// RegisterRoutes mounts blog routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	blogs := rg.Group("/blogs")

	blogs.GET("", h.list)
	blogs.GET("/count", h.count)
	blogs.GET("/:id", h.get)
	blogs.POST("", h.publish)
	blogs.PUT("/:id", h.update)
	blogs.DELETE("/:id", h.delete)
}

// list GET /blogs
func (h *Handler) list(c *gin.Context) {
	blogs, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	items := make([]blogResponse, len(blogs))
	for i, b := range blogs {
		items[i] = toResponse(&b)
	}
	response.OK(c, items)
}

// count GET /blogs/count, so the client can tell its empty state from loading.
func (h *Handler) count(c *gin.Context) {
	n, err := h.svc.Count()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": n})
}

// get GET /blogs/:id
func (h *Handler) get(c *gin.Context) {
	b, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if b == nil {
		response.NotFoundMsg(c, "blog does not exist")
		return
	}
	response.OK(c, toResponse(b))
}

// publish POST /blogs
func (h *Handler) publish(c *gin.Context) {
	var dto documentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	composer := editor.New(h.store)
	if err := dto.apply(composer); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := composer.Submit(c.Request.Context(), editor.IntentPublish)
	if err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			response.UnprocessableEntity(c, verr.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// update PUT /blogs/:id
func (h *Handler) update(c *gin.Context) {
	var dto documentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if b == nil {
		response.NotFoundMsg(c, "blog does not exist")
		return
	}

	composer := editor.New(h.store)
	composer.HydrateBlog(b)
	if err := dto.apply(composer); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := composer.Submit(c.Request.Context(), editor.IntentUpdate); err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			response.UnprocessableEntity(c, verr.Reason)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "blog does not exist")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": b.ID})
}

// delete DELETE /blogs/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "blog does not exist")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
