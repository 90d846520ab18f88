package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/resource"
	"go.uber.org/zap"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50
)

// PublicLookup 决定公共接口是否提供单条查询以及按哪一列查询。
type PublicLookup int

const (
	LookupNone PublicLookup = iota
	LookupByID
	LookupBySlug
)

// ResourceRoutes is implemented by every ResourceHandler so the router can
// mount them without knowing the content type.
type ResourceRoutes interface {
	RegisterPublic(r gin.IRoutes)
	RegisterAdmin(r gin.IRoutes)
}

// ResourceHandler exposes one resource.Service over HTTP.
type ResourceHandler[T any, PT resource.Entity[T], P resource.Payload[T]] struct {
	svc      *resource.Service[T, PT, P]
	log      *zap.Logger
	lookup   PublicLookup
	paginate bool
}

// NewResourceHandler 为一种内容资源创建处理器；paginate 为 true 时公共列表支持 page/perPage 参数。
func NewResourceHandler[T any, PT resource.Entity[T], P resource.Payload[T]](svc *resource.Service[T, PT, P], log *zap.Logger, lookup PublicLookup, paginate bool) *ResourceHandler[T, PT, P] {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResourceHandler[T, PT, P]{svc: svc, log: log, lookup: lookup, paginate: paginate}
}

// RegisterPublic mounts GET /<plural> and, when configured, the single-item lookup.
func (h *ResourceHandler[T, PT, P]) RegisterPublic(r gin.IRoutes) {
	base := "/" + h.svc.Definition().Name
	r.GET(base, h.ListPublic)
	switch h.lookup {
	case LookupByID:
		r.GET(base+"/:id", h.GetPublic)
	case LookupBySlug:
		r.GET(base+"/:slug", h.GetPublicBySlug)
	}
}

// RegisterAdmin mounts the CRUD routes; r is expected to sit behind AuthRequired.
func (h *ResourceHandler[T, PT, P]) RegisterAdmin(r gin.IRoutes) {
	base := "/" + h.svc.Definition().Name
	r.GET(base, h.ListAdmin)
	r.POST(base, h.Create)
	r.POST(base+"/reorder", h.Reorder)
	r.GET(base+"/:id", h.Get)
	r.PATCH(base+"/:id", h.Update)
	r.DELETE(base+"/:id", h.Delete)
	r.POST(base+"/:id/toggle", h.Toggle)
}

// ListPublic 返回启用的记录
func (h *ResourceHandler[T, PT, P]) ListPublic(c *gin.Context) {
	page, perPage := 1, 0
	if h.paginate {
		page = parsePositiveQuery(c, "page", 1)
		perPage = parsePositiveQuery(c, "perPage", defaultPerPage)
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
	}

	result, err := h.svc.ListPublic(c.Request.Context(), page, perPage)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}

	body := gin.H{h.svc.Definition().Name: nonNil(result.Items)}
	if h.paginate {
		body["pagination"] = gin.H{
			"page":       result.Page,
			"perPage":    result.PerPage,
			"total":      result.Total,
			"totalPages": result.TotalPages,
		}
	}
	c.JSON(http.StatusOK, body)
}

// GetPublic 按 id 返回启用的记录，未启用视为不存在。
func (h *ResourceHandler[T, PT, P]) GetPublic(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	item, err := h.svc.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Singular: item})
}

// GetPublicBySlug 按 slug 返回启用的页面
func (h *ResourceHandler[T, PT, P]) GetPublicBySlug(c *gin.Context) {
	item, err := h.svc.GetPublicBy(c.Request.Context(), "slug", c.Param("slug"))
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Singular: item})
}

// ListAdmin 返回全部记录，包括未启用的
func (h *ResourceHandler[T, PT, P]) ListAdmin(c *gin.Context) {
	items, err := h.svc.ListAdmin(c.Request.Context())
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Name: nonNil(items)})
}

func (h *ResourceHandler[T, PT, P]) Get(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Singular: item})
}

func (h *ResourceHandler[T, PT, P]) Create(c *gin.Context) {
	var payload P
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{h.svc.Definition().Singular: item})
}

func (h *ResourceHandler[T, PT, P]) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var payload P
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Singular: item})
}

func (h *ResourceHandler[T, PT, P]) Delete(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *ResourceHandler[T, PT, P]) Toggle(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	item, err := h.svc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Singular: item})
}

type reorderPayload struct {
	IDs []uint `json:"ids"`
}

// Reorder 按给定 id 顺序重排，返回重排后的完整列表。
func (h *ResourceHandler[T, PT, P]) Reorder(c *gin.Context) {
	var payload reorderPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	ctx := c.Request.Context()
	if err := h.svc.Reorder(ctx, payload.IDs); err != nil {
		respondResourceError(c, h.log, err)
		return
	}

	items, err := h.svc.ListAdmin(ctx)
	if err != nil {
		respondResourceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.svc.Definition().Name: nonNil(items)})
}

func (h *ResourceHandler[T, PT, P]) idParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
