package httpapi

import (
	"github.com/gin-gonic/gin"
)

type CategoryController struct{ cc CategoryUseCase }

func NewCategoryController(cc CategoryUseCase) *CategoryController {
	return &CategoryController{cc: cc}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (ctl *CategoryController) List(c *gin.Context) {
	categories, err := ctl.cc.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "categories", categories)
}

func (ctl *CategoryController) Get(c *gin.Context) {
	category, err := ctl.cc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	got(c, "category", category)
}

func (ctl *CategoryController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	category, err := ctl.cc.CreateCategory(c.Request.Context(), actorID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "category", category)
}

func (ctl *CategoryController) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	category, err := ctl.cc.UpdateCategory(c.Request.Context(), actorID(c), c.Param("id"), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "category", category)
}

func (ctl *CategoryController) Delete(c *gin.Context) {
	if err := ctl.cc.DeleteCategory(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	deleted(c, "category")
}
