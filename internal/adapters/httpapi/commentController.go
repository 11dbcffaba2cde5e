package httpapi

import (
	"inkwell/internal/core/like"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	cc CommentUseCase
	lc LikeUseCase
}

func NewCommentController(cc CommentUseCase, lc LikeUseCase) *CommentController {
	return &CommentController{cc: cc, lc: lc}
}

func (ctl *CommentController) Create(c *gin.Context) {
	var req struct {
		Post    string `json:"post"`
		Parent  string `json:"parent"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.cc.CreateComment(c.Request.Context(), actorID(c), req.Post, req.Parent, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "comment", res)
}

// ListForPost pages the root comments of a post, replies attached.
func (ctl *CommentController) ListForPost(c *gin.Context) {
	page, err := ctl.cc.ListRootComments(c.Request.Context(), actorID(c), c.Param("id"), pageParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "comments", page)
}

func (ctl *CommentController) Get(c *gin.Context) {
	res, err := ctl.cc.GetComment(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	got(c, "comment", res)
}

func (ctl *CommentController) Update(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.cc.UpdateComment(c.Request.Context(), actorID(c), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "comment", res)
}

func (ctl *CommentController) Delete(c *gin.Context) {
	if err := ctl.cc.DeleteComment(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	deleted(c, "comment")
}

func (ctl *CommentController) Like(c *gin.Context) {
	toggleLike(c, ctl.lc, like.TargetComment)
}
