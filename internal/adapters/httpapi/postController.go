package httpapi

import (
	"inkwell/internal/core/like"
	postPort "inkwell/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc PostUseCase
	fc FeedUseCase
	lc LikeUseCase
}

func NewPostController(pc PostUseCase, fc FeedUseCase, lc LikeUseCase) *PostController {
	return &PostController{pc: pc, fc: fc, lc: lc}
}

// ListPosts serves the feed: page, limit, sort_by, order, author, liked, category.
func (ctl *PostController) ListPosts(c *gin.Context) {
	page, err := ctl.fc.ListPosts(c.Request.Context(), feedQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "posts", page)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postPort.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), actorID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "post", res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	res, err := ctl.pc.GetPost(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	got(c, "post", res)
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	var req postPort.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.pc.UpdatePost(c.Request.Context(), actorID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "post", res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	deleted(c, "post")
}

func (ctl *PostController) LikePost(c *gin.Context) {
	toggleLike(c, ctl.lc, like.TargetPost)
}

func (ctl *PostController) UploadImage(c *gin.Context) {
	file, closeFn, err := formUpload(c, "image")
	if err != nil {
		fail(c, err)
		return
	}
	defer closeFn()

	res, err := ctl.pc.AttachFeaturedImage(c.Request.Context(), actorID(c), c.Param("id"), file)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "post", res)
}

func toggleLike(c *gin.Context, lc LikeUseCase, kind like.TargetKind) {
	res, err := lc.ToggleLike(c.Request.Context(), actorID(c), like.Target{Kind: kind, ID: c.Param("id")})
	if err != nil {
		fail(c, err)
		return
	}
	verb := "Unlike"
	if res.Liked {
		verb = "Like"
	}
	ok(c, verb+" "+string(kind)+" successfully", res)
}
