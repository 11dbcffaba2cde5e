package httpapi

import (
	"strconv"

	"inkwell/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

type TimelineController struct{ tc TimelineUseCase }

func NewTimelineController(tc TimelineUseCase) *TimelineController {
	return &TimelineController{tc: tc}
}

func (ctl *TimelineController) GetTimeline(c *gin.Context) {
	start, err := strconv.ParseInt(c.DefaultQuery("start", "0"), 10, 64)
	if err != nil {
		fail(c, apperr.BadRequest("invalid start"))
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		fail(c, apperr.BadRequest("invalid limit"))
		return
	}

	posts, err := ctl.tc.GetTimeline(c.Request.Context(), actorID(c), start, limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"timeline": posts})
}
