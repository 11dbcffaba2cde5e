package httpapi

import (
	"github.com/gin-gonic/gin"
)

type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

func (ctl *FollowerController) FollowUser(c *gin.Context) {
	status, err := ctl.fc.FollowUser(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Follow user successfully", status)
}

func (ctl *FollowerController) UnfollowUser(c *gin.Context) {
	status, err := ctl.fc.UnfollowUser(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Unfollow user successfully", status)
}

func (ctl *FollowerController) GetFollowers(c *gin.Context) {
	followers, err := ctl.fc.GetFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "followers", followers)
}

func (ctl *FollowerController) GetFollowing(c *gin.Context) {
	following, err := ctl.fc.GetFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "following", following)
}
