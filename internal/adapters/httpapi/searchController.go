package httpapi

import (
	"github.com/gin-gonic/gin"
)

type SearchController struct{ sc SearchUseCase }

func NewSearchController(sc SearchUseCase) *SearchController {
	return &SearchController{sc: sc}
}

// Search serves ?q=&type=less|hard.
func (ctl *SearchController) Search(c *gin.Context) {
	res, err := ctl.sc.Search(c.Request.Context(), actorID(c), c.Query("q"), c.Query("type"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", res)
}
