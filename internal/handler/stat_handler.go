package handler

import (
	"strconv"

	"github.com/fanbaselab/fanbase/internal/service"
	"github.com/fanbaselab/fanbase/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService   service.StatService
	searchService service.SearchService
}

func NewStatHandler(statService service.StatService, searchService service.SearchService) *StatHandler {
	return &StatHandler{statService: statService, searchService: searchService}
}

func (h *StatHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.statService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

func (h *StatHandler) Totals(c *gin.Context) {
	totals, err := h.statService.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, totals)
}

func (h *StatHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.OK(c, []service.SearchHit{})
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	hits, err := h.searchService.Search(query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if hits == nil {
		hits = []service.SearchHit{}
	}
	response.OK(c, hits)
}
