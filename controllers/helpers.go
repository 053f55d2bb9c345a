package controllers

import (
	"strconv"

	"hotelhub/middleware"
	"hotelhub/response"
	"hotelhub/services"
	"hotelhub/types"

	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "잘못된 ID입니다")
		return 0, false
	}
	return uint(id), true
}

func pageFromQuery(c *gin.Context) services.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return services.Page{Page: page, Limit: limit}
}

func mustCaller(c *gin.Context) (types.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return types.Caller{}, false
	}
	return caller, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다: "+err.Error())
		return false
	}
	return true
}

func paginated(c *gin.Context, data interface{}, page services.Page, total int64) {
	page = page.Normalize()
	response.SuccessWithPagination(c, data, page.Page, page.Limit, int(total))
}
