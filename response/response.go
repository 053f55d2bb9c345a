package response

import (
	"net/http"

	apperrors "hotelhub/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply.
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "성공",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "성공",
		Data: data,
	})
}

// SuccessWithPagination writes a success envelope with paging info.
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "성공",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error writes a failure envelope with the given HTTP status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError maps a service error onto its status. Non-AppErrors become 500.
func FromError(c *gin.Context, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		Error(c, appErr.HTTPStatus(), appErr.Message)
		return
	}
	ServerError(c)
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "서버 오류가 발생했습니다")
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "인증이 필요합니다")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "권한이 없습니다")
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "찾을 수 없습니다")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}
