package controller

import (
	"errors"

	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError 业务错误到 HTTP 状态码的统一映射。
// 分值表缺项是出卷数据缺陷，返回 422 与参数错误区分开。
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrReviewConflict):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrScoreEntryMissing):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCategoryNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrAnswerNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
