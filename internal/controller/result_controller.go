package controller

import (
	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/service"
	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// Submit godoc
// @Summary 提交答卷
// @Description 判分并落库一次提交：客观题按选项自动判分，开放题先计入分母、
// @Description 待教师评阅后回填分子。返回本次得分、满分和得分率
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body service.SubmitResultReq true "作答内容"
// @Success 201 {object} util.Response{data=service.SubmitResultResp}
// @Failure 400 {object} util.Response "作答形态与题型不符"
// @Failure 404 {object} util.Response "试卷不存在"
// @Failure 422 {object} util.Response "试卷分值表缺项"
// @Router /api/quizzes/{id}/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	if quizID == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req service.SubmitResultReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ResultService.SubmitResult(claims.UserID, quizID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, resp)
}

// ListMine godoc
// @Summary 我的成绩单
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Result}
// @Router /api/results [get]
func (c *ResultController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.ResultService.ListUserResults(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// Get godoc
// @Summary 成绩详情
// @Description 学生只能看自己的提交，教师和管理员不受限
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "成绩ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 403 {object} util.Response "无权查看"
// @Failure 404 {object} util.Response "成绩不存在"
// @Router /api/results/{id} [get]
func (c *ResultController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid result id")
		return
	}

	result, err := c.ResultService.GetResult(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	if claims.Role == model.Student && result.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, result)
}
