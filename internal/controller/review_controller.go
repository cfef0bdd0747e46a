package controller

import (
	"quiz_sensei_backend/internal/service"
	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// Review godoc
// @Summary 评阅开放题
// @Description 给一道开放题打分。重复评阅会覆盖旧分：先撤销旧贡献再计入新分，
// @Description 该次提交的得分率和用户的历史平均随之代数修正
// @Tags 评阅
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ReviewReq true "评阅内容"
// @Success 200 {object} util.Response{data=service.ReviewResp}
// @Failure 400 {object} util.Response "分数越界"
// @Failure 404 {object} util.Response "作答记录不存在"
// @Failure 422 {object} util.Response "试卷分值表缺项"
// @Router /api/teacher/reviews [post]
func (c *ReviewController) Review(ctx *gin.Context) {
	var req service.ReviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ReviewService.ReviewOpenEnded(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
