package controller

import (
	"strconv"

	"quiz_sensei_backend/internal/service"
	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Create godoc
// @Summary 创建试卷
// @Description 创建试卷、题目关联和分值表。分值表必须与题目集一一对应
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuizReq true "试卷信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "分值表与题目集不一致"
// @Router /api/teacher/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// List godoc
// @Summary 试卷列表
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码，默认1"
// @Param   limit query int false "每页数量，默认20"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/teacher/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}

	quizzes, total, err := c.QuizService.ListQuizzes(page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary 试卷详情
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/teacher/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	quiz, err := c.QuizService.GetQuiz(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Update godoc
// @Summary 更新试卷
// @Description 题目集或分值表变化时整体重建关联
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body service.QuizReq true "试卷信息"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/teacher/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(ctx.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除试卷
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/teacher/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	if err := c.QuizService.DeleteQuiz(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SendLinkRequest 测验链接群发请求
type SendLinkRequest struct {
	Emails []string `json:"emails" binding:"required"`
}

// SendLink godoc
// @Summary 群发测验链接
// @Description 把试卷的唯一链接通过邮件发送给学生，发送过程异步进行
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body SendLinkRequest true "收件人列表"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/teacher/quizzes/{id}/send-link [post]
func (c *QuizController) SendLink(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req SendLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.SendQuizLink(id, req.Emails); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "quiz link is being sent"})
}

// GetByLink godoc
// @Summary 按链接取卷
// @Description 学生端入口：按唯一链接取卷答题。选项的正确标记不下发
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   link path string true "试卷唯一链接"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quiz/{link} [get]
func (c *QuizController) GetByLink(ctx *gin.Context) {
	link := ctx.Param("link")
	if link == "" {
		util.BadRequest(ctx, "invalid quiz link")
		return
	}

	quiz, err := c.QuizService.GetQuizByLink(ctx.Request.Context(), link)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	// 答题视图不暴露正确答案
	for i := range quiz.Questions {
		for j := range quiz.Questions[i].Options {
			quiz.Questions[i].Options[j].IsCorrect = false
		}
	}
	util.Success(ctx, quiz)
}
