package controller

import (
	"fmt"
	"path/filepath"
	"strconv"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/repository"
	"quiz_sensei_backend/internal/service"
	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	StorageService  *service.StorageService
}

func NewQuestionController(questionService *service.QuestionService, storageService *service.StorageService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		StorageService:  storageService,
	}
}

// Create godoc
// @Summary 创建题目
// @Description 创建题目及其选项。开放题不带选项，单选题至多一个正确选项
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuestionReq true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/teacher/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// Get godoc
// @Summary 题目详情
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/teacher/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.QuestionService.GetQuestion(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Select godoc
// @Summary 组卷选题
// @Description 按分类、难度、题型筛选题目，可只看收藏，默认返回 10 道
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   categoryId query int false "分类ID"
// @Param   difficulty query string false "难度 easy/medium/hard"
// @Param   answerType query string false "题型 single_choice/multiple_choice/open_ended"
// @Param   quantity query int false "数量，默认10"
// @Param   favorited query bool false "只看收藏"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/teacher/questions [get]
func (c *QuestionController) Select(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quantity, _ := strconv.Atoi(ctx.Query("quantity"))
	favorited, _ := strconv.ParseBool(ctx.Query("favorited"))

	filter := repository.QuestionFilter{
		CategoryID:    util.MustParseUint(ctx.Query("categoryId")),
		Difficulty:    model.Difficulty(ctx.Query("difficulty")),
		AnswerType:    model.AnswerType(ctx.Query("answerType")),
		Quantity:      quantity,
		FavoritedOnly: favorited,
		UserID:        claims.UserID,
	}

	questions, err := c.QuestionService.SelectQuestions(filter)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Update godoc
// @Summary 更新题目
// @Description 题干与选项整体替换
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Param   body body service.QuestionReq true "题目信息"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/teacher/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.UpdateQuestion(id, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Delete godoc
// @Summary 删除题目
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/teacher/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.QuestionService.DeleteQuestion(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ToggleFavorite godoc
// @Summary 收藏/取消收藏题目
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=object} "favorited 表示操作后的状态"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/teacher/questions/{id}/favorite [post]
func (c *QuestionController) ToggleFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	favorited, err := c.QuestionService.ToggleFavorite(claims.UserID, id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"favorited": favorited})
}

// UploadImage godoc
// @Summary 上传题目/选项配图
// @Tags 题库
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "图片文件"
// @Success 201 {object} util.Response{data=object} "url 为图片访问地址"
// @Failure 400 {object} util.Response "文件缺失或过大"
// @Router /api/teacher/questions/image [post]
func (c *QuestionController) UploadImage(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	defer file.Close()

	const maxImageSize = 5 << 20
	if header.Size > maxImageSize {
		util.BadRequest(ctx, "image exceeds 5MB limit")
		return
	}

	filename := fmt.Sprintf("questions/%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url})
}
