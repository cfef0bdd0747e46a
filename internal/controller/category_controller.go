package controller

import (
	"quiz_sensei_backend/internal/service"
	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	QuestionService *service.QuestionService
}

func NewCategoryController(questionService *service.QuestionService) *CategoryController {
	return &CategoryController{QuestionService: questionService}
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List godoc
// @Summary 分类列表
// @Tags 分类
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/teacher/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.QuestionService.ListCategories()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// Create godoc
// @Summary 创建分类
// @Tags 分类
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CategoryRequest true "分类信息"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/teacher/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.QuestionService.CreateCategory(req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// Update godoc
// @Summary 更新分类
// @Tags 分类
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "分类ID"
// @Param   body body CategoryRequest true "分类信息"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/teacher/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.QuestionService.UpdateCategory(id, req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// Delete godoc
// @Summary 删除分类
// @Tags 分类
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "分类ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/teacher/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	if err := c.QuestionService.DeleteCategory(id); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
