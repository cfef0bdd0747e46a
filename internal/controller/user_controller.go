package controller

import (
	"quiz_sensei_backend/internal/service"
	"quiz_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService   *service.UserService
	ResultService *service.ResultService
}

func NewUserController(userService *service.UserService, resultService *service.ResultService) *UserController {
	return &UserController{
		UserService:   userService,
		ResultService: resultService,
	}
}

// GetProfile godoc
// @Summary 获取个人资料
// @Description 返回当前用户资料及答题统计（测验次数、累计用时、平均得分率）
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileReq true "资料更新"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetUserResults godoc
// @Summary 查询指定用户的成绩单
// @Description 教师查看某个学生的全部提交记录及逐题作答
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=[]model.Result}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/teacher/users/{id}/results [get]
func (c *UserController) GetUserResults(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if _, err := c.UserService.GetUserByID(userID); err != nil {
		handleServiceError(ctx, err)
		return
	}

	results, err := c.ResultService.ListUserResults(userID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
