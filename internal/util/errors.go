package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrResultNotFound   = errors.New("result not found")
	ErrAnswerNotFound   = errors.New("open-ended answer not found")

	// 分值表缺项属于出卷数据缺陷，与请求参数错误分开上报
	ErrScoreEntryMissing = errors.New("quiz has no score entry for question")

	// 同一 Result 的并发评阅冲突，调用方应整体重试
	ErrReviewConflict = errors.New("concurrent review on the same result")
)

// ValidationError 请求内容不合法（作答形态错误、分数越界等），不落库直接拒绝
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
