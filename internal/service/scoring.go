package service

import (
	"quiz_sensei_backend/internal/model"
)

// 判分引擎。全部为纯函数：客观题按选项集合算部分分并扣错选罚分，
// 开放题提交时记 0 分、满分先计入分母，评阅后通过 ReconcileReview 回填。

const wrongPickPenalty = 0.5

// GradeObjectiveAnswer 计算一道单选/多选题的得分贡献。
// 部分分 = 命中正确选项的比例 * 满分；罚分 = 0.5 * 错选数 * 满分；
// 贡献值封底为 0，一道题永远不会拉低整卷总分。
// 没有任何正确选项的退化题目直接记 0。
func GradeObjectiveAnswer(correctIDs, selectedIDs []uint, maxScore float64) float64 {
	if len(correctIDs) == 0 || maxScore <= 0 {
		return 0
	}

	correct := make(map[uint]bool, len(correctIDs))
	for _, id := range correctIDs {
		correct[id] = true
	}

	seen := make(map[uint]bool, len(selectedIDs))
	hits := 0
	wrong := 0
	for _, id := range selectedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if correct[id] {
			hits++
		} else {
			wrong++
		}
	}

	partial := float64(hits) / float64(len(correctIDs)) * maxScore
	penalty := wrongPickPenalty * float64(wrong) * maxScore

	contribution := partial - penalty
	if contribution < 0 {
		return 0
	}
	return contribution
}

// AnsweredQuestion 一道已作答题目的判分输入，由提交服务解析好后传入
type AnsweredQuestion struct {
	Question          *model.Question
	MaxScore          float64
	SelectedOptionIDs []uint
}

// SubmissionTotals 整卷判分结果
type SubmissionTotals struct {
	Score    float64
	MaxScore float64
}

// ScoreSubmission 汇总一次提交：客观题逐题判分，开放题只计分母，
// 其分子在人工评阅后才进入总分
func ScoreSubmission(answers []AnsweredQuestion) SubmissionTotals {
	var totals SubmissionTotals

	for _, a := range answers {
		totals.MaxScore += a.MaxScore

		if a.Question.AnswerType.IsObjective() {
			totals.Score += GradeObjectiveAnswer(a.Question.CorrectOptionIDs(), a.SelectedOptionIDs, a.MaxScore)
		}
	}

	return totals
}

// Percentage 得分率换算。没有计分题的试卷按满分处理，这是明确的策略而非疏漏
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 100
	}
	return score / maxScore * 100
}

// PerformanceStat 用户的终身答题统计（users 表上的三个标量字段）
type PerformanceStat struct {
	OverallPercentage float64
	TestsTaken        int
	TimeSpent         int64
}

// FoldSubmission 把一次新提交的得分率折入流式加权平均，O(1)，
// 不保留逐次提交的历史
func FoldSubmission(stat PerformanceStat, pct float64, timeTaken int64) PerformanceStat {
	taken := float64(stat.TestsTaken)
	stat.OverallPercentage = (stat.OverallPercentage*taken + pct) / (taken + 1)
	stat.TestsTaken++
	stat.TimeSpent += timeTaken
	return stat
}

// ReconcileReview 评阅改变了某次提交的得分率时，代数地撤销旧贡献、
// 计入新贡献。分母不变：评阅不算一次新的测验。
func ReconcileReview(stat PerformanceStat, oldPct, newPct float64) PerformanceStat {
	if stat.TestsTaken <= 0 {
		return stat
	}
	taken := float64(stat.TestsTaken)
	stat.OverallPercentage = (stat.OverallPercentage*taken - oldPct + newPct) / taken
	if stat.OverallPercentage < 0 {
		stat.OverallPercentage = 0
	}
	if stat.OverallPercentage > 100 {
		stat.OverallPercentage = 100
	}
	return stat
}
