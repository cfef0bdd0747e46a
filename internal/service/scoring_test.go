package service

import (
	"testing"

	"quiz_sensei_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func option(id uint, correct bool) model.AnswerOption {
	return model.AnswerOption{
		BaseModel: model.BaseModel{ID: id},
		IsCorrect: correct,
	}
}

func objectiveQuestion(kind model.AnswerType, options ...model.AnswerOption) *model.Question {
	return &model.Question{
		AnswerType: kind,
		Options:    options,
	}
}

func TestGradeObjectiveAnswer(t *testing.T) {
	tests := []struct {
		name     string
		correct  []uint
		selected []uint
		maxScore float64
		want     float64
	}{
		{
			name:     "single choice correct pick scores full",
			correct:  []uint{1},
			selected: []uint{1},
			maxScore: 10,
			want:     10,
		},
		{
			name:     "one correct one wrong cancel out",
			correct:  []uint{1, 2},
			selected: []uint{1, 3},
			maxScore: 10,
			want:     0, // partial 5 - penalty 5
		},
		{
			name:     "all correct no wrong",
			correct:  []uint{1, 2},
			selected: []uint{1, 2},
			maxScore: 10,
			want:     10,
		},
		{
			name:     "half of correct set",
			correct:  []uint{1, 2},
			selected: []uint{1},
			maxScore: 10,
			want:     5,
		},
		{
			name:     "many wrong picks never go negative",
			correct:  []uint{1},
			selected: []uint{2, 3, 4, 5},
			maxScore: 10,
			want:     0,
		},
		{
			name:     "degenerate question without correct options",
			correct:  nil,
			selected: []uint{1, 2},
			maxScore: 10,
			want:     0,
		},
		{
			name:     "duplicate selections count once",
			correct:  []uint{1, 2},
			selected: []uint{1, 1, 1},
			maxScore: 10,
			want:     5,
		},
		{
			name:     "no selection scores zero",
			correct:  []uint{1, 2},
			selected: nil,
			maxScore: 10,
			want:     0,
		},
		{
			name:     "zero max score",
			correct:  []uint{1},
			selected: []uint{1},
			maxScore: 0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeObjectiveAnswer(tt.correct, tt.selected, tt.maxScore)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// 选中更多正确选项（且不增加错选）得分贡献不会下降
func TestGradeObjectiveAnswerMonotonicity(t *testing.T) {
	correct := []uint{1, 2, 3, 4}

	previous := 0.0
	selected := []uint{}
	for _, id := range correct {
		selected = append(selected, id)
		got := GradeObjectiveAnswer(correct, selected, 20)
		assert.GreaterOrEqual(t, got, previous)
		previous = got
	}
	assert.InDelta(t, 20.0, previous, 1e-9)

	// 错选数量不变时同样成立
	withWrong := GradeObjectiveAnswer(correct, []uint{1, 99}, 20)
	withWrongMore := GradeObjectiveAnswer(correct, []uint{1, 2, 99}, 20)
	assert.GreaterOrEqual(t, withWrongMore, withWrong)
}

func TestScoreSubmission(t *testing.T) {
	single := objectiveQuestion(model.SingleChoice, option(1, true), option(2, false))
	multi := objectiveQuestion(model.MultipleChoice,
		option(3, true), option(4, true), option(5, false), option(6, false))
	openEnded := objectiveQuestion(model.OpenEnded)

	tests := []struct {
		name        string
		answers     []AnsweredQuestion
		wantScore   float64
		wantMax     float64
		wantPercent float64
	}{
		{
			name: "single choice full marks",
			answers: []AnsweredQuestion{
				{Question: single, MaxScore: 10, SelectedOptionIDs: []uint{1}},
			},
			wantScore:   10,
			wantMax:     10,
			wantPercent: 100,
		},
		{
			name: "multi choice penalty eats partial credit",
			answers: []AnsweredQuestion{
				{Question: multi, MaxScore: 10, SelectedOptionIDs: []uint{3, 5}},
			},
			wantScore:   0,
			wantMax:     10,
			wantPercent: 0,
		},
		{
			name: "open ended counts toward denominator only",
			answers: []AnsweredQuestion{
				{Question: openEnded, MaxScore: 10},
			},
			wantScore:   0,
			wantMax:     10,
			wantPercent: 0,
		},
		{
			name: "mixed quiz",
			answers: []AnsweredQuestion{
				{Question: single, MaxScore: 10, SelectedOptionIDs: []uint{1}},
				{Question: multi, MaxScore: 10, SelectedOptionIDs: []uint{3, 4}},
				{Question: openEnded, MaxScore: 20},
			},
			wantScore:   20,
			wantMax:     40,
			wantPercent: 50,
		},
		{
			name:        "empty submission is a perfect score by policy",
			answers:     nil,
			wantScore:   0,
			wantMax:     0,
			wantPercent: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ScoreSubmission(tt.answers)
			assert.InDelta(t, tt.wantScore, totals.Score, 1e-9)
			assert.InDelta(t, tt.wantMax, totals.MaxScore, 1e-9)
			assert.InDelta(t, tt.wantPercent, Percentage(totals.Score, totals.MaxScore), 1e-9)
		})
	}
}

func TestFoldSubmissionMatchesArithmeticMean(t *testing.T) {
	percentages := []float64{100, 0, 50, 75, 33.5, 90, 12.25}

	stat := PerformanceStat{OverallPercentage: 100}
	sum := 0.0
	for i, pct := range percentages {
		stat = FoldSubmission(stat, pct, 60)
		sum += pct

		assert.Equal(t, i+1, stat.TestsTaken)
		assert.InDelta(t, sum/float64(i+1), stat.OverallPercentage, 1e-9)
	}
	assert.Equal(t, int64(60*len(percentages)), stat.TimeSpent)
}

func TestFoldSubmissionFirstQuizReplacesDefault(t *testing.T) {
	// 新用户默认 100%，第一次 0 分提交后整体就是 0
	stat := FoldSubmission(PerformanceStat{OverallPercentage: 100}, 0, 120)

	assert.Equal(t, 1, stat.TestsTaken)
	assert.InDelta(t, 0, stat.OverallPercentage, 1e-9)
	assert.Equal(t, int64(120), stat.TimeSpent)
}

func TestReconcileReview(t *testing.T) {
	t.Run("review of sole open-ended question lifts average", func(t *testing.T) {
		// 唯一一道开放题提交后 0%，评 7/10 之后该次提交变成 70%
		stat := FoldSubmission(PerformanceStat{OverallPercentage: 100}, 0, 60)

		stat = ReconcileReview(stat, 0, 70)
		assert.InDelta(t, 70, stat.OverallPercentage, 1e-9)
		assert.Equal(t, 1, stat.TestsTaken)
	})

	t.Run("same review applied twice is a no-op", func(t *testing.T) {
		stat := PerformanceStat{OverallPercentage: 70, TestsTaken: 1}

		again := ReconcileReview(stat, 70, 70)
		assert.InDelta(t, stat.OverallPercentage, again.OverallPercentage, 1e-9)
		assert.Equal(t, stat.TestsTaken, again.TestsTaken)
	})

	t.Run("re-review shifts only the delta", func(t *testing.T) {
		// 7/10 改评 9/10：70% -> 90%
		stat := PerformanceStat{OverallPercentage: 70, TestsTaken: 1}

		stat = ReconcileReview(stat, 70, 90)
		assert.InDelta(t, 90, stat.OverallPercentage, 1e-9)
	})

	t.Run("correction respects other submissions in the mean", func(t *testing.T) {
		stat := PerformanceStat{OverallPercentage: 100}
		stat = FoldSubmission(stat, 80, 60)
		stat = FoldSubmission(stat, 0, 60) // 开放题待评阅

		stat = ReconcileReview(stat, 0, 60)
		assert.InDelta(t, 70, stat.OverallPercentage, 1e-9)
		assert.Equal(t, 2, stat.TestsTaken)
	})

	t.Run("result stays within bounds", func(t *testing.T) {
		stat := ReconcileReview(PerformanceStat{OverallPercentage: 5, TestsTaken: 1}, 100, 0)
		assert.GreaterOrEqual(t, stat.OverallPercentage, 0.0)

		stat = ReconcileReview(PerformanceStat{OverallPercentage: 95, TestsTaken: 1}, 0, 200)
		assert.LessOrEqual(t, stat.OverallPercentage, 100.0)
	})

	t.Run("no tests taken leaves statistic untouched", func(t *testing.T) {
		stat := ReconcileReview(PerformanceStat{OverallPercentage: 100}, 0, 70)
		assert.InDelta(t, 100, stat.OverallPercentage, 1e-9)
		assert.Equal(t, 0, stat.TestsTaken)
	})
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 100, Percentage(0, 0), 1e-9)
	assert.InDelta(t, 100, Percentage(5, 0), 1e-9)
	assert.InDelta(t, 0, Percentage(0, 10), 1e-9)
	assert.InDelta(t, 70, Percentage(7, 10), 1e-9)
}
