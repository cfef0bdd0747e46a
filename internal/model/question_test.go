package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionValidate(t *testing.T) {
	correct := AnswerOption{Text: "a", IsCorrect: true}
	wrong := AnswerOption{Text: "b"}

	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{
			name:     "single choice with one correct option",
			question: Question{AnswerType: SingleChoice, Options: []AnswerOption{correct, wrong}},
		},
		{
			name:     "single choice with two correct options rejected",
			question: Question{AnswerType: SingleChoice, Options: []AnswerOption{correct, correct}},
			wantErr:  true,
		},
		{
			name:     "multiple choice with several correct options",
			question: Question{AnswerType: MultipleChoice, Options: []AnswerOption{correct, correct, wrong}},
		},
		{
			name:     "open ended without options",
			question: Question{AnswerType: OpenEnded},
		},
		{
			name:     "open ended with options rejected",
			question: Question{AnswerType: OpenEnded, Options: []AnswerOption{correct}},
			wantErr:  true,
		},
		{
			name:     "unknown answer type rejected",
			question: Question{AnswerType: "essay"},
			wantErr:  true,
		},
		{
			name:     "unknown difficulty rejected",
			question: Question{AnswerType: SingleChoice, Difficulty: "impossible"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCorrectOptionIDs(t *testing.T) {
	q := Question{
		AnswerType: MultipleChoice,
		Options: []AnswerOption{
			{BaseModel: BaseModel{ID: 1}, IsCorrect: true},
			{BaseModel: BaseModel{ID: 2}},
			{BaseModel: BaseModel{ID: 3}, IsCorrect: true},
		},
	}
	assert.Equal(t, []uint{1, 3}, q.CorrectOptionIDs())
}

func TestResultPercentage(t *testing.T) {
	assert.InDelta(t, 70, (&Result{Score: 7, MaxScore: 10}).Percentage(), 1e-9)
	assert.InDelta(t, 100, (&Result{Score: 0, MaxScore: 0}).Percentage(), 1e-9)
}
