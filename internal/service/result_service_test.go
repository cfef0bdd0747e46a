package service

import (
	"testing"

	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnswerShape(t *testing.T) {
	single := &model.Question{
		BaseModel:  model.BaseModel{ID: 1},
		AnswerType: model.SingleChoice,
		Options:    []model.AnswerOption{option(10, true), option(11, false)},
	}
	multi := &model.Question{
		BaseModel:  model.BaseModel{ID: 2},
		AnswerType: model.MultipleChoice,
		Options:    []model.AnswerOption{option(20, true), option(21, true), option(22, false)},
	}
	openEnded := &model.Question{
		BaseModel:  model.BaseModel{ID: 3},
		AnswerType: model.OpenEnded,
	}

	tests := []struct {
		name     string
		question *model.Question
		answer   SubmittedAnswerReq
		wantErr  bool
	}{
		{
			name:     "single choice with one option",
			question: single,
			answer:   SubmittedAnswerReq{QuestionID: 1, SelectedOptionIDs: []uint{10}},
		},
		{
			name:     "single choice with two options rejected",
			question: single,
			answer:   SubmittedAnswerReq{QuestionID: 1, SelectedOptionIDs: []uint{10, 11}},
			wantErr:  true,
		},
		{
			name:     "objective answer with text rejected",
			question: single,
			answer:   SubmittedAnswerReq{QuestionID: 1, SelectedOptionIDs: []uint{10}, OpenEndedText: "hello"},
			wantErr:  true,
		},
		{
			name:     "option from another question rejected",
			question: multi,
			answer:   SubmittedAnswerReq{QuestionID: 2, SelectedOptionIDs: []uint{10}},
			wantErr:  true,
		},
		{
			name:     "multi choice with several own options",
			question: multi,
			answer:   SubmittedAnswerReq{QuestionID: 2, SelectedOptionIDs: []uint{20, 22}},
		},
		{
			name:     "open ended with text",
			question: openEnded,
			answer:   SubmittedAnswerReq{QuestionID: 3, OpenEndedText: "my essay"},
		},
		{
			name:     "open ended with selected options rejected",
			question: openEnded,
			answer:   SubmittedAnswerReq{QuestionID: 3, SelectedOptionIDs: []uint{20}},
			wantErr:  true,
		},
		{
			name:     "objective question left blank is allowed",
			question: multi,
			answer:   SubmittedAnswerReq{QuestionID: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnswerShape(tt.question, &tt.answer)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, util.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
