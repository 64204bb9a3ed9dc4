package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalScore(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		want      int
	}{
		{
			name:      "sums question points",
			questions: []Question{{Points: 5}, {Points: 10}, {Points: 0}},
			want:      15,
		},
		{
			name:      "missing points count as zero",
			questions: []Question{{Text: "Вопрос без баллов"}},
			want:      0,
		},
		{
			name:      "no questions",
			questions: nil,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTotalScore(tt.questions))
		})
	}
}

func TestQuiz_QuestionByID(t *testing.T) {
	quiz := &Quiz{
		Questions: []Question{
			{ID: 1, Text: "Первый"},
			{ID: 2, Text: "Второй"},
		},
	}

	q, ok := quiz.QuestionByID(2)
	require.True(t, ok)
	assert.Equal(t, "Второй", q.Text)

	_, ok = quiz.QuestionByID(99)
	assert.False(t, ok)
}

func TestQuestion_OptionByID(t *testing.T) {
	question := &Question{
		Options: []Option{
			{ID: 11, Text: "Да", IsCorrect: true},
			{ID: 12, Text: "Нет"},
		},
	}

	option, ok := question.OptionByID(11)
	require.True(t, ok)
	assert.True(t, option.IsCorrect)

	_, ok = question.OptionByID(21)
	assert.False(t, ok, "чужой вариант не находится в вопросе")
}

func TestAttempt_IsSubmitted(t *testing.T) {
	attempt := &Attempt{}
	assert.False(t, attempt.IsSubmitted())

	now := attempt.StartedAt
	attempt.FinishedAt = &now
	assert.True(t, attempt.IsSubmitted())
}
