package postgres

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readInitMigration читает начальную миграцию схемы
func readInitMigration(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../../migrations/000001_init_schema.up.sql")
	require.NoError(t, err, "начальная миграция должна существовать")
	return string(data)
}

// tableDDL вырезает блок CREATE TABLE для указанной таблицы
func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\);`)
	match := re.FindStringSubmatch(schema)
	require.Len(t, match, 2, "в миграции должна быть таблица %s", table)
	return match[1]
}

// Попытки ссылаются на викторину только по идентификатору: владеющий FK
// превращал бы удаление викторины с участниками в ошибку 23503, а попытки
// никогда не удаляются ядром и должны переживать удаление викторины.
func TestInitSchema_AttemptQuizReferenceIsNonOwning(t *testing.T) {
	schema := readInitMigration(t)
	attempts := tableDDL(t, schema, "attempts")

	assert.NotContains(t, attempts, "REFERENCES quizzes",
		"attempts.quiz_id не должен иметь FK на quizzes")
	assert.Contains(t, attempts, "quiz_id INTEGER NOT NULL")
}

// Ответы переживают перезапись викторины: вопросы удаляются и пересоздаются,
// поэтому question_id и option_id хранятся без FK
func TestInitSchema_AnswerQuestionReferenceIsNonOwning(t *testing.T) {
	schema := readInitMigration(t)
	answers := tableDDL(t, schema, "attempt_answers")

	assert.NotContains(t, answers, "REFERENCES questions")
	assert.NotContains(t, answers, "REFERENCES options")
}
