package repository

import "errors"

var (
	// ErrAttemptAlreadySubmitted означает, что попытка уже завершена и повторная
	// отправка ответов отклонена условным UPDATE (0 затронутых строк).
	ErrAttemptAlreadySubmitted = errors.New("attempt is already submitted")
)
