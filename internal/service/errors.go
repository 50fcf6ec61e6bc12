package service

import "errors"

var (
	// ErrValidation сопоставляется с любой ValidationError через errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownDriver возвращается (внутри ValidationError) для ссылки на незарегистрированного пилота.
	ErrUnknownDriver = errors.New("driver is not registered")
	// ErrPersistence оборачивает ошибку сохранения состояния.
	ErrPersistence = errors.New("persist state")
)

// ValidationError описывает некорректное значение поля команды.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func unknownDriver(name string) error {
	return &ValidationError{Field: "user", Message: "driver " + name + " is not registered", Err: ErrUnknownDriver}
}
