package errors

import (
	"fmt"
	"net/http"
)

var (
	// Авторизация
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidToken      = fmt.Errorf("недопустимый токен")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")

	// Оборудование
	ErrEquipmentTypeNotFound = fmt.Errorf("тип оборудования не найден")
	ErrValidationFailed      = fmt.Errorf("серийный номер не соответствует маске типа")
	ErrDuplicateSerial       = fmt.Errorf("оборудование с таким серийным номером уже существует для этого типа")
	ErrNoFieldsToUpdate      = fmt.Errorf("не переданы поля для обновления")
)

// ErrorList сопоставляет доменные ошибки с HTTP-статусами.
// Валидация, дубликаты и отсутствующий type_id отдаются как 400,
// так же, как это делал исходный API.
var ErrorList = map[error]int{
	ErrEmptyAuthHeader:       http.StatusUnauthorized,
	ErrInvalidAuthHeader:     http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrNotFound:              http.StatusBadRequest,
	ErrBadRequest:            http.StatusBadRequest,
	ErrEquipmentTypeNotFound: http.StatusBadRequest,
	ErrValidationFailed:      http.StatusBadRequest,
	ErrDuplicateSerial:       http.StatusBadRequest,
	ErrNoFieldsToUpdate:      http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
}

// HttpError несет наружу код, человекочитаемое сообщение и контекст
// (поле, значение, маску). Err сохраняет исходную причину для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}
