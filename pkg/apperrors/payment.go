package apperrors

import (
	"net/http"
)

/*
Фабрики ошибок платежного домена. Сообщения здесь - это то, что уходит клиенту,
поэтому текст фиксированный и без внутренних деталей (секреты, DSN и т.п.).
*/

// ErrInvalidAmount - сумма меньше минимальной единицы (1 рупия)
func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "payment", "Invalid amount", http.StatusBadRequest)
}

// ErrMissingUser - не передан внешний идентификатор пользователя
func ErrMissingUser() *AppError {
	return New(CodeMissingUser, "payment", "User ID is required", http.StatusBadRequest)
}

// ErrGatewayNotConfigured - не заданы ключи Razorpay.
// Значения ключей в сообщение не попадают никогда.
func ErrGatewayNotConfigured() *AppError {
	return New(CodeConfigurationError, "payment", "Razorpay credentials are not configured", http.StatusInternalServerError)
}

// ErrUserNotFound - внутренняя запись пользователя не найдена по внешнему ID
func ErrUserNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "payment", "User record not found", http.StatusNotFound)
}

// ErrMissingPaymentFields - в callback'е нет одного из трех полей шлюза
func ErrMissingPaymentFields() *AppError {
	return New(CodeMissingFields, "payment", "Missing payment verification fields", http.StatusBadRequest)
}

// ErrSignatureInvalid - подпись не сошлась. Клиентская ошибка,
// но на стороне сервера логируется как возможная попытка подделки.
func ErrSignatureInvalid() *AppError {
	return New(CodeSignatureInvalid, "payment", "Invalid payment signature", http.StatusBadRequest)
}

// ErrPaymentRecordNotFound - платеж не найден ни по внутреннему, ни по шлюзовому ID
func ErrPaymentRecordNotFound(err error) *AppError {
	return Wrap(err, CodePaymentNotFound, "payment", "Payment record not found", http.StatusNotFound)
}

// ErrPaymentUpdateFailed - не удалось зафиксировать статус платежа (fail closed)
func ErrPaymentUpdateFailed(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "payment", "Failed to update payment status", http.StatusInternalServerError)
}

// ErrGateway - ошибка вызова платежного шлюза
func ErrGateway(err error) *AppError {
	return Wrap(err, CodeGatewayError, "payment", "Payment gateway request failed", http.StatusBadGateway)
}
