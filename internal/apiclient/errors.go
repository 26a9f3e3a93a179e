package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// APIError - ответ сервера со статусом >= 400
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: статус %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: статус %d", e.Method, e.Path, e.Status)
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: extractMessage(body),
		Body:    body,
	}
}

// extractMessage - текст ошибки из JSON тела ответа: поле error, затем message.
// Тело не в JSON (страница прокси и т.п.) сообщением не считается.
func extractMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, field := range []string{"error", "message", "error.message"} {
		if v := gjson.GetBytes(body, field); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

// StatusCode - HTTP статус из ошибки, 0 для сетевых ошибок
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized - сервер отклонил токен
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsNotFound - запрошенный ресурс не найден
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Message - текст ошибки от сервера, если он есть
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
