package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
)

// HeaderManagerKey заголовок с ключом менеджерского доступа
const HeaderManagerKey = "X-Manager-Key"

// ManagerAuth проверяет заголовок X-Manager-Key на защищённых маршрутах
// Сравнение ключей выполняется за константное время
func ManagerAuth(managerKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderManagerKey)
			if key == "" {
				handlers.RespondUnauthorized(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(managerKey)) != 1 {
				handlers.RespondForbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsManagerRequest возвращает true, если запрос содержит валидный менеджерский ключ
// Используется на маршрутах, доступных и клиенту, и менеджеру,
// где от ключа зависит поведение (например, статус отмены)
func IsManagerRequest(r *http.Request, managerKey string) bool {
	key := r.Header.Get(HeaderManagerKey)
	if key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(managerKey)) == 1
}
