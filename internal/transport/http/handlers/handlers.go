// Package handlers — REST-хендлеры поверх сервисного слоя.
//
// Хендлеры не содержат доменной логики: разбор запроса, вызов сервиса,
// маппинг ошибки через errors.WriteError. Все DTO транспортного слоя
// живут здесь же — доменные модели наружу не отдаются.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-task-tracker/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	svc *service.Service
}

// New создаёт Handlers.
func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
