package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/records/{id}",
		Summary:     "Открыть запись",
		Description: "Создает новое представление записи и один раз читает ее из внешнего сервиса.",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) renderOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-view",
		Method:      http.MethodGet,
		Path:        "/api/v1/records/{id}/views/{view}",
		Summary:     "Текущее состояние представления",
		Description: "Не обращается к внешнему сервису.",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-update-status",
		Method:      http.MethodPost,
		Path:        "/api/v1/records/{id}/status",
		Summary:     "Обновить статус",
		Description: "Разрешено только если текущий статус равен ожидающему значению, иначе 409 без запроса во внешний сервис.",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}
