package record

import (
	"checkin/internal/domain/record"
	"checkin/internal/domain/view"
)

type findInput struct {
	ID string `path:"id" example:"12345" doc:"Идентификатор записи из адреса"`
}

type renderInput struct {
	ID   string `path:"id" example:"12345" doc:"Идентификатор записи из адреса"`
	View string `path:"view" doc:"Токен ранее созданного представления"`
}

type updateInput struct {
	ID   string `path:"id" example:"12345" doc:"Идентификатор записи из адреса"`
	Body updateRequest
}

type updateRequest struct {
	View string `json:"view" minLength:"1" doc:"Токен представления, полученный из GET /api/v1/records/{id}"`
}

type viewOutput struct {
	Body viewResponse
}

type updateOutput struct {
	Body updateResponse
}

type viewResponse struct {
	View       string         `json:"view" doc:"Токен представления"`
	ID         string         `json:"id"`
	State      string         `json:"state" enum:"pending,failed,loaded"`
	Record     *record.Record `json:"record,omitempty"`
	Error      string         `json:"error,omitempty"`
	Actionable bool           `json:"actionable" doc:"Можно ли обновить статус"`
	DialogOpen bool           `json:"dialog_open"`
	Notices    []string       `json:"notices,omitempty" doc:"Уведомления, показываются один раз"`
}

type updateResponse struct {
	Outcome string       `json:"outcome" enum:"updated"`
	View    viewResponse `json:"view"`
}

func toViewResponse(snap view.Snapshot) viewResponse {
	resp := viewResponse{
		View:       snap.Token,
		ID:         snap.RecordID,
		State:      snap.State.String(),
		Record:     snap.Record,
		Actionable: snap.Actionable,
		DialogOpen: snap.DialogOpen,
	}
	if snap.Err != nil {
		resp.Error = record.Reason(snap.Err)
	}
	for _, n := range snap.Notices {
		resp.Notices = append(resp.Notices, string(n.Kind))
	}

	return resp
}
