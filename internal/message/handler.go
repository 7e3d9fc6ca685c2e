package message

import (
	"net/http"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[SendReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	m, err := h.svc.Post(r.Context(), p, in.GroupID, in.Text)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, m, http.StatusCreated)
	return nil
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	id := httpx.PathID(r, "message_id")
	if id == 0 {
		return apperr.Validation("invalid message id")
	}
	in, err := httpx.Decode[EditReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	m, err := h.svc.Edit(p, id, in.Text)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, m, http.StatusOK)
	return nil
}

// ListByGroup serves GET /chatgroups/{group_id}/messages?from=<hours>.
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	id := httpx.PathID(r, "group_id")
	if id == 0 {
		return apperr.Validation("invalid group id")
	}
	hours := httpx.QueryInt(r, "from", 1)
	out, err := h.svc.ListSince(p, id, hours)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}
