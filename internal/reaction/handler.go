package reaction

import (
	"net/http"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) error {
	p, id, err := principalAndID(r)
	if err != nil {
		return err
	}
	in, err := decodeStatus(r)
	if err != nil {
		return err
	}
	rx, err := h.svc.Set(p, id, in.Status)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, rx, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	p, id, err := principalAndID(r)
	if err != nil {
		return err
	}
	in, err := decodeStatus(r)
	if err != nil {
		return err
	}
	rx, err := h.svc.Update(p, id, in.Status)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, rx, http.StatusOK)
	return nil
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) error {
	p, id, err := principalAndID(r)
	if err != nil {
		return err
	}
	if err := h.svc.Remove(p, id); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "removed"}, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.PrincipalFromCtx(r); err != nil {
		return err
	}
	id := httpx.PathID(r, "message_id")
	if id == 0 {
		return apperr.Validation("invalid message id")
	}
	out, err := h.svc.List(id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func principalAndID(r *http.Request) (httpx.Principal, uint, error) {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return httpx.Principal{}, 0, err
	}
	id := httpx.PathID(r, "message_id")
	if id == 0 {
		return httpx.Principal{}, 0, apperr.Validation("invalid message id")
	}
	return p, id, nil
}

func decodeStatus(r *http.Request) (StatusReq, error) {
	in, err := httpx.Decode[StatusReq](r)
	if err != nil {
		return in, err
	}
	return in, validate.Struct(in)
}
