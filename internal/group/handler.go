package group

import (
	"net/http"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	g, err := h.svc.CreateGroup(p, in.Name)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, g, http.StatusCreated)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	id := httpx.PathID(r, "group_id")
	if id == 0 {
		return apperr.Validation("invalid group id")
	}
	g, err := h.svc.GetGroup(p, id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, g, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	groups, err := h.svc.ListGroupsForUser(p)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, groups, http.StatusOK)
	return nil
}

func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	id := httpx.PathID(r, "group_id")
	if id == 0 {
		return apperr.Validation("invalid group id")
	}
	in, err := httpx.Decode[RenameReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	g, err := h.svc.UpdateGroupName(p, id, in.Name)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, g, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	id := httpx.PathID(r, "group_id")
	if id == 0 {
		return apperr.Validation("invalid group id")
	}
	if err := h.svc.DeleteGroup(p, id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) AddMembers(w http.ResponseWriter, r *http.Request) error {
	return h.mutateMembers(w, r, h.svc.AddMembers)
}

func (h *Handler) RemoveMembers(w http.ResponseWriter, r *http.Request) error {
	return h.mutateMembers(w, r, h.svc.RemoveMembers)
}

func (h *Handler) mutateMembers(w http.ResponseWriter, r *http.Request,
	op func(httpx.Principal, uint, []string) (*MembersResp, error)) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	id := httpx.PathID(r, "group_id")
	if id == 0 {
		return apperr.Validation("invalid group id")
	}
	in, err := httpx.Decode[MembersReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	out, err := op(p, id, in.Members)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}
