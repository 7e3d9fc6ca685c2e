package user

import (
	"net/http"

	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[LoginReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	pair, err := h.svc.Login(in.Username, in.Password)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, pair, http.StatusOK)
	return nil
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[RefreshReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	pair, err := h.svc.Refresh(in.RefreshToken)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, pair, http.StatusOK)
	return nil
}

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
	u, err := h.svc.Create(p, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	p, err := httpx.PrincipalFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	u, err := h.svc.Update(p, r.PathValue("username"), in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.PrincipalFromCtx(r); err != nil {
		return err
	}
	u, err := h.svc.Get(r.PathValue("username"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.PrincipalFromCtx(r); err != nil {
		return err
	}
	users, err := h.svc.List()
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, users, http.StatusOK)
	return nil
}
