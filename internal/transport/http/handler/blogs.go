package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kapee-shop/api/internal/application/blog"
	"github.com/kapee-shop/api/internal/domain"
)

// BlogHandler handles blog endpoints.
type BlogHandler struct {
	svc blog.Service
}

func NewBlogHandler(svc blog.Service) *BlogHandler { return &BlogHandler{svc: svc} }

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBlogRequest
	if !decodeValid(w, r, &req) {
		return
	}
	b, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	blogs, err := h.svc.List(r.Context(), q.Get("category"), q.Get("author"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBlogRequest
	if !decodeValid(w, r, &req) {
		return
	}
	b, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "blog deleted"})
}
