package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kapee-shop/api/internal/application/bestselling"
	"github.com/kapee-shop/api/internal/domain"
)

// BestSellingHandler handles the curated best-selling collection endpoints.
type BestSellingHandler struct {
	svc bestselling.Service
}

func NewBestSellingHandler(svc bestselling.Service) *BestSellingHandler {
	return &BestSellingHandler{svc: svc}
}

func (h *BestSellingHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req domain.PromoteProductRequest
	if !decodeValid(w, r, &req) {
		return
	}
	e, err := h.svc.Promote(r.Context(), &req)
	if err != nil {
		var conflict *domain.PromotionConflictError
		if errors.As(err, &conflict) {
			writeJSON(w, http.StatusConflict, PromotionConflictEnvelope{
				Error:    conflict.Error(),
				Existing: conflict.Existing,
			})
			return
		}
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *BestSellingHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *BestSellingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	entries, err := h.svc.List(r.Context(), bestselling.ListOptions{
		Category:     q.Get("category"),
		FeaturedOnly: q.Get("featured") == "true",
		Limit:        limit,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *BestSellingHandler) Featured(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Featured(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *BestSellingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBestSellingRequest
	if !decodeValid(w, r, &req) {
		return
	}
	e, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *BestSellingHandler) AdjustSales(w http.ResponseWriter, r *http.Request) {
	var req domain.AdjustSalesRequest
	if !decodeValid(w, r, &req) {
		return
	}
	e, err := h.svc.AdjustSales(r.Context(), chi.URLParam(r, "id"), req.Increment)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *BestSellingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "best-selling entry removed"})
}
