package handlers

import (
	"log"
	"net/http"
	"store-route-service/internal/platform/obs"
	"store-route-service/internal/ports"
	"strconv"
)

type FloorPlanHandler struct {
	// Nil when no cache is configured; invalidation is then a no-op.
	Invalidator ports.FloorPlanInvalidator
}

// Invalidate drops the cached snapshot of a shop after an upstream edit.
func (h *FloorPlanHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || shopID <= 0 {
		writeError(w, r, http.StatusBadRequest, "shop id must be a positive integer")
		return
	}

	if h.Invalidator != nil {
		if err := h.Invalidator.Invalidate(r.Context(), shopID); err != nil {
			log.Printf("req_id=%s invalidate floor plan failed: shop_id=%d err=%v", obs.RequestID(r.Context()), shopID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
