package floorplan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/obs"
	"strings"
)

// HTTPProvider implements FloorPlanProvider against a remote floor-plan
// service:
//
//	GET {base}/shops/{id}/floorplan        -> FloorPlan JSON
//	GET {base}/shops/{id}/categories/{cid} -> {"id": ..., "point": {"x": ..., "y": ...}}
//
// A 404 maps to the matching not-found error. The provider is safe for
// concurrent use.
type HTTPProvider struct {
	client  *apiClient
	baseURL string
}

func NewHTTPProvider(baseURL string, apiKey string) (*HTTPProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("floor plan API url is empty")
	}

	return &HTTPProvider{client: newAPIClient(apiKey), baseURL: baseURL}, nil
}

type categoryResponse struct {
	ID    int64         `json:"id"`
	Point *domain.Point `json:"point"`
}

func (h *HTTPProvider) GetFloorPlan(ctx context.Context, shopID int64) (_ *domain.FloorPlan, err error) {
	defer obs.Time(ctx, "floorplan.http.GetFloorPlan")(&err)

	endpoint := fmt.Sprintf("%s/shops/%d/floorplan", h.baseURL, shopID)

	var plan domain.FloorPlan
	if err := h.client.getJSON(ctx, endpoint, &plan); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get floor plan: shop %d: %w", shopID, domain.ErrShopNotFound)
		}
		return nil, fmt.Errorf("get floor plan: shop %d: %w", shopID, err)
	}

	if plan.ShopID == 0 {
		plan.ShopID = shopID
	}
	if plan.ShopID != shopID {
		return nil, fmt.Errorf("get floor plan: asked for shop %d, got %d", shopID, plan.ShopID)
	}

	return &plan, nil
}

func (h *HTTPProvider) GetCategoryPoint(ctx context.Context, shopID, categoryID int64) (_ *domain.Point, err error) {
	defer obs.Time(ctx, "floorplan.http.GetCategoryPoint")(&err)

	endpoint := fmt.Sprintf("%s/shops/%d/categories/%d", h.baseURL, shopID, categoryID)

	var decoded categoryResponse
	if err := h.client.getJSON(ctx, endpoint, &decoded); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get category point: shop %d category %d: %w", shopID, categoryID, domain.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("get category point: shop %d category %d: %w", shopID, categoryID, err)
	}

	return decoded.Point, nil
}

func isNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}
