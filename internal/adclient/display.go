package adclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coinworks/adwidget/internal/domain"
)

type displayRequest struct {
	Format        string `json:"format"`
	MediaFormat   string `json:"mediaFormat"`
	ExcludeUserID int64  `json:"excludeUserId"`
}

type displayResponse struct {
	Ads []domain.Ad `json:"ads"`
}

// FetchDisplayAds requests ads for a placement. When adID is a real id
// (>= 0) the specific ad is fetched; otherwise one ad matching the
// filters is requested, excluding the viewer's own creatives when
// excludeUserID is known. An empty or absent ads array returns an empty
// slice and no error: "nothing to show" is not a failure.
func (c *Client) FetchDisplayAds(ctx context.Context, f domain.Filters, excludeUserID, adID int64) ([]domain.Ad, error) {
	var resp displayResponse
	if adID >= 0 {
		if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/ads/display/%d", adID), nil, &resp); err != nil {
			return nil, err
		}
	} else {
		req := displayRequest{Format: f.Format, MediaFormat: f.MediaFormat, ExcludeUserID: excludeUserID}
		if err := c.doJSON(ctx, http.MethodPost, "/ads/display", req, &resp); err != nil {
			return nil, err
		}
	}
	return resp.Ads, nil
}
