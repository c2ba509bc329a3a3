package client

import (
	"context"

	"unifi-admin-remover/pkg/models"
)

// GetSites fetches every site visible to the logged in user
func (c *UnifiClient) GetSites(ctx context.Context) ([]models.Site, error) {
	var respData models.SiteListResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&respData).
		Get("/api/self/sites")

	if err := checkResponse(resp, err, "failed to get sites"); err != nil {
		return nil, err
	}

	if respData.Data == nil {
		return []models.Site{}, nil
	}
	return respData.Data, nil
}
