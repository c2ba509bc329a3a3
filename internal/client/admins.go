package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"unifi-admin-remover/pkg/models"
)

const sitemgrPath = "/api/s/{site}/cmd/sitemgr"

// GetAdmins lists the admins of one site via the get-admins sitemgr command
func (c *UnifiClient) GetAdmins(ctx context.Context, site string) ([]models.Admin, error) {
	var respData models.AdminListResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("site", site).
		SetBody(models.SiteManagerCommand{Cmd: "get-admins"}).
		SetResult(&respData).
		Post(sitemgrPath)

	if err := checkResponse(resp, err, fmt.Sprintf("failed to get admins for site %s", site)); err != nil {
		return nil, err
	}

	return respData.Data, nil
}

// GetAllAdmins fetches the sites and merges the admins of each one into a
// single list of distinct (name, id) pairs. The first failing call aborts.
func (c *UnifiClient) GetAllAdmins(ctx context.Context) ([]models.AdminEntry, error) {
	sites, err := c.GetSites(ctx)
	if err != nil {
		return nil, err
	}

	all := []models.AdminEntry{}
	for _, site := range sites {
		admins, err := c.GetAdmins(ctx, site.Name)
		if err != nil {
			return nil, err
		}
		all = models.MergeAdmins(all, admins)
	}

	c.log.Debug("collected admins", zap.Int("sites", len(sites)), zap.Int("admins", len(all)))
	return all, nil
}

// RevokeAdmin removes the admin's access to a single site. The account
// itself is left in place.
func (c *UnifiClient) RevokeAdmin(ctx context.Context, site, adminID string) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("site", site).
		SetBody(models.SiteManagerCommand{Cmd: "revoke-admin", Admin: adminID}).
		Post(sitemgrPath)

	return checkResponse(resp, err, fmt.Sprintf("failed to revoke admin on site %s", site))
}

// RevokeSummary records what happened on each site during RevokeFromSites.
type RevokeSummary struct {
	Revoked []string
	Skipped []string // controller answered 400, the admin had no role there
}

// RevokeFromSites calls RevokeAdmin once per site, in order. A 400 means the
// admin is not on that site and is skipped; any other error stops the loop.
func (c *UnifiClient) RevokeFromSites(ctx context.Context, sites []models.Site, adminID string) (RevokeSummary, error) {
	var summary RevokeSummary

	for _, site := range sites {
		err := c.RevokeAdmin(ctx, site.Name, adminID)
		switch {
		case err == nil:
			summary.Revoked = append(summary.Revoked, site.Name)
		case IsStatus(err, http.StatusBadRequest):
			c.log.Debug("admin not present on site", zap.String("site", site.Name))
			summary.Skipped = append(summary.Skipped, site.Name)
		default:
			return summary, err
		}
	}

	c.log.Debug("revoke finished",
		zap.Strings("revoked", summary.Revoked),
		zap.Strings("skipped", summary.Skipped),
	)
	return summary, nil
}
