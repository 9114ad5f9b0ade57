package adminapi

import (
	"context"
	"net/url"

	"wunderadmin/internal/domain"
)

type skillsResponse struct {
	Skills []domain.Skill `json:"skills"`
}

func (c *Client) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	var resp skillsResponse
	if err := c.getJSON(ctx, "adminapi.ListSkills", "/skills", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

func (c *Client) CreateSkill(ctx context.Context, skill domain.Skill) error {
	if skill.Name == "" {
		return domain.E(domain.CodeInvalidArgument, "adminapi.CreateSkill", "skill name is required", nil)
	}
	return c.postJSON(ctx, "adminapi.CreateSkill", "/skills", skill, nil)
}

func (c *Client) DeleteSkill(ctx context.Context, name string) error {
	if name == "" {
		return domain.E(domain.CodeInvalidArgument, "adminapi.DeleteSkill", "skill name is required", nil)
	}
	return c.deleteJSON(ctx, "adminapi.DeleteSkill", "/skills/"+url.PathEscape(name), nil)
}

type linksResponse struct {
	Links []domain.LinkEntry `json:"links"`
}

func (c *Client) ListLinks(ctx context.Context) ([]domain.LinkEntry, error) {
	var resp linksResponse
	if err := c.getJSON(ctx, "adminapi.ListLinks", "/links", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Links, nil
}

func (c *Client) CreateLink(ctx context.Context, link domain.LinkEntry) error {
	if link.URL == "" {
		return domain.E(domain.CodeInvalidArgument, "adminapi.CreateLink", "link url is required", nil)
	}
	return c.postJSON(ctx, "adminapi.CreateLink", "/links", link, nil)
}

func (c *Client) DeleteLink(ctx context.Context, linkURL string) error {
	if linkURL == "" {
		return domain.E(domain.CodeInvalidArgument, "adminapi.DeleteLink", "link url is required", nil)
	}
	query := url.Values{}
	query.Set("url", linkURL)
	return c.deleteJSON(ctx, "adminapi.DeleteLink", "/links", query)
}

type channelsResponse struct {
	Channels []domain.ChannelAccount `json:"channels"`
}

func (c *Client) ListChannels(ctx context.Context) ([]domain.ChannelAccount, error) {
	var resp channelsResponse
	if err := c.getJSON(ctx, "adminapi.ListChannels", "/channels", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Channels, nil
}

func (c *Client) CreateChannel(ctx context.Context, account domain.ChannelAccount) error {
	if account.Provider == "" || account.AccountID == "" {
		return domain.E(domain.CodeInvalidArgument, "adminapi.CreateChannel", "provider and account id are required", nil)
	}
	return c.postJSON(ctx, "adminapi.CreateChannel", "/channels", account, nil)
}

func (c *Client) DeleteChannel(ctx context.Context, provider, accountID string) error {
	if provider == "" || accountID == "" {
		return domain.E(domain.CodeInvalidArgument, "adminapi.DeleteChannel", "provider and account id are required", nil)
	}
	query := url.Values{}
	query.Set("provider", provider)
	query.Set("account_id", accountID)
	return c.deleteJSON(ctx, "adminapi.DeleteChannel", "/channels", query)
}
