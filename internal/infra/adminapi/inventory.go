package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"wunderadmin/internal/domain"
)

// categoryFields maps inventory response fields to tool kinds.
var categoryFields = map[string]domain.ToolKind{
	"builtin_tools":   domain.ToolKindBuiltin,
	"mcp_tools":       domain.ToolKindMCP,
	"a2a_tools":       domain.ToolKindA2A,
	"skills":          domain.ToolKindSkill,
	"knowledge_tools": domain.ToolKindKnowledge,
	"user_tools":      domain.ToolKindUser,
	"shared_tools":    domain.ToolKindShared,
}

// FetchInventory retrieves the categorized tool lists for userID. The
// user_id query parameter is omitted for an empty id. A missing or
// malformed category field reads as an empty list; only an unusable body or
// a non-2xx status fails the fetch.
func (c *Client) FetchInventory(ctx context.Context, userID string) (domain.Inventory, error) {
	const op = "adminapi.FetchInventory"

	query := url.Values{}
	if strings.TrimSpace(userID) != "" {
		query.Set("user_id", userID)
	}
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint("/tools", query), nil)
	if err != nil {
		return domain.Inventory{}, domain.E(domain.CodeUnavailable, op, "",
			errors.Join(domain.ErrInventoryUnavailable, err))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Inventory{}, domain.E(domain.CodeUnavailable, op, "malformed inventory body",
			errors.Join(domain.ErrInventoryUnavailable, err))
	}

	inv := domain.NewInventory()
	for field, kind := range categoryFields {
		value, ok := raw[field]
		if !ok {
			continue
		}
		var tools []domain.ToolDescriptor
		if err := json.Unmarshal(value, &tools); err != nil {
			c.logger.Warn("ignoring malformed inventory category",
				zap.String("field", field),
				zap.Error(err),
			)
			continue
		}
		inv.Categories[kind] = tools
	}
	if value, ok := raw["extra_prompt"]; ok {
		_ = json.Unmarshal(value, &inv.ExtraPrompt)
	}
	return inv, nil
}
