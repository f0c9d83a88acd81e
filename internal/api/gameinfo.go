package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Search looks up players and guilds by name.
func (c *Client) Search(ctx context.Context, name string) (*SearchResponse, error) {
	query := url.Values{}
	query.Set("q", name)

	var resp SearchResponse
	if err := c.get(ctx, c.gameinfoURL+"/search", query, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}

	return &resp, nil
}

// GetPlayer fetches a player record by ID.
func (c *Client) GetPlayer(ctx context.Context, id string) (*Player, error) {
	var player Player
	if err := c.get(ctx, c.gameinfoURL+"/players/"+url.PathEscape(id), nil, &player); err != nil {
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}
	return &player, nil
}

// GetGuild fetches a guild record by ID.
func (c *Client) GetGuild(ctx context.Context, id string) (*Guild, error) {
	var guild Guild
	if err := c.get(ctx, c.gameinfoURL+"/guilds/"+url.PathEscape(id), nil, &guild); err != nil {
		return nil, fmt.Errorf("get guild %s: %w", id, err)
	}
	return &guild, nil
}

// GetGuildMembers fetches the member roster of a guild.
func (c *Client) GetGuildMembers(ctx context.Context, id string) ([]GuildMember, error) {
	var members []GuildMember
	if err := c.get(ctx, c.gameinfoURL+"/guilds/"+url.PathEscape(id)+"/members", nil, &members); err != nil {
		return nil, fmt.Errorf("get guild members %s: %w", id, err)
	}
	return members, nil
}

// GetAlliance fetches an alliance record by ID.
func (c *Client) GetAlliance(ctx context.Context, id string) (*Alliance, error) {
	var alliance Alliance
	if err := c.get(ctx, c.gameinfoURL+"/alliances/"+url.PathEscape(id), nil, &alliance); err != nil {
		return nil, fmt.Errorf("get alliance %s: %w", id, err)
	}
	return &alliance, nil
}

// ItemIconURL returns the icon URL for an item. Enchanted identifiers
// ("T4_BAG@1") use the base item's icon, so the @N tag is stripped here.
// This is purely presentation; resolution treats the variant as its own
// entry.
func (c *Client) ItemIconURL(itemID string) string {
	base := itemID
	if i := strings.Index(base, "@"); i >= 0 {
		base = base[:i]
	}
	return c.gameinfoURL + "/items/" + url.PathEscape(base)
}
