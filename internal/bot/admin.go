package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/matchatealeaf/albion-discord-bot/internal/catalog"
	"github.com/matchatealeaf/albion-discord-bot/internal/orders"
)

// handlePing answers with the gateway heartbeat latency. Admin only.
func (b *Bot) handlePing(m *discordgo.MessageCreate) error {
	if !b.admins[m.Author.ID] {
		return nil
	}
	latency := b.session.HeartbeatLatency()
	return b.reply(m.ChannelID, fmt.Sprintf("Pong! %dms", latency.Milliseconds()))
}

// handleBoard forces an immediate order board refresh. Admin only.
func (b *Bot) handleBoard(ctx context.Context, m *discordgo.MessageCreate, logger *slog.Logger) error {
	if !b.admins[m.Author.ID] {
		return nil
	}
	if b.board == nil {
		return b.reply(m.ChannelID, "The order board is not enabled.")
	}
	if err := b.board.Refresh(ctx); err != nil {
		b.reply(m.ChannelID, "Board refresh failed.")
		return fmt.Errorf("refresh board: %w", err)
	}
	logger.Info("board refreshed on demand")
	return b.reply(m.ChannelID, "Board refreshed.")
}

// handleExport writes an item's current prices to a workbook and attaches
// it. Admin only.
func (b *Bot) handleExport(ctx context.Context, m *discordgo.MessageCreate, args []string, logger *slog.Logger) error {
	if !b.admins[m.Author.ID] {
		return nil
	}
	query := strings.Join(args, " ")
	if query == "" {
		return b.reply(m.ChannelID, "Usage: export <item name>")
	}

	matches := b.resolver.Resolve(query, catalog.DefaultMatches)
	if len(matches) == 0 {
		return b.reply(m.ChannelID, fmt.Sprintf("No item matched %q.", query))
	}
	best := matches[0]

	prices, err := b.client.GetCurrentPrices(ctx, best.ID, b.agg.Locations())
	if err != nil {
		b.reply(m.ChannelID, "Price lookup failed, try again later.")
		return fmt.Errorf("current prices for %s: %w", best.ID, err)
	}

	path := b.artifactPath(fmt.Sprintf("prices_%s.xlsx", sanitizeFilename(best.ID)))
	defer os.Remove(path)

	if err := orders.ExportPrices(path, best.Name, best.ID, prices); err != nil {
		return fmt.Errorf("export prices: %w", err)
	}
	logger.Info("prices exported", "item_id", best.ID, "rows", len(prices))
	return b.sendFile(m.ChannelID, path)
}
