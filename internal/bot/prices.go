package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
	"github.com/matchatealeaf/albion-discord-bot/internal/catalog"
	"github.com/matchatealeaf/albion-discord-bot/internal/chart"
)

const embedColor = 0xe6b800 // albion gold

// handlePrices serves the prices and quick commands. quick skips the
// history chart and answers from current prices alone.
func (b *Bot) handlePrices(ctx context.Context, m *discordgo.MessageCreate, args []string, quick bool, logger *slog.Logger) error {
	query := strings.Join(args, " ")
	if query == "" {
		return b.reply(m.ChannelID, "Usage: prices <item name>")
	}

	matches := b.resolver.Resolve(query, catalog.DefaultMatches)
	if len(matches) == 0 {
		return b.reply(m.ChannelID, fmt.Sprintf("No item matched %q.", query))
	}
	best := matches[0]
	logger.Info("resolved item", "query", query, "item_id", best.ID, "distance", best.Distance)

	prices, err := b.client.GetCurrentPrices(ctx, best.ID, b.agg.Locations())
	if err != nil {
		b.reply(m.ChannelID, "Price lookup failed, try again later.")
		return fmt.Errorf("current prices for %s: %w", best.ID, err)
	}

	embed := priceEmbed(best, matches[1:], prices, b.client.ItemIconURL(best.ID))
	msg, err := b.session.ChannelMessageSendEmbed(m.ChannelID, embed)
	if err != nil {
		return fmt.Errorf("send price embed: %w", err)
	}
	if err := b.session.MessageReactionAdd(m.ChannelID, msg.ID, deleteEmoji); err != nil {
		logger.Warn("seeding delete reaction failed", "error", err)
	}

	if quick {
		return nil
	}
	return b.sendHistoryChart(ctx, m.ChannelID, best, logger)
}

// sendHistoryChart aggregates the trailing history window, renders it, and
// attaches the image. Cleaned series are forwarded to the observation sink.
func (b *Bot) sendHistoryChart(ctx context.Context, channelID string, item catalog.Match, logger *slog.Logger) error {
	locations := b.agg.Locations()
	series, err := b.agg.Aggregate(ctx, item.ID, locations, b.historyDays)
	if err != nil {
		b.reply(channelID, "History is unavailable right now.")
		return fmt.Errorf("aggregate %s: %w", item.ID, err)
	}

	if b.sink != nil {
		for loc, s := range series {
			b.sink.Record(item.ID, loc, s)
		}
	}

	path := b.artifactPath(fmt.Sprintf("prices_%s.png", sanitizeFilename(item.ID)))
	defer os.Remove(path)

	title := fmt.Sprintf("%s (%d-day history)", item.Name, b.historyDays)
	if err := chart.RenderSeries(title, series, locations, path); err != nil {
		// Thin markets may have nothing to draw; the embed already answered.
		logger.Warn("chart render skipped", "error", err)
		return nil
	}
	return b.sendFile(channelID, path)
}

// priceEmbed builds the three-column price listing with resolution
// suggestions and the item icon thumbnail.
func priceEmbed(best catalog.Match, suggestions []catalog.Match, prices []api.CurrentPrice, iconURL string) *discordgo.MessageEmbed {
	var cities, sells, updated []string
	for _, p := range prices {
		if p.SellPriceMin == 0 {
			continue
		}
		label := p.City
		if q := qualityLabel(p.Quality); q != "" {
			label = fmt.Sprintf("%s (%s)", p.City, q)
		}
		cities = append(cities, label)
		sells = append(sells, formatSilver(p.SellPriceMin))
		updated = append(updated, relativeTime(p.SellPriceMinDate))
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s (%s)", best.Name, best.ID),
		Color:     embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: iconURL},
	}

	if len(cities) == 0 {
		embed.Description = "No current sell orders anywhere I look."
	} else {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Location", Value: strings.Join(cities, "\n"), Inline: true},
			{Name: "Min Sell Price", Value: strings.Join(sells, "\n"), Inline: true},
			{Name: "Last Updated", Value: strings.Join(updated, "\n"), Inline: true},
		}
	}

	footer := "React with " + deleteEmoji + " to delete"
	if len(suggestions) > 0 {
		var names []string
		for _, s := range suggestions {
			names = append(names, s.Name)
		}
		footer = "Not what you wanted? Try: " + strings.Join(names, ", ") + " | " + footer
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}

// artifactPath places a generated file under the configured chart
// directory, falling back to the system temp directory.
func (b *Bot) artifactPath(name string) string {
	dir := b.chartDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name)
}

func (b *Bot) sendFile(channelID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open chart: %w", err)
	}
	defer f.Close()

	_, err = b.session.ChannelFileSend(channelID, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("send chart: %w", err)
	}
	return nil
}

// sanitizeFilename keeps identifiers safe as file names.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
