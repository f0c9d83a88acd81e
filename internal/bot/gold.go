package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
	"github.com/matchatealeaf/albion-discord-bot/internal/chart"
	"github.com/matchatealeaf/albion-discord-bot/internal/market"
)

// goldEmbedRows caps how many recent observations the embed lists; the
// chart carries the full series.
const goldEmbedRows = 6

// handleGold serves the gold command. An optional numeric argument sets how
// many days back to chart, defaulting to the configured history window.
func (b *Bot) handleGold(ctx context.Context, m *discordgo.MessageCreate, args []string, logger *slog.Logger) error {
	days := b.historyDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return b.reply(m.ChannelID, "Usage: gold [days]")
		}
		days = n
	}

	since := time.Now().UTC().AddDate(0, 0, -days).Format(api.HistoryDateLayout)
	prices, err := b.client.GetGoldPrices(ctx, since)
	if err != nil {
		b.reply(m.ChannelID, "Gold prices are unavailable right now.")
		return fmt.Errorf("gold prices since %s: %w", since, err)
	}
	if len(prices) == 0 {
		return b.reply(m.ChannelID, "No gold price data for that window.")
	}

	points := make([]market.Point, 0, len(prices))
	for _, p := range prices {
		t, err := api.ParsePriceTime(p.Timestamp)
		if err != nil {
			logger.Warn("skipping gold observation", "error", err)
			continue
		}
		points = append(points, market.Point{Timestamp: t, Price: p.Price})
	}

	embed := goldEmbed(points)
	if _, err := b.session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		return fmt.Errorf("send gold embed: %w", err)
	}

	path := b.artifactPath("gold.png")
	defer os.Remove(path)

	title := fmt.Sprintf("Gold price (%d days)", days)
	if err := chart.RenderGold(title, points, path); err != nil {
		logger.Warn("gold chart render skipped", "error", err)
		return nil
	}
	return b.sendFile(m.ChannelID, path)
}

// goldEmbed lists the most recent observations, newest last.
func goldEmbed(points []market.Point) *discordgo.MessageEmbed {
	start := 0
	if len(points) > goldEmbedRows {
		start = len(points) - goldEmbedRows
	}

	var when, price []string
	for _, p := range points[start:] {
		when = append(when, p.Timestamp.Format("Jan 2 15:04"))
		price = append(price, formatSilver(p.Price))
	}

	return &discordgo.MessageEmbed{
		Title: "Gold Price",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Time (UTC)", Value: strings.Join(when, "\n"), Inline: true},
			{Name: "Silver per Gold", Value: strings.Join(price, "\n"), Inline: true},
		},
	}
}
