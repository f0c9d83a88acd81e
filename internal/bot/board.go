package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
	"github.com/matchatealeaf/albion-discord-bot/internal/config"
	"github.com/matchatealeaf/albion-discord-bot/internal/orders"
)

// boardFetchLimit bounds concurrent price lookups during a refresh.
const boardFetchLimit = 4

// Board posts the guild order board to a channel and keeps it current by
// editing the posted messages in place.
type Board struct {
	cfg       config.BoardConfig
	client    *api.Client
	locations []string
	logger    *slog.Logger

	session *discordgo.Session // bound when the bot starts

	mu     sync.Mutex
	posted map[orders.Side]string // side -> message ID
}

// NewBoard creates a Board. The Discord session is bound later, when the
// owning bot opens its gateway connection.
func NewBoard(cfg config.BoardConfig, client *api.Client, locations []string, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		cfg:       cfg,
		client:    client,
		locations: locations,
		logger:    logger,
		posted:    make(map[orders.Side]string),
	}
}

// Refresh reloads the workbook, looks up current prices, and posts or edits
// one message per order side.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return errors.New("board has no session")
	}

	all, err := orders.LoadWorkbook(b.cfg.WorkbookPath)
	if err != nil {
		return fmt.Errorf("load order board: %w", err)
	}
	buys, sells := orders.BySide(all)

	minSell, err := b.fetchMinSells(ctx, all)
	if err != nil {
		return err
	}

	if err := b.upsert(orders.SideBuy, boardEmbed("Buy Orders", buys, minSell)); err != nil {
		return err
	}
	if err := b.upsert(orders.SideSell, boardEmbed("Sell Orders", sells, minSell)); err != nil {
		return err
	}

	b.logger.Info("order board refreshed", "buys", len(buys), "sells", len(sells))
	return nil
}

// fetchMinSells looks up each distinct item's lowest current sell price
// across the configured locations.
func (b *Board) fetchMinSells(ctx context.Context, all []orders.Order) (map[string]int64, error) {
	ids := make(map[string]bool)
	for _, o := range all {
		if o.ItemID != "" {
			ids[o.ItemID] = true
		}
	}

	var mu sync.Mutex
	minSell := make(map[string]int64, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(boardFetchLimit)
	for id := range ids {
		id := id
		g.Go(func() error {
			prices, err := b.client.GetCurrentPrices(ctx, id, b.locations)
			if err != nil {
				// One missing item should not blank the whole board.
				b.logger.Warn("board price lookup failed", "item_id", id, "error", err)
				return nil
			}
			mu.Lock()
			minSell[id] = lowestSell(prices)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("board price lookups: %w", err)
	}
	return minSell, nil
}

// upsert edits the previously posted message for side, or sends a new one
// when none exists yet.
func (b *Board) upsert(side orders.Side, embed *discordgo.MessageEmbed) error {
	if id, ok := b.posted[side]; ok {
		if _, err := b.session.ChannelMessageEditEmbed(b.cfg.ChannelID, id, embed); err == nil {
			return nil
		}
		// The message may have been deleted; fall through and repost.
		delete(b.posted, side)
	}

	msg, err := b.session.ChannelMessageSendEmbed(b.cfg.ChannelID, embed)
	if err != nil {
		return fmt.Errorf("post %s board: %w", side, err)
	}
	b.posted[side] = msg.ID
	return nil
}

// boardEmbed renders one side of the board. Market column shows the lowest
// current sell price so readers can compare against the board price.
func boardEmbed(title string, list []orders.Order, minSell map[string]int64) *discordgo.MessageEmbed {
	if len(list) == 0 {
		return &discordgo.MessageEmbed{
			Title:       title,
			Color:       embedColor,
			Description: "No open orders.",
		}
	}

	var items, terms, markets []string
	for _, o := range list {
		items = append(items, o.Item)
		terms = append(terms, fmt.Sprintf("%d @ %s", o.Quantity, formatSilver(o.Price)))
		if p := minSell[o.ItemID]; p > 0 {
			markets = append(markets, formatSilver(p))
		} else {
			markets = append(markets, "-")
		}
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Item", Value: strings.Join(items, "\n"), Inline: true},
			{Name: "Order", Value: strings.Join(terms, "\n"), Inline: true},
			{Name: "Market Min Sell", Value: strings.Join(markets, "\n"), Inline: true},
		},
	}
}

// lowestSell returns the smallest nonzero sell price, or 0 when none.
func lowestSell(prices []api.CurrentPrice) int64 {
	var low int64
	for _, p := range prices {
		if p.SellPriceMin == 0 {
			continue
		}
		if low == 0 || p.SellPriceMin < low {
			low = p.SellPriceMin
		}
	}
	return low
}
