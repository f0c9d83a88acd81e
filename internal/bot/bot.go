package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
	"github.com/matchatealeaf/albion-discord-bot/internal/catalog"
	"github.com/matchatealeaf/albion-discord-bot/internal/config"
	"github.com/matchatealeaf/albion-discord-bot/internal/market"
)

// commandTimeout bounds one command's upstream work end to end.
const commandTimeout = 45 * time.Second

// ObservationSink receives cleaned series produced while serving commands.
type ObservationSink interface {
	Record(itemID, location string, series market.CleanedSeries)
}

// Bot is the Discord front end.
type Bot struct {
	cfg      config.DiscordConfig
	session  *discordgo.Session
	catalog  *catalog.Catalog
	resolver *catalog.Resolver
	client   *api.Client
	agg      *market.Aggregator
	sink     ObservationSink // may be nil
	board    *Board          // may be nil
	logger   *slog.Logger

	historyDays int
	chartDir    string

	workChannels map[string]bool
	admins       map[string]bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Bot. sink and board may be nil when the store and order
// board are disabled.
func New(cfg config.BotConfig, cat *catalog.Catalog, client *api.Client, agg *market.Aggregator, sink ObservationSink, board *Board, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	b := &Bot{
		cfg:          cfg.Discord,
		session:      session,
		catalog:      cat,
		resolver:     catalog.NewResolver(cat),
		client:       client,
		agg:          agg,
		sink:         sink,
		board:        board,
		logger:       logger,
		historyDays:  cfg.Market.HistoryDays,
		chartDir:     cfg.Chart.Dir,
		workChannels: toSet(cfg.Discord.WorkChannelIDs),
		admins:       toSet(cfg.Discord.AdminUsers),
	}

	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onReactionAdd)

	return b, nil
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	if b.board != nil {
		b.board.session = b.session
	}

	b.logger.Info("bot started",
		"prefixes", b.cfg.Prefixes,
		"work_channels", len(b.workChannels),
	)
	return nil
}

// Stop closes the gateway connection and waits for in-flight commands.
func (b *Bot) Stop(ctx context.Context) error {
	if b.cancel != nil {
		b.cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	b.logger.Info("bot stopped")
	return nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	cmd, args, ok := parseCommand(m.Content, b.cfg.Prefixes)
	if !ok {
		return
	}

	if b.cfg.OnlyWork && !b.workChannels[m.ChannelID] && !b.admins[m.Author.ID] {
		return
	}

	id := uuid.NewString()
	logger := b.logger.With("command", cmd, "correlation_id", id, "user", m.Author.ID)
	logger.Info("command received", "args", args)
	b.debug(fmt.Sprintf("[%s] %s %s from %s", id, cmd, strings.Join(args, " "), m.Author.Username))

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
		defer cancel()

		var err error
		switch canonicalCommand(cmd) {
		case "prices":
			err = b.handlePrices(ctx, m, args, false, logger)
		case "quick":
			err = b.handlePrices(ctx, m, args, true, logger)
		case "gold":
			err = b.handleGold(ctx, m, args, logger)
		case "search":
			err = b.handleSearch(ctx, m, args, logger)
		case "ping":
			err = b.handlePing(m)
		case "board":
			err = b.handleBoard(ctx, m, logger)
		case "export":
			err = b.handleExport(ctx, m, args, logger)
		default:
			return
		}
		if err != nil {
			logger.Error("command failed", "error", err)
			b.debug(fmt.Sprintf("[%s] failed: %v", id, err))
		}
	}()
}

// canonicalCommand folds command aliases onto their primary name.
func canonicalCommand(cmd string) string {
	if cmd == "price" {
		return "prices"
	}
	return cmd
}

// parseCommand strips a matching prefix and splits the command word from
// its arguments. Prefix matching is case-insensitive.
func parseCommand(content string, prefixes []string) (cmd string, args []string, ok bool) {
	lower := strings.ToLower(content)
	for _, p := range prefixes {
		if !strings.HasPrefix(lower, strings.ToLower(p)) {
			continue
		}
		fields := strings.Fields(content[len(p):])
		if len(fields) == 0 {
			return "", nil, false
		}
		return strings.ToLower(fields[0]), fields[1:], true
	}
	return "", nil, false
}

func (b *Bot) reply(channelID, content string) error {
	_, err := b.session.ChannelMessageSend(channelID, content)
	return err
}

// debug mirrors a line to the debug channel when debug mode is on.
func (b *Bot) debug(line string) {
	if !b.cfg.Debug || b.cfg.DebugChannelID == "" {
		return
	}
	if _, err := b.session.ChannelMessageSend(b.cfg.DebugChannelID, line); err != nil {
		b.logger.Warn("debug channel send failed", "error", err)
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
