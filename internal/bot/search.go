package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
)

// memberListCap limits how many members a guild embed names.
const memberListCap = 10

// handleSearch serves the search command: player details when the name
// matches a player, guild details otherwise.
func (b *Bot) handleSearch(ctx context.Context, m *discordgo.MessageCreate, args []string, logger *slog.Logger) error {
	name := strings.Join(args, " ")
	if name == "" {
		return b.reply(m.ChannelID, "Usage: search <player or guild name>")
	}

	resp, err := b.client.Search(ctx, name)
	if err != nil {
		b.reply(m.ChannelID, "Search is unavailable right now.")
		return fmt.Errorf("search %q: %w", name, err)
	}

	switch {
	case len(resp.Players) > 0:
		return b.sendPlayer(ctx, m.ChannelID, resp.Players[0].ID)
	case len(resp.Guilds) > 0:
		return b.sendGuild(ctx, m.ChannelID, resp.Guilds[0].ID, logger)
	default:
		return b.reply(m.ChannelID, fmt.Sprintf("Nothing found for %q.", name))
	}
}

func (b *Bot) sendPlayer(ctx context.Context, channelID, playerID string) error {
	p, err := b.client.GetPlayer(ctx, playerID)
	if err != nil {
		b.reply(channelID, "Player lookup failed.")
		return fmt.Errorf("get player %s: %w", playerID, err)
	}

	affiliation := p.GuildName
	if affiliation == "" {
		affiliation = "none"
	}
	if p.AllianceName != "" {
		affiliation += " [" + p.AllianceName + "]"
	}

	gather := p.LifetimeStatistics.Gathering
	embed := &discordgo.MessageEmbed{
		Title: p.Name,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Guild", Value: affiliation, Inline: true},
			{Name: "Kill Fame", Value: formatSilver(p.KillFame), Inline: true},
			{Name: "PvE Fame", Value: formatSilver(p.LifetimeStatistics.PvE.Total), Inline: true},
			{Name: "Crafting Fame", Value: formatSilver(p.LifetimeStatistics.Crafting.Total), Inline: true},
			{Name: "Gathering Fame", Value: formatSilver(gather.All.Total), Inline: true},
			{Name: "Gathering Breakdown", Value: fmt.Sprintf(
				"Fiber %s / Hide %s / Ore %s / Rock %s / Wood %s",
				formatSilver(gather.Fiber.Total),
				formatSilver(gather.Hide.Total),
				formatSilver(gather.Ore.Total),
				formatSilver(gather.Rock.Total),
				formatSilver(gather.Wood.Total),
			), Inline: false},
		},
	}
	_, err = b.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return fmt.Errorf("send player embed: %w", err)
	}
	return nil
}

func (b *Bot) sendGuild(ctx context.Context, channelID, guildID string, logger *slog.Logger) error {
	g, err := b.client.GetGuild(ctx, guildID)
	if err != nil {
		b.reply(channelID, "Guild lookup failed.")
		return fmt.Errorf("get guild %s: %w", guildID, err)
	}

	title := g.Name
	if g.AllianceID != "" {
		if a, err := b.client.GetAlliance(ctx, g.AllianceID); err == nil && a.Tag != "" {
			title = fmt.Sprintf("[%s] %s", a.Tag, g.Name)
		} else if err != nil {
			logger.Warn("alliance lookup failed", "alliance_id", g.AllianceID, "error", err)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Founder", Value: g.FounderName, Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", g.MemberCount), Inline: true},
			{Name: "Kill Fame", Value: formatSilver(g.KillFame), Inline: true},
		},
	}

	if members, err := b.client.GetGuildMembers(ctx, guildID); err != nil {
		logger.Warn("guild member lookup failed", "guild_id", guildID, "error", err)
	} else if len(members) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Top Members by Kill Fame",
			Value:  topMembers(members, memberListCap),
			Inline: false,
		})
	}

	_, err = b.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return fmt.Errorf("send guild embed: %w", err)
	}
	return nil
}

// topMembers lists up to n members sorted by kill fame descending.
func topMembers(members []api.GuildMember, n int) string {
	sorted := make([]api.GuildMember, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].KillFame > sorted[j].KillFame
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	var lines []string
	for i, m := range sorted {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, m.Name, formatSilver(m.KillFame)))
	}
	return strings.Join(lines, "\n")
}
