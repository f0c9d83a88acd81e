package bot

import "github.com/bwmarrin/discordgo"

// deleteEmoji removes a bot message when a user reacts with it.
const deleteEmoji = "❌"

// onReactionAdd deletes one of the bot's own messages when a non-bot user
// reacts with the delete emoji. Reactions on other messages are ignored.
func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.Emoji.Name != deleteEmoji {
		return
	}
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}

	msg, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		b.logger.Warn("reaction message lookup failed", "error", err)
		return
	}
	if msg.Author == nil || s.State.User == nil || msg.Author.ID != s.State.User.ID {
		return
	}

	if err := s.ChannelMessageDelete(r.ChannelID, r.MessageID); err != nil {
		b.logger.Warn("message delete failed", "message_id", r.MessageID, "error", err)
		return
	}
	b.logger.Info("message deleted by reaction", "message_id", r.MessageID, "user", r.UserID)
}
