// Package bot implements the Discord transport: prefix command routing,
// embed rendering, reaction handling, and the scheduled order board.
//
// The bot owns no market logic. Commands resolve items through the catalog
// resolver, fetch through the api client, and aggregate through the market
// aggregator; this package only turns the results into Discord messages.
package bot
