// Package yojana provides an embeddable Go client for the government schemes
// catalog: search, filter, sort and paginate schemes, browse categories and
// regions, keep per-session bookmarks and preferences, and talk to the
// rule-based scheme assistant.
//
// The client loads the dataset once on New and answers every query in process.
// Sessions live in memory by default, or in Valkey/Redis when configured.
//
//	client, _ := yojana.New(ctx, yojana.WithDataset("data/schemes.json"))
//	defer client.Close()
//
//	page, _ := client.Schemes().Search("farmer").
//	    Category("Agriculture").
//	    Sort(yojana.SortRecent).
//	    Page(2).
//	    Do(ctx)
//
//	reply, _ := client.Chat().Ask(ctx, "health schemes")
//
//	session := client.Sessions().New()
//	_, _ = client.Sessions().ToggleBookmark(ctx, session, "pm-kisan")
package yojana
