// Package blogdex embeds the blogdex content engine in a Go program.
//
// An Engine holds one immutable batch of posts built from loosely-typed
// entries (the metadata envelope a static-site generator produces, with an
// optional front-matter map). It answers fuzzy full-text queries, ranks related
// and popular posts, and navigates series.
//
//	eng, _ := blogdex.New(entries)
//	defer eng.Close()
//
//	results, _ := eng.Search(ctx, "react hooks", 10)
//	for _, r := range results {
//	    fmt.Println(r.Post.Title, r.Distance)
//	}
//
//	related, _ := eng.Related("/posts/hooks", 4)
//	nav, ok := eng.Navigate("react-basics", "/posts/hooks")
//
// Markdown directories can be loaded directly:
//
//	eng, _ := blogdex.NewFromDirs(ctx, []string{"content/posts"})
//
// For as-you-type search, Typeahead debounces queries and drops stale results.
package blogdex
