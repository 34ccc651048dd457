// Package pagination walks link-paginated upstream collections page by page.
//
// GitHub signals continuation with a Link header naming a "next" relation and does
// not report a total page count up front, so pages are fetched sequentially:
//
//	repos, err := pagination.Walk(ctx, cfg, func(ctx context.Context, page int) ([]github.RepositoryRef, bool, error) {
//		return client.FetchRepositoryPage(ctx, "octocat", page)
//	})
//
// The walker:
//   - Starts at page 1 and stops on the first page without a next link
//   - Preserves upstream item order
//   - Aborts on the first page error and discards accumulated items
//   - Optionally enforces a page ceiling (disabled by default)
package pagination
