package wikipedia

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Defaults for top-level queries
const (
	DefaultSearchLimit = 50
	DefaultRandomLimit = 1
	DefaultGeoRadius   = 1000 // meters
)

// Search runs a full-text search and returns the first page of matching titles.
// A non-positive limit means DefaultSearchLimit.
func (c *Client) Search(ctx context.Context, query string, limit int) (*PageResult[string], error) {
	return c.SearchFrom(ctx, query, limit, nil)
}

// SearchFrom resumes a search at a cursor returned by an earlier page
func (c *Client) SearchFrom(ctx context.Context, query string, limit int, from *Cursor) (*PageResult[string], error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := Params{
		"list":     "search",
		"srsearch": query,
		"srlimit":  strconv.Itoa(limit),
	}
	return paginateFrom(ctx, c, "search", params, from, listTitles("search"))
}

// SearchAll runs a full-text search and follows every continuation
func (c *Client) SearchAll(ctx context.Context, query string, limit int) ([]string, error) {
	first, err := c.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return Aggregate(ctx, first)
}

// Random returns titles of random main-namespace articles. Single page only.
func (c *Client) Random(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultRandomLimit
	}

	params := Params{
		"list":        "random",
		"rnnamespace": "0",
		"rnlimit":     strconv.Itoa(limit),
	}
	resp, err := c.query(ctx, "random", params)
	if err != nil {
		return nil, err
	}
	return listTitles("random")(resp)
}

// GeoSearch returns titles of articles within radius meters of lat/lon.
// Single page only. A non-positive radius means DefaultGeoRadius.
func (c *Client) GeoSearch(ctx context.Context, lat, lon float64, radius int) ([]string, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("coordinates out of range: %v|%v", lat, lon)
	}
	if radius <= 0 {
		radius = DefaultGeoRadius
	}

	params := Params{
		"list":     "geosearch",
		"gscoord":  formatCoord(lat) + "|" + formatCoord(lon),
		"gsradius": strconv.Itoa(radius),
	}
	resp, err := c.query(ctx, "geosearch", params)
	if err != nil {
		return nil, err
	}
	return listTitles("geosearch")(resp)
}

// Page resolves a title to a page handle carrying its metadata.
// It fails with NotFoundError when no page with that title exists.
func (c *Client) Page(ctx context.Context, title string) (*Page, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("page title is required")
	}

	params := Params{
		"prop":   "info|pageprops",
		"inprop": "url",
		"ppprop": "disambiguation",
		"titles": title,
	}
	resp, err := c.query(ctx, "page", params)
	if err != nil {
		return nil, err
	}

	entry := findPageByTitle(resp, title)
	if entry == nil {
		return nil, &NotFoundError{Title: title}
	}
	if _, missing := entry["missing"]; missing {
		return nil, &NotFoundError{Title: title}
	}
	if _, invalid := entry["invalid"]; invalid {
		return nil, &NotFoundError{Title: title}
	}

	return newPageFromInfo(c, entry), nil
}

// NewPage binds a handle to a known page id and title without a lookup
func (c *Client) NewPage(pageID int, title string) *Page {
	return &Page{PageID: pageID, Title: title, client: c}
}

// findPageByTitle locates the query.pages entry for title. Pages are keyed
// by id, so entries are matched on their title field, following any
// normalization MediaWiki applied to the requested title.
func findPageByTitle(resp Response, title string) map[string]any {
	wanted := map[string]bool{title: true}
	for _, n := range getSlice(resp.Query()["normalized"]) {
		norm := getMap(n)
		if getString(norm["from"]) == title {
			wanted[getString(norm["to"])] = true
		}
	}

	for _, raw := range resp.Pages() {
		entry := getMap(raw)
		if entry != nil && wanted[getString(entry["title"])] {
			return entry
		}
	}
	return nil
}

// listTitles extracts the title of every item in query.<list>
func listTitles(list string) Extractor[string] {
	return func(resp Response) ([]string, error) {
		q := resp.Query()
		if q == nil {
			return nil, &NotFoundError{Field: "query"}
		}
		raw, ok := q[list]
		if !ok {
			return nil, &NotFoundError{Field: "query." + list}
		}
		return titlesOf(getSlice(raw)), nil
	}
}

func titlesOf(items []any) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		if t := getString(getMap(item)["title"]); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
