package wikipedia

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// Page is a handle to one resolved article. Its fields come from the page
// info lookup; every method issues fresh queries and nothing is cached.
type Page struct {
	PageID         int    `json:"page_id"`
	Title          string `json:"title"`
	Namespace      int    `json:"namespace"`
	FullURL        string `json:"full_url,omitempty"`
	Disambiguation bool   `json:"disambiguation,omitempty"`

	// Extra holds the remaining fields of the page info entry
	// (contentmodel, lastrevid, length, touched, ...).
	Extra map[string]any `json:"extra,omitempty"`

	client *Client
}

// Coordinates is a geographic point attached to a page
type Coordinates struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Primary bool    `json:"primary"`
	Globe   string  `json:"globe,omitempty"`
}

func newPageFromInfo(c *Client, entry map[string]any) *Page {
	p := &Page{
		PageID:    getInt(entry["pageid"]),
		Title:     getString(entry["title"]),
		Namespace: getInt(entry["ns"]),
		FullURL:   getString(entry["fullurl"]),
		Extra:     map[string]any{},
		client:    c,
	}

	for k, v := range entry {
		switch k {
		case "pageid", "title", "ns", "fullurl":
		case "pageprops":
			props := getMap(v)
			if _, ok := props["disambiguation"]; ok {
				p.Disambiguation = true
			}
			rest := map[string]any{}
			for pk, pv := range props {
				if pk != "disambiguation" {
					rest[pk] = pv
				}
			}
			if len(rest) > 0 {
				p.Extra["pageprops"] = rest
			}
		default:
			p.Extra[k] = v
		}
	}
	return p
}

// HTML returns the rendered HTML of the latest revision
func (p *Page) HTML(ctx context.Context) (string, error) {
	entry, err := p.propQuery(ctx, "html", Params{
		"prop":    "revisions",
		"rvprop":  "content",
		"rvlimit": "1",
		"rvparse": "1",
	})
	if err != nil {
		return "", err
	}
	return p.firstRevision(entry)
}

// Content returns the plain-text extract of the whole article
func (p *Page) Content(ctx context.Context) (string, error) {
	return p.extract(ctx, "content", Params{
		"prop":        "extracts",
		"explaintext": "1",
	})
}

// Summary returns the plain-text extract of the introduction
func (p *Page) Summary(ctx context.Context) (string, error) {
	return p.extract(ctx, "summary", Params{
		"prop":        "extracts",
		"explaintext": "1",
		"exintro":     "1",
	})
}

func (p *Page) extract(ctx context.Context, operation string, params Params) (string, error) {
	entry, err := p.propQuery(ctx, operation, params)
	if err != nil {
		return "", err
	}
	text, ok := entry["extract"].(string)
	if !ok {
		return "", &NotFoundError{Title: p.Title, Field: "extract"}
	}
	return text, nil
}

// Images returns the URLs of every file used on the page, grouped by file
// title. A response without a query object yields an empty list.
func (p *Page) Images(ctx context.Context) ([]string, error) {
	params := Params{
		"generator": "images",
		"prop":      "imageinfo",
		"iiprop":    "url",
	}
	p.addIdentity(params)

	resp, err := p.client.query(ctx, "images", params)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0)
	pages := resp.Pages()
	if pages == nil {
		return urls, nil
	}

	files := make([]map[string]any, 0, len(pages))
	for _, raw := range pages {
		if file := getMap(raw); file != nil {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return getString(files[i]["title"]) < getString(files[j]["title"])
	})

	for _, file := range files {
		for _, info := range getSlice(file["imageinfo"]) {
			if u := getString(getMap(info)["url"]); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}

// References returns the external links of the page
func (p *Page) References(ctx context.Context) ([]string, error) {
	entry, err := p.propQuery(ctx, "references", Params{
		"prop":    "extlinks",
		"ellimit": "max",
	})
	if err != nil {
		return nil, err
	}

	links := getSlice(entry["extlinks"])
	refs := make([]string, 0, len(links))
	for _, l := range links {
		if u := getString(getMap(l)["*"]); u != "" {
			refs = append(refs, u)
		}
	}
	return refs, nil
}

// Links returns the titles of every main-namespace article the page links to
func (p *Page) Links(ctx context.Context, limit int) ([]string, error) {
	first, err := p.LinksPage(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Aggregate(ctx, first)
}

// LinksPage returns one page of linked titles; follow it with Next.
// A non-positive limit requests the API maximum per page.
func (p *Page) LinksPage(ctx context.Context, limit int) (*PageResult[string], error) {
	return p.LinksPageFrom(ctx, limit, nil)
}

// LinksPageFrom resumes the listing at a cursor returned by an earlier page
func (p *Page) LinksPageFrom(ctx context.Context, limit int, from *Cursor) (*PageResult[string], error) {
	params := Params{
		"prop":        "links",
		"plnamespace": "0",
		"pllimit":     limitParam(limit),
	}
	p.addIdentity(params)
	return paginateFrom(ctx, p.client, "links", params, from, p.propTitles("links"))
}

// Categories returns the titles of every category the page belongs to
func (p *Page) Categories(ctx context.Context, limit int) ([]string, error) {
	first, err := p.CategoriesPage(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Aggregate(ctx, first)
}

// CategoriesPage returns one page of category titles; follow it with Next.
func (p *Page) CategoriesPage(ctx context.Context, limit int) (*PageResult[string], error) {
	return p.CategoriesPageFrom(ctx, limit, nil)
}

// CategoriesPageFrom resumes the listing at a cursor returned by an earlier page
func (p *Page) CategoriesPageFrom(ctx context.Context, limit int, from *Cursor) (*PageResult[string], error) {
	params := Params{
		"prop":    "categories",
		"cllimit": limitParam(limit),
	}
	p.addIdentity(params)
	return paginateFrom(ctx, p.client, "categories", params, from, p.propTitles("categories"))
}

// Backlinks returns the titles of every page linking to this one
func (p *Page) Backlinks(ctx context.Context, limit int) ([]string, error) {
	first, err := p.BacklinksPage(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Aggregate(ctx, first)
}

// BacklinksPage returns one page of backlink titles; follow it with Next.
func (p *Page) BacklinksPage(ctx context.Context, limit int) (*PageResult[string], error) {
	return p.BacklinksPageFrom(ctx, limit, nil)
}

// BacklinksPageFrom resumes the listing at a cursor returned by an earlier page
func (p *Page) BacklinksPageFrom(ctx context.Context, limit int, from *Cursor) (*PageResult[string], error) {
	params := Params{
		"list":    "backlinks",
		"bllimit": limitParam(limit),
		"bltitle": p.Title,
	}
	return paginateFrom(ctx, p.client, "backlinks", params, from, listTitles("backlinks"))
}

// Coordinates returns the first coordinates recorded for the page
func (p *Page) Coordinates(ctx context.Context) (Coordinates, error) {
	entry, err := p.propQuery(ctx, "coordinates", Params{
		"prop": "coordinates",
	})
	if err != nil {
		return Coordinates{}, err
	}

	coords := getSlice(entry["coordinates"])
	if len(coords) == 0 {
		return Coordinates{}, &NotFoundError{Title: p.Title, Field: "coordinates"}
	}
	first := getMap(coords[0])
	_, primary := first["primary"]
	return Coordinates{
		Lat:     getFloat(first["lat"]),
		Lon:     getFloat(first["lon"]),
		Primary: primary,
		Globe:   getString(first["globe"]),
	}, nil
}

// Infobox parses the infobox of the page's lead section into key/value pairs
func (p *Page) Infobox(ctx context.Context) (map[string]string, error) {
	entry, err := p.propQuery(ctx, "infobox", Params{
		"prop":      "revisions",
		"rvprop":    "content",
		"rvsection": "0",
	})
	if err != nil {
		return nil, err
	}
	wikitext, err := p.firstRevision(entry)
	if err != nil {
		return nil, err
	}

	box, err := p.client.infobox.Parse(wikitext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse infobox of %s: %w", p.Title, err)
	}
	return box, nil
}

// propQuery runs a prop= query for this page and returns its query.pages entry
func (p *Page) propQuery(ctx context.Context, operation string, params Params) (map[string]any, error) {
	p.addIdentity(params)
	resp, err := p.client.query(ctx, operation, params)
	if err != nil {
		return nil, err
	}
	return p.entryIn(resp)
}

// propTitles extracts titles from a per-page list property such as links
func (p *Page) propTitles(prop string) Extractor[string] {
	return func(resp Response) ([]string, error) {
		entry, err := p.entryIn(resp)
		if err != nil {
			return nil, err
		}
		return titlesOf(getSlice(entry[prop])), nil
	}
}

func (p *Page) entryIn(resp Response) (map[string]any, error) {
	var entry map[string]any
	if p.PageID > 0 {
		entry = getMap(resp.Pages()[strconv.Itoa(p.PageID)])
	} else {
		entry = findPageByTitle(resp, p.Title)
	}
	if entry == nil {
		return nil, &NotFoundError{Title: p.Title}
	}
	if _, missing := entry["missing"]; missing {
		return nil, &NotFoundError{Title: p.Title}
	}
	return entry, nil
}

func (p *Page) firstRevision(entry map[string]any) (string, error) {
	revs := getSlice(entry["revisions"])
	if len(revs) == 0 {
		return "", &NotFoundError{Title: p.Title, Field: "revisions"}
	}
	content, ok := getMap(revs[0])["*"].(string)
	if !ok {
		return "", &NotFoundError{Title: p.Title, Field: "revision content"}
	}
	return content, nil
}

// addIdentity addresses the page by id when known, else by title
func (p *Page) addIdentity(params Params) {
	if p.PageID > 0 {
		params["pageids"] = strconv.Itoa(p.PageID)
		return
	}
	params["titles"] = p.Title
}

func limitParam(limit int) string {
	if limit <= 0 {
		return "max"
	}
	return strconv.Itoa(limit)
}
