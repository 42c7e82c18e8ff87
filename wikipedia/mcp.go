package wikipedia

import (
	"context"
	"fmt"
)

// MCP tool wrapper methods.
// These wrap the client operations with Args/Result types for tool registration.

// MaxGeoRadius is the largest radius the geosearch list accepts, in meters
const MaxGeoRadius = 10000

// SearchMCP is the MCP wrapper for Search and SearchAll
func (c *Client) SearchMCP(ctx context.Context, args SearchArgs) (SearchResult, error) {
	if err := ValidateSearchQuery(args.Query); err != nil {
		return SearchResult{}, err
	}
	if err := ValidateLimit(args.Limit); err != nil {
		return SearchResult{}, err
	}

	first, err := c.SearchFrom(ctx, args.Query, args.Limit, args.Cursor)
	if err != nil {
		return SearchResult{}, err
	}
	list, err := collectTitles(ctx, "", first, args.All)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		Query:   args.Query,
		Titles:  list.Titles,
		Count:   list.Count,
		HasMore: list.HasMore,
		Cursor:  list.Cursor,
	}, nil
}

// RandomMCP is the MCP wrapper for Random
func (c *Client) RandomMCP(ctx context.Context, args RandomArgs) (TitlesResult, error) {
	if err := ValidateLimit(args.Limit); err != nil {
		return TitlesResult{}, err
	}
	titles, err := c.Random(ctx, args.Limit)
	if err != nil {
		return TitlesResult{}, err
	}
	return TitlesResult{Titles: titles, Count: len(titles)}, nil
}

// GeoSearchMCP is the MCP wrapper for GeoSearch
func (c *Client) GeoSearchMCP(ctx context.Context, args GeoSearchArgs) (TitlesResult, error) {
	if err := ValidateCoordinates(args.Lat, args.Lon); err != nil {
		return TitlesResult{}, err
	}
	if args.Radius < 0 || args.Radius > MaxGeoRadius {
		return TitlesResult{}, fmt.Errorf("radius must be between 0 and %d meters, got %d", MaxGeoRadius, args.Radius)
	}
	titles, err := c.GeoSearch(ctx, args.Lat, args.Lon, args.Radius)
	if err != nil {
		return TitlesResult{}, err
	}
	return TitlesResult{Titles: titles, Count: len(titles)}, nil
}

// GetPageMCP is the MCP wrapper for Page. A missing page is reported in the
// result rather than as an error.
func (c *Client) GetPageMCP(ctx context.Context, args GetPageArgs) (GetPageResult, error) {
	if err := ValidateTitle(args.Title); err != nil {
		return GetPageResult{}, err
	}
	page, err := c.Page(ctx, args.Title)
	if err != nil {
		if IsNotFound(err) {
			return GetPageResult{Found: false, Message: "No page found with title: " + args.Title}, nil
		}
		return GetPageResult{}, err
	}
	return GetPageResult{Page: page, Found: true}, nil
}

// GetContentMCP returns the plain-text article
func (c *Client) GetContentMCP(ctx context.Context, args GetContentArgs) (TextResult, error) {
	return c.pageText(ctx, args.Title, (*Page).Content)
}

// GetSummaryMCP returns the plain-text introduction
func (c *Client) GetSummaryMCP(ctx context.Context, args GetSummaryArgs) (TextResult, error) {
	return c.pageText(ctx, args.Title, (*Page).Summary)
}

// GetHTMLMCP returns the rendered HTML
func (c *Client) GetHTMLMCP(ctx context.Context, args GetHTMLArgs) (TextResult, error) {
	return c.pageText(ctx, args.Title, (*Page).HTML)
}

// GetImagesMCP lists the image URLs used on a page
func (c *Client) GetImagesMCP(ctx context.Context, args GetImagesArgs) (URLsResult, error) {
	return c.pageURLs(ctx, args.Title, (*Page).Images)
}

// GetReferencesMCP lists the external links of a page
func (c *Client) GetReferencesMCP(ctx context.Context, args GetReferencesArgs) (URLsResult, error) {
	return c.pageURLs(ctx, args.Title, (*Page).References)
}

// GetLinksMCP lists the articles a page links to
func (c *Client) GetLinksMCP(ctx context.Context, args GetLinksArgs) (TitlesResult, error) {
	return c.pageList(ctx, args.Title, args.Limit, args.All, args.Cursor, (*Page).LinksPageFrom)
}

// GetCategoriesMCP lists the categories of a page
func (c *Client) GetCategoriesMCP(ctx context.Context, args GetCategoriesArgs) (TitlesResult, error) {
	return c.pageList(ctx, args.Title, args.Limit, args.All, args.Cursor, (*Page).CategoriesPageFrom)
}

// GetBacklinksMCP lists the pages linking to a page
func (c *Client) GetBacklinksMCP(ctx context.Context, args GetBacklinksArgs) (TitlesResult, error) {
	return c.pageList(ctx, args.Title, args.Limit, args.All, args.Cursor, (*Page).BacklinksPageFrom)
}

// GetCoordinatesMCP returns the coordinates of a page. A page without
// coordinates is reported in the result rather than as an error.
func (c *Client) GetCoordinatesMCP(ctx context.Context, args GetCoordinatesArgs) (GetCoordinatesResult, error) {
	if err := ValidateTitle(args.Title); err != nil {
		return GetCoordinatesResult{}, err
	}
	coords, err := c.NewPage(0, args.Title).Coordinates(ctx)
	if err != nil {
		if IsNotFound(err) {
			return GetCoordinatesResult{
				Title:   args.Title,
				Found:   false,
				Message: err.Error(),
			}, nil
		}
		return GetCoordinatesResult{}, err
	}
	return GetCoordinatesResult{Title: args.Title, Coordinates: &coords, Found: true}, nil
}

// GetInfoboxMCP returns the parsed infobox fields of a page
func (c *Client) GetInfoboxMCP(ctx context.Context, args GetInfoboxArgs) (GetInfoboxResult, error) {
	if err := ValidateTitle(args.Title); err != nil {
		return GetInfoboxResult{}, err
	}
	fields, err := c.NewPage(0, args.Title).Infobox(ctx)
	if err != nil {
		return GetInfoboxResult{}, err
	}
	return GetInfoboxResult{Title: args.Title, Fields: fields, Count: len(fields)}, nil
}

func (c *Client) pageText(ctx context.Context, title string, get func(*Page, context.Context) (string, error)) (TextResult, error) {
	if err := ValidateTitle(title); err != nil {
		return TextResult{}, err
	}
	text, err := get(c.NewPage(0, title), ctx)
	if err != nil {
		return TextResult{}, err
	}
	return TextResult{Title: title, Text: text, Length: len(text)}, nil
}

func (c *Client) pageURLs(ctx context.Context, title string, get func(*Page, context.Context) ([]string, error)) (URLsResult, error) {
	if err := ValidateTitle(title); err != nil {
		return URLsResult{}, err
	}
	urls, err := get(c.NewPage(0, title), ctx)
	if err != nil {
		return URLsResult{}, err
	}
	return URLsResult{Title: title, URLs: urls, Count: len(urls)}, nil
}

func (c *Client) pageList(ctx context.Context, title string, limit int, all bool, from *Cursor, get func(*Page, context.Context, int, *Cursor) (*PageResult[string], error)) (TitlesResult, error) {
	if err := ValidateTitle(title); err != nil {
		return TitlesResult{}, err
	}
	if err := ValidateLimit(limit); err != nil {
		return TitlesResult{}, err
	}
	first, err := get(c.NewPage(0, title), ctx, limit, from)
	if err != nil {
		return TitlesResult{}, err
	}
	return collectTitles(ctx, title, first, all)
}

// collectTitles returns the first page as is, or every page when all is set
func collectTitles(ctx context.Context, title string, first *PageResult[string], all bool) (TitlesResult, error) {
	if !all {
		titles := first.Results
		if titles == nil {
			titles = []string{}
		}
		return TitlesResult{
			Title:   title,
			Titles:  titles,
			Count:   len(titles),
			HasMore: first.HasNext(),
			Cursor:  first.Cursor,
		}, nil
	}

	titles, err := Aggregate(ctx, first)
	if err != nil {
		return TitlesResult{}, err
	}
	return TitlesResult{Title: title, Titles: titles, Count: len(titles)}, nil
}
