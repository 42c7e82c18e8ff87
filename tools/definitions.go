package tools

// AllTools contains all tool specifications for the Wikipedia MCP server.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// SEARCH TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_search",
		Method:   "Search",
		Title:    "Search Wikipedia",
		Category: "search",
		Description: `Full-text search across Wikipedia articles.

USE WHEN: User asks "find articles about X", "what does Wikipedia have on X", or doesn't know the exact article title.

NOT FOR: Fetching a known article (use wikipedia_get_summary or wikipedia_get_content).

PARAMETERS:
- query: Search text (required)
- limit: Results per page (default 50)
- all: Follow continuations and return every match (default false)
- cursor: The cursor of a previous result, to fetch the next page

RETURNS: Matching article titles, plus a continuation cursor when more results exist.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_random",
		Method:   "Random",
		Title:    "Random Articles",
		Category: "search",
		Description: `Pick random Wikipedia articles from the main namespace.

USE WHEN: User asks for "a random article", "surprise me", "something to read".

PARAMETERS:
- limit: Number of articles (default 1)

RETURNS: Article titles.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "wikipedia_geosearch",
		Method:   "GeoSearch",
		Title:    "Articles Near a Location",
		Category: "search",
		Description: `Find articles about places near a coordinate.

USE WHEN: User asks "what is near X", "landmarks around these coordinates", "articles about places within 1 km".

NOT FOR: Getting the coordinates of a known article (use wikipedia_get_coordinates).

PARAMETERS:
- lat, lon: Decimal degrees (required)
- radius: Meters (default 1000, max 10000)

RETURNS: Titles of nearby articles.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// PAGE TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_get_page",
		Method:   "GetPage",
		Title:    "Get Page Info",
		Category: "page",
		Description: `Resolve an article title to its page metadata.

USE WHEN: User asks "does Wikipedia have an article on X", "what is the URL of X", "is X a disambiguation page".

NOT FOR: Reading the article text (use wikipedia_get_summary or wikipedia_get_content).

PARAMETERS:
- title: Article title (required)

RETURNS: Page id, canonical title, namespace, URL and disambiguation flag, or found=false.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_coordinates",
		Method:   "GetCoordinates",
		Title:    "Get Coordinates",
		Category: "page",
		Description: `Get the geographic coordinates of an article.

USE WHEN: User asks "where is X", "coordinates of X", "latitude of X".

PARAMETERS:
- title: Article title (required)

RETURNS: Latitude, longitude and globe, or found=false when the article has none.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_infobox",
		Method:   "GetInfobox",
		Title:    "Get Infobox",
		Category: "page",
		Description: `Extract the infobox of an article as key/value fields.

USE WHEN: User asks for quick facts: "when was X born", "population of X", "who founded X".

PARAMETERS:
- title: Article title (required)

RETURNS: Infobox fields as raw wikitext values. Empty when the article has no infobox.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// CONTENT TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_get_summary",
		Method:   "GetSummary",
		Title:    "Get Summary",
		Category: "content",
		Description: `Get the plain-text introduction of an article.

USE WHEN: User asks "what is X", "tell me about X", "summarize X".

NOT FOR: The whole article (use wikipedia_get_content).

PARAMETERS:
- title: Article title (required)

RETURNS: Lead section as plain text.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_content",
		Method:   "GetContent",
		Title:    "Get Article Text",
		Category: "content",
		Description: `Get the full plain-text content of an article.

USE WHEN: User needs details beyond the introduction or asks to read the whole article.

NOT FOR: A short overview (use wikipedia_get_summary).

PARAMETERS:
- title: Article title (required)

RETURNS: Article text without markup.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_html",
		Method:   "GetHTML",
		Title:    "Get Article HTML",
		Category: "content",
		Description: `Get the rendered HTML of an article.

USE WHEN: User needs tables, formatting or markup that plain text loses.

PARAMETERS:
- title: Article title (required)

RETURNS: Rendered HTML of the latest revision.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_images",
		Method:   "GetImages",
		Title:    "Get Images",
		Category: "content",
		Description: `List the image and media file URLs used in an article.

USE WHEN: User asks "show pictures of X", "what images does the X article use".

PARAMETERS:
- title: Article title (required)

RETURNS: File URLs ordered by file name.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_references",
		Method:   "GetReferences",
		Title:    "Get External Links",
		Category: "content",
		Description: `List the external links (references, sources) of an article.

USE WHEN: User asks "what sources does X cite", "external links for X".

PARAMETERS:
- title: Article title (required)

RETURNS: External URLs.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// LIST TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_get_links",
		Method:   "GetLinks",
		Title:    "Get Outgoing Links",
		Category: "lists",
		Description: `List the articles an article links to.

USE WHEN: User asks "what topics does X link to", "related articles of X".

NOT FOR: Pages that link TO the article (use wikipedia_get_backlinks).

PARAMETERS:
- title: Article title (required)
- limit: Links per page (default: API maximum)
- all: Follow continuations (default false)
- cursor: The cursor of a previous result, to fetch the next page

RETURNS: Linked article titles, plus a continuation cursor when more exist.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_backlinks",
		Method:   "GetBacklinks",
		Title:    "Get Backlinks",
		Category: "lists",
		Description: `List the pages that link to an article.

USE WHEN: User asks "what links to X", "which articles mention X".

NOT FOR: Links FROM the article (use wikipedia_get_links).

PARAMETERS:
- title: Article title (required)
- limit: Backlinks per page (default: API maximum)
- all: Follow continuations (default false)
- cursor: The cursor of a previous result, to fetch the next page

RETURNS: Titles of linking pages, plus a continuation cursor when more exist.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_get_categories",
		Method:   "GetCategories",
		Title:    "Get Categories",
		Category: "lists",
		Description: `List the categories an article belongs to.

USE WHEN: User asks "how is X classified", "what categories is X in".

PARAMETERS:
- title: Article title (required)
- limit: Categories per page (default: API maximum)
- all: Follow continuations (default false)
- cursor: The cursor of a previous result, to fetch the next page

RETURNS: Category titles (with "Category:" prefix), plus a continuation cursor when more exist.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
