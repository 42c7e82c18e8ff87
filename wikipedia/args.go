package wikipedia

// SearchArgs contains parameters for full-text search
type SearchArgs struct {
	Query string `json:"query" jsonschema:"Search text"`
	Limit int    `json:"limit,omitempty" jsonschema:"Results per page (default 50, max 500)"`
	All   bool   `json:"all,omitempty" jsonschema:"Follow every continuation and return all matches (default: false)"`

	Cursor *Cursor `json:"cursor,omitempty" jsonschema:"Continuation cursor from a previous result; returns the page after it"`
}

// SearchResult is the result of a search
type SearchResult struct {
	Query   string   `json:"query"`
	Titles  []string `json:"titles"`
	Count   int      `json:"count"`
	HasMore bool     `json:"has_more"`
	Cursor  *Cursor  `json:"cursor,omitempty"`
}

// RandomArgs contains parameters for random article selection
type RandomArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of random articles (default 1, max 500)"`
}

// GeoSearchArgs contains parameters for a coordinate search
type GeoSearchArgs struct {
	Lat    float64 `json:"lat" jsonschema:"Latitude in decimal degrees"`
	Lon    float64 `json:"lon" jsonschema:"Longitude in decimal degrees"`
	Radius int     `json:"radius,omitempty" jsonschema:"Search radius in meters (default 1000, max 10000)"`
}

// TitlesResult is a list of article titles
type TitlesResult struct {
	Title   string   `json:"title,omitempty"` // page the list belongs to, if any
	Titles  []string `json:"titles"`
	Count   int      `json:"count"`
	HasMore bool     `json:"has_more"`
	Cursor  *Cursor  `json:"cursor,omitempty"`
}

// GetPageArgs contains parameters for a page lookup
type GetPageArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// GetPageResult is the result of a page lookup
type GetPageResult struct {
	Page    *Page  `json:"page,omitempty"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// GetContentArgs contains parameters for fetching the plain-text article
type GetContentArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// GetSummaryArgs contains parameters for fetching the introduction
type GetSummaryArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// GetHTMLArgs contains parameters for fetching rendered HTML
type GetHTMLArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// TextResult is a block of page text
type TextResult struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// GetImagesArgs contains parameters for listing image URLs
type GetImagesArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// GetReferencesArgs contains parameters for listing external links
type GetReferencesArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// URLsResult is a list of URLs attached to a page
type URLsResult struct {
	Title string   `json:"title"`
	URLs  []string `json:"urls"`
	Count int      `json:"count"`
}

// GetLinksArgs contains parameters for listing outgoing article links
type GetLinksArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
	Limit int    `json:"limit,omitempty" jsonschema:"Links per page (default: API maximum)"`
	All   bool   `json:"all,omitempty" jsonschema:"Follow every continuation (default: false)"`

	Cursor *Cursor `json:"cursor,omitempty" jsonschema:"Continuation cursor from a previous result; returns the page after it"`
}

// GetCategoriesArgs contains parameters for listing categories
type GetCategoriesArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
	Limit int    `json:"limit,omitempty" jsonschema:"Categories per page (default: API maximum)"`
	All   bool   `json:"all,omitempty" jsonschema:"Follow every continuation (default: false)"`

	Cursor *Cursor `json:"cursor,omitempty" jsonschema:"Continuation cursor from a previous result; returns the page after it"`
}

// GetBacklinksArgs contains parameters for listing pages linking to an article
type GetBacklinksArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
	Limit int    `json:"limit,omitempty" jsonschema:"Backlinks per page (default: API maximum)"`
	All   bool   `json:"all,omitempty" jsonschema:"Follow every continuation (default: false)"`

	Cursor *Cursor `json:"cursor,omitempty" jsonschema:"Continuation cursor from a previous result; returns the page after it"`
}

// GetCoordinatesArgs contains parameters for a coordinate lookup
type GetCoordinatesArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// GetCoordinatesResult is the result of a coordinate lookup
type GetCoordinatesResult struct {
	Title       string       `json:"title"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Found       bool         `json:"found"`
	Message     string       `json:"message,omitempty"`
}

// GetInfoboxArgs contains parameters for infobox extraction
type GetInfoboxArgs struct {
	Title string `json:"title" jsonschema:"Article title"`
}

// GetInfoboxResult is the parsed infobox of a page
type GetInfoboxResult struct {
	Title  string            `json:"title"`
	Fields map[string]string `json:"fields"`
	Count  int               `json:"count"`
}
