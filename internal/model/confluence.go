package model

// ConfluencePage represents a Confluence content response. Space, Version
// and Body are only populated when the matching expand parameter is sent.
type ConfluencePage struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Space   *ConfluenceSpace   `json:"space"`
	Version *ConfluenceVersion `json:"version"`
	Body    ConfluenceBody     `json:"body"`
	Links   ConfluenceLinks    `json:"_links"`
}

// ConfluenceBody holds the page body in storage format
type ConfluenceBody struct {
	Storage ConfluenceStorage `json:"storage"`
}

// ConfluenceStorage is the raw storage-format XHTML of a page
type ConfluenceStorage struct {
	Value string `json:"value"`
}

// ConfluenceVersion describes the current version of a page
type ConfluenceVersion struct {
	Number int             `json:"number"`
	When   string          `json:"when"`
	By     *ConfluenceUser `json:"by"`
}

// ConfluenceUser represents a Confluence user
type ConfluenceUser struct {
	DisplayName string `json:"displayName"`
}

// ConfluenceLinks holds the subset of the _links object the tools surface
type ConfluenceLinks struct {
	Base  string `json:"base"`
	WebUI string `json:"webui"`
}

// ConfluenceSearchResponse represents the response from a CQL content search
type ConfluenceSearchResponse struct {
	Results []ConfluencePage `json:"results"`
	Size    int              `json:"size"`
}

// ConfluenceSpace represents a Confluence space response
type ConfluenceSpace struct {
	Key         string                      `json:"key"`
	Name        string                      `json:"name"`
	Type        string                      `json:"type"`
	Description *ConfluenceSpaceDescription `json:"description"`
	Homepage    *ConfluenceHomepage         `json:"homepage"`
	Links       ConfluenceLinks             `json:"_links"`
}

// ConfluenceSpaceDescription holds the plain-text space description
type ConfluenceSpaceDescription struct {
	Plain ConfluencePlainText `json:"plain"`
}

// ConfluencePlainText is a plain-text representation value
type ConfluencePlainText struct {
	Value string `json:"value"`
}

// ConfluenceHomepage is the homepage reference of a space
type ConfluenceHomepage struct {
	Title string `json:"title"`
}
