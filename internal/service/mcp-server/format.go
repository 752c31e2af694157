package mcpserver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"atlassian_mcp/internal/model"
)

// formatJiraIssue renders a single issue as a readable markdown block.
// Optional fields render with explicit fallbacks instead of failing.
func formatJiraIssue(issue *model.JiraIssue) string {
	key := orDefault(issue.Key, "Unknown")
	summary := orDefault(issue.Fields.Summary, "No summary")
	status := orDefault(issue.Fields.Status.Name, "Unknown")
	issueType := orDefault(issue.Fields.IssueType.Name, "Unknown")

	priority := "Unknown"
	if issue.Fields.Priority != nil {
		priority = orDefault(issue.Fields.Priority.Name, "Unknown")
	}

	description := extractADFText(issue.Fields.Description)
	if description == "" {
		description = "No description"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Jira Issue: %s**\n\n", key)
	fmt.Fprintf(&b, "**Summary:** %s\n", summary)
	fmt.Fprintf(&b, "**Status:** %s\n", status)
	fmt.Fprintf(&b, "**Type:** %s\n", issueType)
	fmt.Fprintf(&b, "**Priority:** %s\n", priority)
	fmt.Fprintf(&b, "**Assignee:** %s\n", assigneeName(issue.Fields.Assignee))
	fmt.Fprintf(&b, "**Reporter:** %s\n", userName(issue.Fields.Reporter))
	fmt.Fprintf(&b, "**Created:** %s\n", orDefault(issue.Fields.Created, "Unknown"))
	fmt.Fprintf(&b, "**Updated:** %s\n", orDefault(issue.Fields.Updated, "Unknown"))
	fmt.Fprintf(&b, "\n**Description:**\n%s\n", description)
	fmt.Fprintf(&b, "\n**Issue URL:** %s\n", issueBrowseURL(issue))
	return b.String()
}

// formatJiraSearchResults renders a JQL result list, clamped to limit
// entries even if upstream returned more.
func formatJiraSearchResults(result *model.JiraSearchResponse, limit int) string {
	issues := result.Issues
	if len(issues) == 0 {
		return "No issues found matching the search criteria."
	}
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Found %d of %d Jira issues:**\n\n", len(issues), result.Total)
	for _, issue := range issues {
		fmt.Fprintf(&b, "• **%s**: %s\n", orDefault(issue.Key, "Unknown"), orDefault(issue.Fields.Summary, "No summary"))
		fmt.Fprintf(&b, "  Status: %s | Assignee: %s\n\n",
			orDefault(issue.Fields.Status.Name, "Unknown"), assigneeName(issue.Fields.Assignee))
	}
	return b.String()
}

func formatJiraProject(project *model.JiraProject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Jira Project: %s**\n\n", orDefault(project.Key, "Unknown"))
	fmt.Fprintf(&b, "**Name:** %s\n", orDefault(project.Name, "Unknown"))
	fmt.Fprintf(&b, "**Description:** %s\n", orDefault(project.Description, "No description"))
	fmt.Fprintf(&b, "**Project Type:** %s\n", orDefault(project.ProjectTypeKey, "Unknown"))
	fmt.Fprintf(&b, "**Lead:** %s\n", userName(project.Lead))
	fmt.Fprintf(&b, "**URL:** %s\n", orDefault(project.Self, "Unknown"))
	return b.String()
}

// formatConfluencePage renders a page with its storage body converted to
// readable text.
func formatConfluencePage(page *model.ConfluencePage) string {
	spaceName, spaceKey := "Unknown", "Unknown"
	if page.Space != nil {
		spaceName = orDefault(page.Space.Name, "Unknown")
		spaceKey = orDefault(page.Space.Key, "Unknown")
	}

	versionNumber, lastUpdated, updatedBy := "Unknown", "Unknown", "Unknown"
	if page.Version != nil {
		if page.Version.Number > 0 {
			versionNumber = fmt.Sprintf("%d", page.Version.Number)
		}
		lastUpdated = orDefault(page.Version.When, "Unknown")
		updatedBy = confluenceUserName(page.Version.By)
	}

	content := cleanStorageHTML(page.Body.Storage.Value)
	if content == "" {
		content = "No content"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Confluence Page: %s**\n\n", orDefault(page.Title, "No title"))
	fmt.Fprintf(&b, "**Space:** %s (%s)\n", spaceName, spaceKey)
	fmt.Fprintf(&b, "**Page ID:** %s\n", orDefault(page.ID, "Unknown"))
	fmt.Fprintf(&b, "**Version:** %s\n", versionNumber)
	fmt.Fprintf(&b, "**Last Updated:** %s by %s\n", lastUpdated, updatedBy)
	fmt.Fprintf(&b, "\n**Content:**\n%s\n", content)
	fmt.Fprintf(&b, "\n**Page URL:** %s\n", pageURL(page))
	return b.String()
}

// formatConfluenceSearchResults renders a CQL result list, clamped to limit
// entries even if upstream returned more.
func formatConfluenceSearchResults(result *model.ConfluenceSearchResponse, limit int) string {
	pages := result.Results
	if len(pages) == 0 {
		return "No Confluence pages found matching the search criteria."
	}
	if limit > 0 && len(pages) > limit {
		pages = pages[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Found %d Confluence pages:**\n\n", len(pages))
	for _, page := range pages {
		spaceName, spaceKey := "Unknown", "Unknown"
		if page.Space != nil {
			spaceName = orDefault(page.Space.Name, "Unknown")
			spaceKey = orDefault(page.Space.Key, "Unknown")
		}
		fmt.Fprintf(&b, "• **%s** (ID: %s)\n", orDefault(page.Title, "No title"), orDefault(page.ID, "Unknown"))
		fmt.Fprintf(&b, "  Space: %s (%s)\n\n", spaceName, spaceKey)
	}
	return b.String()
}

func formatConfluenceSpace(space *model.ConfluenceSpace) string {
	description := "No description"
	if space.Description != nil && space.Description.Plain.Value != "" {
		description = space.Description.Plain.Value
	}

	homepage := "No homepage"
	if space.Homepage != nil && space.Homepage.Title != "" {
		homepage = space.Homepage.Title
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Confluence Space: %s**\n\n", orDefault(space.Key, "Unknown"))
	fmt.Fprintf(&b, "**Name:** %s\n", orDefault(space.Name, "Unknown"))
	fmt.Fprintf(&b, "**Description:** %s\n", description)
	fmt.Fprintf(&b, "**Type:** %s\n", orDefault(space.Type, "Unknown"))
	fmt.Fprintf(&b, "**Homepage:** %s\n", homepage)
	fmt.Fprintf(&b, "**URL:** %s\n", orDefault(space.Links.WebUI, "Unknown"))
	return b.String()
}

// issueBrowseURL derives the browse link from the issue's self URL.
func issueBrowseURL(issue *model.JiraIssue) string {
	if issue.Self != "" {
		if base, _, ok := strings.Cut(issue.Self, "/rest/"); ok {
			return base + "/browse/" + issue.Key
		}
	}
	return "https://unknown.atlassian.net/browse/" + issue.Key
}

func pageURL(page *model.ConfluencePage) string {
	if page.Links.Base != "" && page.Links.WebUI != "" {
		return page.Links.Base + page.Links.WebUI
	}
	spaceKey := "Unknown"
	if page.Space != nil && page.Space.Key != "" {
		spaceKey = page.Space.Key
	}
	return fmt.Sprintf("https://unknown.atlassian.net/wiki/spaces/%s/pages/%s", spaceKey, page.ID)
}

// extractADFText pulls the plain text out of an Atlassian Document Format
// payload by concatenating every text node. Unknown node shapes contribute
// nothing rather than failing.
func extractADFText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var node any
	if err := json.Unmarshal(raw, &node); err != nil {
		return ""
	}
	return strings.TrimSpace(adfText(node))
}

func adfText(node any) string {
	switch n := node.(type) {
	case map[string]any:
		if n["type"] == "text" {
			if s, ok := n["text"].(string); ok {
				return s
			}
			return ""
		}
		if content, ok := n["content"]; ok {
			return adfText(content)
		}
		return ""
	case []any:
		var b strings.Builder
		for _, item := range n {
			b.WriteString(adfText(item))
		}
		return b.String()
	case string:
		// Plain-string descriptions (API v2 style payloads)
		return n
	default:
		return ""
	}
}

var (
	reMacro     = regexp.MustCompile(`(?s)<ac:structured-macro[^>]*>.*?</ac:structured-macro>`)
	reMacroArg  = regexp.MustCompile(`(?s)<ac:parameter[^>]*>.*?</ac:parameter>`)
	reParagraph = regexp.MustCompile(`</?p>`)
	reDiv       = regexp.MustCompile(`</?div[^>]*>`)
	reSpan      = regexp.MustCompile(`</?span[^>]*>`)
	reBreak     = regexp.MustCompile(`<br\s*/?>`)
	reStrong    = regexp.MustCompile(`</?strong>`)
	reEmphasis  = regexp.MustCompile(`</?em>`)
	reHeading   = regexp.MustCompile(`</?h[1-6][^>]*>`)
	reList      = regexp.MustCompile(`</?[uo]l>`)
	reItemOpen  = regexp.MustCompile(`<li>`)
	reItemClose = regexp.MustCompile(`</li>`)
	reAnyTag    = regexp.MustCompile(`<[^>]+>`)
	reBlankRuns = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// cleanStorageHTML converts Confluence storage-format XHTML into readable
// text: macros are dropped, common block and inline tags map to plain
// markup, everything else is stripped.
func cleanStorageHTML(content string) string {
	content = reMacro.ReplaceAllString(content, "")
	content = reMacroArg.ReplaceAllString(content, "")
	content = reParagraph.ReplaceAllString(content, "\n\n")
	content = reDiv.ReplaceAllString(content, "\n")
	content = reSpan.ReplaceAllString(content, "")
	content = reBreak.ReplaceAllString(content, "\n")
	content = reStrong.ReplaceAllString(content, "**")
	content = reEmphasis.ReplaceAllString(content, "*")
	content = reHeading.ReplaceAllString(content, "\n## ")
	content = reList.ReplaceAllString(content, "\n")
	content = reItemOpen.ReplaceAllString(content, "• ")
	content = reItemClose.ReplaceAllString(content, "\n")
	content = reAnyTag.ReplaceAllString(content, "")
	content = reBlankRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func assigneeName(user *model.JiraUser) string {
	if user == nil || user.DisplayName == "" {
		return "Unassigned"
	}
	return user.DisplayName
}

func userName(user *model.JiraUser) string {
	if user == nil || user.DisplayName == "" {
		return "Unknown"
	}
	return user.DisplayName
}

func confluenceUserName(user *model.ConfluenceUser) string {
	if user == nil || user.DisplayName == "" {
		return "Unknown"
	}
	return user.DisplayName
}
