package model

import "encoding/json"

// JiraIssue represents a Jira issue response
type JiraIssue struct {
	Key    string     `json:"key"`
	Self   string     `json:"self"`
	Fields JiraFields `json:"fields"`
}

// JiraFields represents the fields in a Jira issue. Pointer fields may be
// null in the upstream payload (unassigned issues, issues without priority).
type JiraFields struct {
	Summary     string          `json:"summary"`
	Status      JiraName        `json:"status"`
	IssueType   JiraName        `json:"issuetype"`
	Priority    *JiraName       `json:"priority"`
	Assignee    *JiraUser       `json:"assignee"`
	Reporter    *JiraUser       `json:"reporter"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
	Description json.RawMessage `json:"description"` // Atlassian Document Format
}

// JiraName is a named entity (status, issue type, priority)
type JiraName struct {
	Name string `json:"name"`
}

// JiraUser represents a Jira user
type JiraUser struct {
	DisplayName string `json:"displayName"`
}

// JiraSearchResponse represents the response from a Jira search
type JiraSearchResponse struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []JiraIssue `json:"issues"`
}

// JiraProject represents a Jira project response
type JiraProject struct {
	Key            string    `json:"key"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ProjectTypeKey string    `json:"projectTypeKey"`
	Lead           *JiraUser `json:"lead"`
	Self           string    `json:"self"`
}
