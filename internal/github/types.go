package github

// Owner identifies the account a repository belongs to.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repo is an immutable snapshot of a searchable repository.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description,omitempty"`
	StargazersCount int    `json:"stargazers_count"`
	Owner           Owner  `json:"owner"`
}

// SearchResult is a single page of search matches.
type SearchResult struct {
	TotalCount int    `json:"total_count"`
	Items      []Repo `json:"items"`
}
