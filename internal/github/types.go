package github

// Wire shapes for the contents and pages APIs. Only the fields the
// synchronizer consumes are mapped.

type contentResponse struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

type committerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type writeRequest struct {
	Message   string           `json:"message"`
	Content   string           `json:"content"`
	SHA       string           `json:"sha,omitempty"`
	Committer committerPayload `json:"committer"`
}

type writeResponse struct {
	Content struct {
		Path string `json:"path"`
		SHA  string `json:"sha"`
	} `json:"content"`
}

type deleteRequest struct {
	Message   string           `json:"message"`
	SHA       string           `json:"sha"`
	Committer committerPayload `json:"committer"`
}

type pagesResponse struct {
	URL    string `json:"html_url"`
	Status string `json:"status"`
	Source struct {
		Branch string `json:"branch"`
		Path   string `json:"path"`
	} `json:"source"`
}

type pagesCreateRequest struct {
	Source pagesSource `json:"source"`
}

type pagesSource struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
}

type buildResponse struct {
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
