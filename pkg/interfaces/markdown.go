package interfaces

// MarkdownRenderer converts Markdown source into HTML for editor previews.
type MarkdownRenderer interface {
	Render(source []byte) ([]byte, error)
}
