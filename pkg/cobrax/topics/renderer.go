package topics

// Renderer formats topic content for display
type Renderer interface {
	Render(content string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string) string {
	return content
}
