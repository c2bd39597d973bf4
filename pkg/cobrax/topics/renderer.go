package topics

// Renderer formats topic content for the terminal. Format is the topic
// file's extension, dot included.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
