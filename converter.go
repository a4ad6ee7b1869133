package podscribe

// Converter transforms HTML markup into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
