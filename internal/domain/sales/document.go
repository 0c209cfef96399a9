package sales

// Document is a stored sale exactly as the store holds it. It keeps every
// field, including ones a Record has no column for.
type Document map[string]any
