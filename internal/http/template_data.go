package httpx

// TemplateData is the common shape passed to page templates. Handlers build it
// through TemplateDataBuilder so every page carries the layout fields the
// base templates expect.
type TemplateData map[string]interface{}

// TemplateDataBuilder builds template data maps with a fluent API.
type TemplateDataBuilder struct {
	data TemplateData
}

// NewTemplateData creates a builder seeded with the base page data.
func NewTemplateData(base TemplateData) *TemplateDataBuilder {
	data := make(TemplateData, len(base)+4)
	for k, v := range base {
		data[k] = v
	}
	return &TemplateDataBuilder{data: data}
}

// With sets an arbitrary key.
func (b *TemplateDataBuilder) With(key string, value interface{}) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// WithError sets a page-level error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = msg
	return b
}

// WithNotice sets an informational notice that is not an error.
func (b *TemplateDataBuilder) WithNotice(msg string) *TemplateDataBuilder {
	b.data["Notice"] = msg
	return b
}

// WithFieldErrors sets per-field validation errors keyed by field name.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["FieldErrors"] = errs
	}
	return b
}

// WithFormData preserves submitted form values for re-rendering.
func (b *TemplateDataBuilder) WithFormData(form interface{}) *TemplateDataBuilder {
	b.data["FormData"] = form
	return b
}

// Build returns the accumulated data map.
func (b *TemplateDataBuilder) Build() TemplateData {
	return b.data
}
