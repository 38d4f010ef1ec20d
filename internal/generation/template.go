package generation

// TemplateType names a sampling preset.
type TemplateType string

const (
	TemplateDetailed TemplateType = "detailed"
	TemplateQuick    TemplateType = "quick"
	TemplateCreative TemplateType = "creative"
)

// Template is an immutable set of sampling parameters for one request.
type Template struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
	Model           string
}

// Templates is the fixed preset table. It is built once and only read afterwards.
type Templates map[TemplateType]Template

// NewTemplates builds the preset table for the given model id.
func NewTemplates(model string) Templates {
	return Templates{
		// Longer output for sessions with a lot of content
		TemplateDetailed: {Temperature: 0.7, TopK: 40, TopP: 0.95, MaxOutputTokens: 800, Model: model},
		TemplateQuick:    {Temperature: 0.3, TopK: 20, TopP: 0.8, MaxOutputTokens: 400, Model: model},
		TemplateCreative: {Temperature: 0.9, TopK: 60, TopP: 0.98, MaxOutputTokens: 600, Model: model},
	}
}

// Resolve returns the template for t, falling back to detailed when t is unknown.
func (ts Templates) Resolve(t TemplateType) (TemplateType, Template) {
	if tmpl, ok := ts[t]; ok {
		return t, tmpl
	}
	return TemplateDetailed, ts[TemplateDetailed]
}

// SelectTemplate picks a preset from the session duration in minutes.
func SelectTemplate(durationMinutes int) TemplateType {
	switch {
	case durationMinutes > 60:
		return TemplateDetailed
	case durationMinutes <= 30:
		return TemplateQuick
	default:
		return TemplateCreative
	}
}
