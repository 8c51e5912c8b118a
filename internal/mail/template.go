package mail

import (
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
)

// Renderer personalizes campaign content with liquid templates. Parsed
// templates are cached by source, so a campaign body is parsed once per
// dispatch rather than once per recipient.
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // template source -> *liquid.Template
}

// NewRenderer creates a renderer with a default liquid engine.
func NewRenderer() *Renderer {
	return &Renderer{engine: liquid.NewEngine()}
}

// legacyTokens maps square-bracket placeholders, still common in imported
// campaign content, onto liquid variables.
var legacyTokens = strings.NewReplacer(
	"[Name]", "{{ name }}",
	"[NAME]", "{{ name }}",
	"[Email]", "{{ email }}",
	"[EMAIL]", "{{ email }}",
	"[Company]", "{{ company }}",
	"[COMPANY]", "{{ company }}",
)

// Render renders the template source against the given bindings.
func (r *Renderer) Render(source string, bindings map[string]any) (string, error) {
	if source == "" {
		return "", nil
	}
	source = legacyTokens.Replace(source)

	if cached, ok := r.cache.Load(source); ok {
		return cached.(*liquid.Template).RenderString(bindings)
	}

	tpl, err := r.engine.ParseString(source)
	if err != nil {
		return "", err
	}
	r.cache.Store(source, tpl)
	return tpl.RenderString(bindings)
}

// ContactBindings builds the personalization context for one recipient.
// A contact without a display name gets the "there" filler, so greetings
// like "Hi {{ name }}" always read naturally.
func ContactBindings(c domain.Contact) map[string]any {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "there"
	}
	return map[string]any{
		"name":    name,
		"email":   c.Email,
		"company": c.Company,
	}
}
