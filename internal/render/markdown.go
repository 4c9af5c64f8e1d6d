package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/diogo/goalchat/internal/config"
)

// MarkdownOptions configures glamour rendering of assistant replies
type MarkdownOptions struct {
	Width int
	// Style is a glamour standard style ("dark", "light", "notty") or a JSON path
	Style string
}

// DefaultMarkdownOptions returns the default configuration
func DefaultMarkdownOptions() MarkdownOptions {
	return MarkdownOptions{
		Width: 80,
		Style: "dark",
	}
}

// MarkdownOptionsFromConfig builds options from the user configuration
func MarkdownOptionsFromConfig(cfg config.MarkdownConfig, width int) MarkdownOptions {
	opts := DefaultMarkdownOptions()
	if cfg.Style != "" {
		opts.Style = cfg.Style
	}
	if width > 0 {
		opts.Width = width
	}
	return opts
}

// rendererPool reuses glamour renderers per option set.
// glamour.TermRenderer is not safe for concurrent Render calls.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[string]*sync.Pool),
}

func cacheKey(opts MarkdownOptions) string {
	return fmt.Sprintf("%s:%d", opts.Style, opts.Width)
}

func (p *rendererPool) getPool(opts MarkdownOptions) *sync.Pool {
	key := cacheKey(opts)

	p.mu.RLock()
	if pool, ok := p.pools[key]; ok {
		p.mu.RUnlock()
		return pool
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[key]; ok {
		return pool
	}

	pool := &sync.Pool{
		New: func() interface{} {
			renderer, err := createRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[key] = pool
	return pool
}

func (p *rendererPool) get(opts MarkdownOptions) (*glamour.TermRenderer, error) {
	renderer := p.getPool(opts).Get()
	if renderer == nil {
		return createRenderer(opts)
	}
	return renderer.(*glamour.TermRenderer), nil
}

func (p *rendererPool) put(opts MarkdownOptions, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.getPool(opts).Put(renderer)
}

func createRenderer(opts MarkdownOptions) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithPreservedNewLines(),
		glamour.WithEmoji(),
	}
	switch opts.Style {
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	default:
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}
	return glamour.NewTermRenderer(rendererOpts...)
}

// Markdown renders content as full markdown for terminal display
func Markdown(content string, opts MarkdownOptions) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// ClearCache drops all pooled renderers
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[string]*sync.Pool)
	globalPool.mu.Unlock()
}

// CacheSize returns the number of unique pool configurations
func CacheSize() int {
	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	return len(globalPool.pools)
}
