package types

// WindowSize holds the preferred dimensions of an app window.
type WindowSize struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Manifest describes a dock app. Built-in apps are declared in code and
// extra apps are loaded from manifest files in the apps directory.
type Manifest struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Icon        string     `json:"icon" yaml:"icon" toml:"icon"`
	Description string     `json:"description" yaml:"description" toml:"description"`
	Category    string     `json:"category" yaml:"category" toml:"category"`
	Title       string     `json:"title,omitempty" yaml:"title" toml:"title"`
	Content     string     `json:"content,omitempty" yaml:"content" toml:"content"`
	Window      WindowSize `json:"window" yaml:"window" toml:"window"`
	Source      string     `json:"source,omitempty" yaml:"-" toml:"-"`
}

// WindowTitle returns the title for windows opened by this app.
func (m Manifest) WindowTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}
