package config

// Pressfile represents the structure of the press.yaml configuration file.
type Pressfile struct {
	Version string     `yaml:"version"`
	Source  string     `yaml:"source"`
	Output  string     `yaml:"output"`
	Server  *ServerDTO `yaml:"server"`
	Watch   *WatchDTO  `yaml:"watch"`
	Tools   *ToolsDTO  `yaml:"tools"`
}

// ServerDTO configures the development server.
type ServerDTO struct {
	Host string `yaml:"host"`
	Port *int   `yaml:"port"`
	Open *bool  `yaml:"open"`
}

// WatchDTO configures the watch dispatcher.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}

// ToolsDTO overrides the external binaries.
type ToolsDTO struct {
	Sass    string `yaml:"sass"`
	OptiPNG string `yaml:"optipng"`
	CJPEG   string `yaml:"cjpeg"`
	CWebP   string `yaml:"cwebp"`
}
