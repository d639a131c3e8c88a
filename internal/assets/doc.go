// Package assets provides theme styles and HTML templates for exported
// lead magnets. Assets can be loaded from embedded files or a custom
// directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes compiled into the binary
//	    ├── FilesystemLoader  - user themes from a directory
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {theme}.css          # Theme stylesheet (e.g., modern.css)
//	└── templates/
//	    └── {name}/
//	        ├── document.html    # Standalone document layout
//	        └── watermark.html   # Attribution footer
//
// Theme stylesheets read design colors from CSS custom properties
// (--lm-primary, --lm-text, ...) declared by the exporter, so one stylesheet
// serves every color scheme.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
