// Package assets provides the page shells and stylesheets used when
// compiled posts are also exported as HTML.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when an asset is not found there, so a custom directory
// only needs the files it overrides.
//
// # Directory Structure
//
// Assets are organized by type, both named after the theme:
//
//	{basePath}/
//	├── styles/
//	│   └── {theme}.css      # Stylesheet placed in <style>
//	└── pages/
//	    └── {theme}.html     # html/template page shell
//
// Page shells receive {{.Title}}, {{.CSS}} and {{.Body}}.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
