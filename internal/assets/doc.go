// Package assets provides CSS themes and the HTML page template used to
// render decks for PDF capture. Assets can be loaded from embedded files or
// a custom filesystem path.
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
// AssetResolver is the loader used by the generator. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a user directory may override a single file.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page theme (e.g., midnight.css)
//	└── templates/
//	    └── {name}/
//	        └── deck.html        # html/template for the whole deck
//
// A deck template receives the page view built by the pipeline package and
// must define a "runs" template for inline emphasis; see templates/default.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
