package assets

import "errors"

// DefaultTheme names the built-in page shell and stylesheet.
const DefaultTheme = "default"

// AssetLoader defines the contract for loading export themes.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadPage loads a page shell by name (without .html extension).
	// Returns ErrPageNotFound if the page doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPage(name string) (string, error)
}

// Theme is a loaded page shell and its stylesheet.
type Theme struct {
	Name string
	Page string
	CSS  string
}

// LoadTheme loads the stylesheet and page shell named name.
// A theme that only ships a stylesheet uses the default page shell.
func LoadTheme(loader AssetLoader, name string) (*Theme, error) {
	if name == "" {
		name = DefaultTheme
	}

	css, err := loader.LoadStyle(name)
	if err != nil {
		return nil, err
	}

	page, err := loader.LoadPage(name)
	if errors.Is(err, ErrPageNotFound) && name != DefaultTheme {
		page, err = loader.LoadPage(DefaultTheme)
	}
	if err != nil {
		return nil, err
	}

	return &Theme{Name: name, Page: page, CSS: css}, nil
}
