package cache

// Keyer derives cache keys for every pipeline stage.
type Keyer interface {
	// PageKey identifies a fetched web page.
	PageKey(url string) string

	// SheetKey identifies a sheet laid out from a song with the given options.
	SheetKey(songHash string, opts SheetKeyOpts) string

	// ArtifactKey identifies one rendered output format of a sheet.
	ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string
}

// SheetKeyOpts holds the layout inputs that change a sheet.
type SheetKeyOpts struct {
	Columns   int    `json:"columns"`
	MaxWidth  int    `json:"max_width"`
	Transpose int    `json:"transpose"`
	Key       string `json:"key,omitempty"`
}

// ArtifactKeyOpts holds the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Theme    string  `json:"theme,omitempty"`
	Source   string  `json:"source,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	MaxWidth int     `json:"max_width,omitempty"`
}

// DefaultKeyer hashes key inputs under a per-stage prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PageKey returns "page:<hash(url)>".
func (DefaultKeyer) PageKey(url string) string {
	return hashKey("page", url)
}

// SheetKey returns "sheet:<hash(songHash, opts)>".
func (DefaultKeyer) SheetKey(songHash string, opts SheetKeyOpts) string {
	return hashKey("sheet", songHash, opts)
}

// ArtifactKey returns "artifact:<hash(sheetHash, opts)>".
func (DefaultKeyer) ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sheetHash, opts)
}
