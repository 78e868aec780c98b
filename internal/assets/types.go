package assets

// Category classifies an asset file by extension.
type Category string

const (
	CategoryScene     Category = "Scene"
	CategoryPrefab    Category = "Prefab"
	CategoryMaterial  Category = "Material"
	CategoryTexture   Category = "Texture"
	CategoryAudio     Category = "Audio"
	CategoryModel     Category = "Model"
	CategoryShader    Category = "Shader"
	CategoryAnimation Category = "Animation"
	CategoryData      Category = "Data"
	CategoryOther     Category = "Other"
)

// AssetRecord is one non-source project file plus what its sidecar metadata
// says about it.
type AssetRecord struct {
	Path         string   `json:"path"`
	Category     Category `json:"category"`
	SizeBytes    int64    `json:"size_bytes"`
	GUID         string   `json:"guid,omitempty"`         // From the .meta sidecar, "" if absent
	Dependencies []string `json:"dependencies,omitempty"` // GUIDs referenced by this asset
	RefCount     int      `json:"ref_count"`              // Incoming references from other assets
	Unused       bool     `json:"unused"`
}

// Warning records an asset whose metadata could not be parsed. The asset
// still gets a record with empty dependencies; the scan never aborts.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
