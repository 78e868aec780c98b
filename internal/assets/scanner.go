// Package assets enumerates a Unity project's non-source files, reads their
// .meta sidecars for GUIDs, and follows guid references through serialized
// text assets to find what nothing points at.
package assets

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// metaSidecar is the slice of a Unity .meta file we care about. Sidecars
// are full YAML documents; everything beyond the guid is ignored.
type metaSidecar struct {
	GUID string `yaml:"guid"`
}

// guidRe matches serialized object references inside Unity's text-format
// assets (scenes, prefabs, materials).
var guidRe = regexp.MustCompile(`guid:\s*([0-9a-fA-F]{32})`)

// categoryByExt is the fixed classification table.
var categoryByExt = map[string]Category{
	".unity":       CategoryScene,
	".prefab":      CategoryPrefab,
	".mat":         CategoryMaterial,
	".png":         CategoryTexture,
	".jpg":         CategoryTexture,
	".jpeg":        CategoryTexture,
	".tga":         CategoryTexture,
	".psd":         CategoryTexture,
	".exr":         CategoryTexture,
	".wav":         CategoryAudio,
	".mp3":         CategoryAudio,
	".ogg":         CategoryAudio,
	".fbx":         CategoryModel,
	".obj":         CategoryModel,
	".blend":       CategoryModel,
	".shader":      CategoryShader,
	".shadergraph": CategoryShader,
	".cginc":       CategoryShader,
	".anim":        CategoryAnimation,
	".controller":  CategoryAnimation,
	".asset":       CategoryData,
	".json":        CategoryData,
	".xml":         CategoryData,
	".csv":         CategoryData,
}

// textAssetExts are the serialized YAML formats worth scanning for guid
// references. Binary assets (textures, audio) reference nothing.
var textAssetExts = map[string]bool{
	".unity":      true,
	".prefab":     true,
	".mat":        true,
	".asset":      true,
	".anim":       true,
	".controller": true,
}

// Scanner builds AssetRecord entries for the asset half of an analysis run.
type Scanner struct {
	root string
}

// NewScanner creates an asset scanner rooted at root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Scan classifies every asset path, parses sidecar metadata, counts
// incoming guid references, and marks unused assets. Cancellation is
// checked at each file boundary; per-file problems become warnings.
func (s *Scanner) Scan(ctx context.Context, assetPaths []string) ([]AssetRecord, []Warning, error) {
	records := make([]AssetRecord, 0, len(assetPaths))
	var warnings []Warning

	for _, rel := range assetPaths {
		select {
		case <-ctx.Done():
			return records, warnings, ctx.Err()
		default:
		}

		rec := AssetRecord{
			Path:     rel,
			Category: Classify(rel),
		}
		full := filepath.Join(s.root, filepath.FromSlash(rel))

		if info, err := os.Stat(full); err == nil {
			rec.SizeBytes = info.Size()
		} else {
			warnings = append(warnings, Warning{Path: rel, Message: err.Error()})
		}

		guid, warn := readSidecarGUID(full)
		if warn != "" {
			warnings = append(warnings, Warning{Path: rel, Message: warn})
		}
		rec.GUID = guid

		if textAssetExts[strings.ToLower(filepath.Ext(rel))] {
			deps, warn := readGUIDReferences(full, guid)
			if warn != "" {
				warnings = append(warnings, Warning{Path: rel, Message: warn})
			}
			rec.Dependencies = deps
		}

		records = append(records, rec)
	}

	markUnused(records)
	return records, warnings, nil
}

// Classify maps an asset path to its category.
func Classify(path string) Category {
	if c, ok := categoryByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return CategoryOther
}

// readSidecarGUID parses the .meta file next to an asset. A missing sidecar
// is normal (projects outside Unity's Assets folder); a malformed one is a
// warning.
func readSidecarGUID(assetPath string) (string, string) {
	data, err := os.ReadFile(assetPath + ".meta")
	if err != nil {
		if os.IsNotExist(err) {
			return "", ""
		}
		return "", "sidecar unreadable: " + err.Error()
	}
	var meta metaSidecar
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return "", "sidecar not valid YAML: " + err.Error()
	}
	if meta.GUID == "" {
		return "", "sidecar has no guid"
	}
	// Reference matching is case-insensitive on the lowercased form.
	return strings.ToLower(meta.GUID), ""
}

// readGUIDReferences scans a serialized text asset for guid references,
// excluding the asset's own GUID.
func readGUIDReferences(assetPath, ownGUID string) ([]string, string) {
	data, err := os.ReadFile(assetPath)
	if err != nil {
		return nil, "asset unreadable: " + err.Error()
	}
	matches := guidRe.FindAllStringSubmatch(string(data), -1)
	if len(matches) == 0 {
		return nil, ""
	}
	seen := make(map[string]bool, len(matches))
	var deps []string
	for _, m := range matches {
		guid := strings.ToLower(m[1])
		if guid == ownGUID || seen[guid] {
			continue
		}
		seen[guid] = true
		deps = append(deps, guid)
	}
	return deps, ""
}

// markUnused sets RefCount and the unused flag. An asset is unused when
// nothing else references its GUID. Scenes are roots, not leaves, and
// assets without a GUID cannot be referenced, so neither is ever flagged.
func markUnused(records []AssetRecord) {
	incoming := make(map[string]int)
	for i := range records {
		for _, dep := range records[i].Dependencies {
			incoming[dep]++
		}
	}
	for i := range records {
		r := &records[i]
		if r.GUID == "" {
			continue
		}
		r.RefCount = incoming[r.GUID]
		if r.RefCount == 0 && r.Category != CategoryScene {
			r.Unused = true
		}
	}
}
