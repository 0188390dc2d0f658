package scene

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Registry key
	DisplayName string `json:"displayName"` // Human-readable name
	Description string `json:"description"` // One-line description
}

type registration struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtinScenes = map[string]registration{
	"cornell": {
		info:  SceneInfo{ID: "cornell", Description: "Cornell box with a metal and a glass sphere"},
		build: NewCornellScene,
	},
	"cornell-boxes": {
		info:  SceneInfo{ID: "cornell-boxes", Description: "Cornell box with a short and a tall block"},
		build: NewCornellBoxesScene,
	},
	"default": {
		info:  SceneInfo{ID: "default", Description: "Three spheres on a ground rectangle under a sky gradient"},
		build: NewDefaultScene,
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", Description: "Grid of rainbow-colored metallic spheres"},
		build: NewSphereGridScene,
	},
	"lambert": {
		info:  SceneInfo{ID: "lambert", Description: "Diffuse-only spheres, used for reproducibility checks"},
		build: NewLambertScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, r := range builtinScenes {
		info := r.info
		info.DisplayName = titleCase(info.ID)
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// New builds the named built-in scene
func New(name string) (*Scene, error) {
	r, ok := builtinScenes[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q", name)
	}
	s, err := r.build()
	if err != nil {
		return nil, errors.Wrapf(err, "building scene %q", name)
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
