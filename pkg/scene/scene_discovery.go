package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a builtin scene
type SceneInfo struct {
	ID          string // Unique identifier used in configuration files
	Name        string // Display name
	Description string
	build       func(aspect float64) (*Scene, error)
}

var builtinScenes = map[string]SceneInfo{
	"twospheres": {
		ID:          "twospheres",
		Name:        "Two Spheres",
		Description: "Two diffuse spheres on a floor under a quad light",
		build:       NewTwoSpheresScene,
	},
	"cornell": {
		ID:          "cornell",
		Name:        "Cornell Box",
		Description: "Cornell box with a mirror sphere and a glass sphere",
		build:       NewCornellScene,
	},
	"caustic": {
		ID:          "caustic",
		Name:        "Caustic Glass",
		Description: "Glass sphere focusing a small light onto a diffuse floor",
		build:       NewCausticScene,
	},
}

// ListScenes returns the builtin scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, info := range builtinScenes {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Builtin constructs the builtin scene id for an image with the given aspect ratio
func Builtin(id string, aspect float64) (*Scene, error) {
	info, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("scene: unknown builtin scene %q", id)
	}
	return info.build(aspect)
}
