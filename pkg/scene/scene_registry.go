package scene

import (
	"errors"
	"fmt"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Builder creates a scene from options
type Builder func(options Options) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string  // Name used to select the scene
	Name        string  // Display name
	Description string
	Build       Builder
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Spheres of every material with a hollow glass sphere",
		Build:       NewDefaultScene,
	},
	{
		ID:          "materials",
		Name:        "Materials",
		Description: "Diffuse, hollow glass and metal spheres side by side",
		Build:       NewMaterialsScene,
	},
	{
		ID:          "random",
		Name:        "Random Spheres",
		Description: "Hundreds of small random spheres around three large ones",
		Build:       NewRandomScene,
	},
}

// ListScenes returns every built-in scene in display order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	return scenes
}

// Build creates the built-in scene with the given id
func Build(id string, options Options) (*Scene, error) {
	for _, info := range builtInScenes {
		if info.ID == id {
			s, err := info.Build(options)
			if err != nil {
				return nil, fmt.Errorf("scene: building %q: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}
