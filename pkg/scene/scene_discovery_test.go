package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-pair", "Mirror Pair"},
		{"sphere_grid", "Sphere Grid"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneFileMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete_metadata.json",
			content: `{"name": "glass-row", "description": "Spheres in a row", "group": "Experiments", "spheres": [], "lights": []}`,
			expected: SceneInfo{
				ID:          "complete_metadata.json",
				DisplayName: "Glass Row",
				Description: "Spheres in a row",
				Group:       "Experiments",
				Type:        "file",
			},
		},
		{
			name:    "no_metadata.json",
			content: `{"spheres": [], "lights": []}`,
			expected: SceneInfo{
				ID:          "no_metadata.json",
				DisplayName: "No Metadata", // From filename
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseSceneFileMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneFileMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneFileMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b-scene.json", `{"spheres": [], "lights": []}`)
	writeSceneFile(t, dir, "a-scene.json", `{"spheres": [], "lights": []}`)
	writeSceneFile(t, dir, "broken.json", `{not json`)
	writeSceneFile(t, dir, "notes.txt", `ignored`)

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}

	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].ID != "a-scene.json" || scenes[1].ID != "b-scene.json" {
		t.Errorf("Scenes not sorted by display name: %+v", scenes)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "mine.json", `{"name": "mine", "spheres": [], "lights": []}`)
	writeSceneFile(t, dir, "lab.json", `{"group": "Alpha Lab", "spheres": [], "lights": []}`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d: %+v", len(response.Groups), response.Groups)
	}

	// Built-in first, then alphabetical
	expectedGroups := []string{"Built-in Scenes", "Alpha Lab", "Scene Files"}
	for i, name := range expectedGroups {
		if response.Groups[i].Name != name {
			t.Errorf("Group %d = %q, want %q", i, response.Groups[i].Name, name)
		}
	}

	builtIn := response.Groups[0].Scenes
	if len(builtIn) != len(builtins) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn), len(builtins))
	}
	for _, info := range builtIn {
		if info.Type != "builtin" {
			t.Errorf("Scene %s has type %q", info.ID, info.Type)
		}
		if _, err := LookupBuiltin(info.ID); err != nil {
			t.Errorf("Listed scene %s cannot be looked up: %v", info.ID, err)
		}
	}
}

func TestRepositorySceneFilesLoad(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	for _, info := range scenes {
		desc, err := LoadSceneFile(info.FilePath)
		if err != nil {
			t.Errorf("Failed to load %s: %v", info.FilePath, err)
			continue
		}
		if _, err := desc.Build(DefaultLimits()); err != nil {
			t.Errorf("Scene %s does not validate: %v", info.FilePath, err)
		}
	}
}
