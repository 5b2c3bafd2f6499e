package catalog

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/propsync/propsync/pkg/errors"
)

// projectFile is the marker and configuration file of a dbt project.
const projectFile = "dbt_project.yml"

// Project holds the project-level configuration needed by the rest of
// the system, resolved from dbt_project.yml.
type Project struct {
	// Path is the absolute project root directory.
	Path string

	// Name is the project name.
	Name string

	// TargetPath is where dbt writes build artifacts (default "target").
	TargetPath string

	// CompiledPath is where dbt writes compiled resource SQL.
	CompiledPath string

	// MacroPaths are the directories dbt loads macros from.
	MacroPaths []string
}

// projectYAML is the subset of dbt_project.yml this tool reads.
type projectYAML struct {
	Name       string   `yaml:"name"`
	TargetPath string   `yaml:"target-path"`
	MacroPaths []string `yaml:"macro-paths"`
}

// LoadProject locates the nearest dbt project and reads its
// configuration. With an empty projectDir the search walks up from the
// current directory; otherwise the given directory and its parents are
// searched. A missing dbt_project.yml is fatal.
func LoadProject(projectDir string) (*Project, error) {
	start := projectDir
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapIO("getwd", "", err)
		}
		start = cwd
	}

	root, err := findProjectRoot(start)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(root, projectFile))
	if err != nil {
		return nil, errors.WrapIO("read", filepath.Join(root, projectFile), err)
	}

	var cfg projectYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", projectFile, err)
	}

	targetPath := cfg.TargetPath
	if targetPath == "" {
		targetPath = "target"
	}
	macroPaths := cfg.MacroPaths
	if len(macroPaths) == 0 {
		macroPaths = []string{"macros"}
	}

	project := &Project{
		Path:         root,
		Name:         cfg.Name,
		TargetPath:   filepath.Join(root, targetPath),
		CompiledPath: filepath.Join(root, targetPath, "compiled", cfg.Name),
	}
	for _, mp := range macroPaths {
		project.MacroPaths = append(project.MacroPaths, filepath.Join(root, mp))
	}
	return project, nil
}

// findProjectRoot walks up from dir looking for dbt_project.yml.
func findProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapIO("resolve", dir, err)
	}

	for current := abs; ; {
		if _, err := os.Stat(filepath.Join(current, projectFile)); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.NewIOError("locate", projectFile,
				errors.New("no dbt_project.yml found in "+abs+" or any parent directory"))
		}
		current = parent
	}
}

// ManifestPath returns the default location of the project's manifest
// artifact, produced by dbt compile/run.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.TargetPath, "manifest.json")
}

// CompiledResourcePath returns the compiled SQL file location for a
// resource's source location.
func (p *Project) CompiledResourcePath(resourceLocation string) string {
	return filepath.Join(p.CompiledPath, resourceLocation)
}
