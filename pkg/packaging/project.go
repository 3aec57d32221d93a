package packaging

import (
	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Metadata describes the distribution
type Metadata struct {
	Name         string
	Version      string
	Description  string
	License      string
	Requirements []string
}

type pyproject struct {
	BuildSystem buildSystem `toml:"build-system"`
	Project     project     `toml:"project"`
	Tool        tool        `toml:"tool"`
}

type buildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

type project struct {
	Name         string          `toml:"name"`
	Version      string          `toml:"version"`
	Description  string          `toml:"description,omitempty"`
	License      *projectLicense `toml:"license,omitempty"`
	Dependencies []string        `toml:"dependencies"`
}

type projectLicense struct {
	Text string `toml:"text"`
}

type tool struct {
	Setuptools setuptools `toml:"setuptools"`
}

type setuptools struct {
	IncludePackageData bool                `toml:"include-package-data"`
	ZipSafe            bool                `toml:"zip-safe"`
	Packages           packages            `toml:"packages"`
	PackageData        map[string][]string `toml:"package-data,omitempty"`
}

type packages struct {
	Find packagesFind `toml:"find"`
}

type packagesFind struct {
	Where []string `toml:"where"`
}

// ProjectContent renders pyproject.toml for meta. packageData lists the
// assets shipped inside the package, relative to its directory.
func ProjectContent(meta Metadata, packageData []string) ([]byte, error) {
	doc := pyproject{
		BuildSystem: buildSystem{
			Requires:     []string{"setuptools>=61", "wheel", "Cython"},
			BuildBackend: "setuptools.build_meta",
		},
		Project: project{
			Name:         meta.Name,
			Version:      meta.Version,
			Description:  meta.Description,
			Dependencies: meta.Requirements,
		},
		Tool: tool{Setuptools: setuptools{
			IncludePackageData: true,
			Packages:           packages{Find: packagesFind{Where: []string{"."}}},
		}},
	}
	if doc.Project.Dependencies == nil {
		doc.Project.Dependencies = []string{}
	}
	if meta.License != "" {
		doc.Project.License = &projectLicense{Text: meta.License}
	}
	if len(packageData) > 0 {
		doc.Tool.Setuptools.PackageData = map[string][]string{meta.Name: packageData}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPackage, "failed to render project file")
	}
	return data, nil
}

// WriteProject renders and writes pyproject.toml to path
func WriteProject(fsys types.FS, path string, meta Metadata, packageData []string) error {
	data, err := ProjectContent(meta, packageData)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
