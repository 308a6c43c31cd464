package catalog

import (
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

// JQ is the jq command-line JSON processor.
func JQ() *registry.Template {
	return &registry.Template{
		Metadata: registry.Metadata{
			Key:         "jq",
			Label:       "jq",
			Description: "Command-line JSON processor",
			Icon:        "DocumentDuplicateIcon",
			Color:       grayColor,
			IconColor:   grayIcon,
			Keywords:    []string{"jq", "json", "processor", "command-line"},
		},
		Name:        "jq",
		URL:         "https://jqlang.github.io/jq/",
		Description: "Lightweight and flexible command-line JSON processor",
		Binaries: &registry.TemplateMethod{Arguments: schema.Arguments{
			{
				Name:        "version",
				Type:        schema.ArgDropdown,
				Required:    true,
				Options:     []string{"1.7.1", "1.7", "1.6"},
				Description: "jq version to install",
			},
		}},
		Source: &registry.TemplateMethod{Arguments: schema.Arguments{
			{
				Name:        "version",
				Type:        schema.ArgText,
				Required:    true,
				Description: "jq version to build from source",
			},
		}},
	}
}

// Miniconda installs a conda distribution and optional packages.
func Miniconda() *registry.Template {
	return &registry.Template{
		Metadata: registry.Metadata{
			Key:         "miniconda",
			Label:       "Miniconda",
			Description: "Minimal conda installer with optional environment packages",
			Icon:        "CubeIcon",
			Color:       greenColor,
			IconColor:   greenIcon,
			Keywords:    []string{"conda", "python", "miniconda", "environment"},
		},
		Name:        "miniconda",
		URL:         "https://docs.conda.io/en/latest/miniconda.html",
		Description: "Install Miniconda and create or update a conda environment",
		Binaries: &registry.TemplateMethod{Arguments: schema.Arguments{
			{
				Name:        "version",
				Type:        schema.ArgText,
				Required:    true,
				Default:     "latest",
				Description: "Miniconda version to install",
			},
			{
				Name:        "conda_install",
				Type:        schema.ArgText,
				Description: "Packages to install with conda, space separated",
			},
			{
				Name:        "pip_install",
				Type:        schema.ArgText,
				Description: "Packages to install with pip, space separated",
			},
			{
				Name:        "env_name",
				Type:        schema.ArgText,
				Default:     "base",
				Description: "Name of the conda environment",
			},
		}},
	}
}

// Dcm2niix converts DICOM series to NIfTI.
func Dcm2niix() *registry.Template {
	return &registry.Template{
		Metadata: registry.Metadata{
			Key:         "dcm2niix",
			Label:       "dcm2niix",
			Description: "DICOM to NIfTI converter",
			Icon:        "ArrowPathIcon",
			Color:       grayColor,
			IconColor:   grayIcon,
			Keywords:    []string{"dicom", "nifti", "conversion", "bids"},
		},
		Name:        "dcm2niix",
		URL:         "https://github.com/rordenlab/dcm2niix",
		Description: "Convert DICOM images to NIfTI with BIDS sidecars",
		Binaries: &registry.TemplateMethod{Arguments: schema.Arguments{
			{
				Name:        "version",
				Type:        schema.ArgDropdown,
				Required:    true,
				Options:     []string{"latest", "v1.0.20240202", "v1.0.20230411"},
				Description: "dcm2niix release to install",
			},
		}},
		Source: &registry.TemplateMethod{Arguments: schema.Arguments{
			{
				Name:        "version",
				Type:        schema.ArgText,
				Required:    true,
				Default:     "master",
				Description: "Git revision to build",
			},
			{
				Name:        "cmake_opts",
				Type:        schema.ArgText,
				Description: "Extra options passed to cmake",
			},
		}},
	}
}
