package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/hubguard/internal/adapters/outbound/config"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .hubguard.yaml configuration file",
		Long:  "Create a .hubguard.yaml holding the default configuration, with commented examples for custom levels and rules.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := generateConfig()
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .hubguard.yaml")

	return cmd
}

// defaultsFile is the subset of the configuration written by init. Levels
// and rules stay commented out since they only extend the built-ins.
type defaultsFile struct {
	PackagesDir    string               `yaml:"packages_dir"`
	HubSuffix      string               `yaml:"hub_suffix"`
	PackageScope   string               `yaml:"package_scope"`
	SharedPackage  string               `yaml:"shared_package"`
	MigrationGuide string               `yaml:"migration_guide"`
	Extensions     []string             `yaml:"extensions"`
	Grading        domain.GradingPolicy `yaml:"grading"`
	Build          domain.BuildConfig   `yaml:"build"`
}

func generateConfig() (string, error) {
	cfg := domain.DefaultConfig()
	data, err := yaml.Marshal(defaultsFile{
		PackagesDir:    cfg.PackagesDir,
		HubSuffix:      cfg.HubSuffix,
		PackageScope:   cfg.PackageScope,
		SharedPackage:  cfg.SharedPackage,
		MigrationGuide: cfg.MigrationGuide,
		Extensions:     cfg.Extensions,
		Grading:        cfg.Grading,
		Build:          cfg.Build,
	})
	if err != nil {
		return "", fmt.Errorf("encoding defaults: %w", err)
	}

	result := "# hubguard configuration\n\n" + string(data)
	result += `
# workers: 8

# exclude_paths:
#   - "**/generated/**"
#   - "**/*.stories.tsx"

# levels:
#   staging:
#     allowed_critical: 0
#     allowed_high: 2
#     allowed_medium: 10
#     allowed_low: 25

# rules:
#   - id: jquery-ajax
#     severity: high
#     literal: "$.ajax("
#     message: "Use @tamyla/shared/api instead of jQuery ajax"
`
	return result, nil
}
