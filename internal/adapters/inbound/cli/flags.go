package cli

import (
	"encoding/json"

	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/spf13/cobra"
)

// targetFlags selects the project root and the hubs to run on.
type targetFlags struct {
	path    string
	hub     string
	allHubs bool
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", ".", "Project root")
	cmd.Flags().StringVar(&f.hub, "hub", "", "Hub to validate (e.g. content-hub)")
	cmd.Flags().BoolVar(&f.allHubs, "all-hubs", false, "Validate every hub under the packages directory")
	cmd.MarkFlagsMutuallyExclusive("hub", "all-hubs")
}

func (f *targetFlags) target() application.Target {
	return application.Target{HubName: f.hub, AllHubs: f.allHubs}
}

// levelFlags picks an explicit compliance level.
type levelFlags struct {
	strict      bool
	development bool
	level       string
}

func (f *levelFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Use the strict compliance level")
	cmd.Flags().BoolVar(&f.development, "development", false, "Use the development compliance level")
	cmd.Flags().StringVar(&f.level, "level", "", "Use a named compliance level")
	cmd.MarkFlagsMutuallyExclusive("strict", "development", "level")
}

func (f *levelFlags) name() string {
	switch {
	case f.strict:
		return domain.LevelStrict
	case f.development:
		return domain.LevelDevelopment
	default:
		return f.level
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
