package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/config"
	"github.com/unilife-dev/unilife/internal/cli/portalselect"
	"github.com/unilife-dev/unilife/internal/cli/userconfig"
)

// NewSelectPortalCmd creates the select-portal command
func NewSelectPortalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-portal [url-or-alias]",
		Short: "Select the portal to use for commands",
		Long: `Select the portal to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ unilife select-portal                            # Interactive selection
  $ unilife select-portal https://portal.example.edu # Select by URL
  $ unilife select-portal campus                     # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			return runSelectPortal(urlOrAlias)
		},
	}

	return cmd
}

func runSelectPortal(urlOrAlias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'unilife init' to create a configuration file", err)
	}

	var portal *config.Portal

	if urlOrAlias != "" {
		portal, err = portalselect.GetPortalByURLOrAlias(cfg, urlOrAlias)
		if err != nil {
			return err
		}
	} else {
		portal, err = portalselect.PromptPortalSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedPortal(portal.URL); err != nil {
		return fmt.Errorf("failed to save selected portal: %w", err)
	}

	fmt.Printf("Selected portal: %s (%s)\n", portal.Alias, portal.URL)
	return nil
}
