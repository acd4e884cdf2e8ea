package portalselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/unilife-dev/unilife/internal/cli/config"
	"github.com/unilife-dev/unilife/internal/cli/userconfig"
)

// ResolvePortal determines which portal to use based on the following priority:
// 1. If portalAlias is provided, use that portal
// 2. If the user has a selected portal in their local config, use that
// 3. If only one portal in project config, use that
// 4. Otherwise, prompt the user to select a portal interactively
func ResolvePortal(projectConfig *config.Config, portalAlias string) (*config.Portal, error) {
	// Priority 1: Use portal alias if provided
	if portalAlias != "" {
		portal, err := projectConfig.GetPortalByAlias(portalAlias)
		if err != nil {
			return nil, err
		}
		return portal, nil
	}

	// Priority 2: Use selected portal from user config
	selectedURL, err := userconfig.GetSelectedPortal()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		portal, err := getPortalByURL(projectConfig, selectedURL)
		if err != nil {
			// Selected portal no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedPortal("")
		} else {
			return portal, nil
		}
	}

	// Priority 3: If only one portal, use it automatically
	if len(projectConfig.Portals) == 1 {
		portal := &projectConfig.Portals[0]
		if err := userconfig.SetSelectedPortal(portal.URL); err != nil {
			fmt.Printf("Warning: failed to save selected portal: %v\n", err)
		}
		return portal, nil
	}

	// Priority 4: Prompt user to select a portal
	portal, err := PromptPortalSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedPortal(portal.URL); err != nil {
		fmt.Printf("Warning: failed to save selected portal: %v\n", err)
	}

	return portal, nil
}

// PromptPortalSelection shows an interactive prompt for the user to select a portal
func PromptPortalSelection(projectConfig *config.Config) (*config.Portal, error) {
	if len(projectConfig.Portals) == 0 {
		return nil, fmt.Errorf("no portals configured in %s", config.ConfigFileName)
	}

	type portalOption struct {
		Label  string
		Portal *config.Portal
	}

	options := make([]portalOption, len(projectConfig.Portals))
	for i := range projectConfig.Portals {
		portal := &projectConfig.Portals[i]
		options[i] = portalOption{
			Label:  fmt.Sprintf("%s (%s)", portal.Alias, portal.URL),
			Portal: portal,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a portal",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("portal selection cancelled: %w", err)
	}

	return options[index].Portal, nil
}

// GetPortalByURLOrAlias finds a portal matching either its URL or its alias
func GetPortalByURLOrAlias(cfg *config.Config, urlOrAlias string) (*config.Portal, error) {
	for i := range cfg.Portals {
		if cfg.Portals[i].URL == urlOrAlias || cfg.Portals[i].Alias == urlOrAlias {
			return &cfg.Portals[i], nil
		}
	}
	return nil, fmt.Errorf("portal '%s' not found in project config", urlOrAlias)
}

func getPortalByURL(cfg *config.Config, rawURL string) (*config.Portal, error) {
	for i := range cfg.Portals {
		if cfg.Portals[i].URL == rawURL {
			return &cfg.Portals[i], nil
		}
	}
	return nil, fmt.Errorf("portal with URL '%s' not found in project config", rawURL)
}
