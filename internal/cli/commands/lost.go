package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewLostCmd creates the lost-and-found command group
func NewLostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lost",
		Short: "Lost and found",
	}

	cmd.AddCommand(newLostListCmd())
	cmd.AddCommand(newLostShowCmd())
	cmd.AddCommand(newLostPublishCmd())
	cmd.AddCommand(newLostCloseCmd())
	cmd.AddCommand(newLostDeleteCmd())

	return cmd
}

func newLostListCmd() *cobra.Command {
	var portalAlias, itemType, category string
	var mine bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lost-and-found items",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			params := client.ListLostItemsParams{
				Type:     itemType,
				Category: category,
				Limit:    limit,
			}
			if mine {
				if err := requireView(app.auth, false); err != nil {
					return err
				}
				id, err := strconv.Atoi(app.auth.CurrentUser().ID)
				if err != nil {
					return fmt.Errorf("invalid cached user id: %w", err)
				}
				params.CreatedBy = &id
			}

			items, err := app.api.ListLostItems(cmd.Context(), params)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("No items.")
				return nil
			}

			for _, item := range items {
				fmt.Printf("#%d [%s/%s] %s - %s (%s)\n", item.ID, item.Type, item.Category, item.Title, item.Location, item.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&itemType, "type", "", "Filter by type (lost or found)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only show your own listings")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of items")

	return cmd
}

func newLostShowCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one lost-and-found item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			item, err := app.api.GetLostItem(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("#%d %s\n", item.ID, item.Title)
			fmt.Printf("Type:     %s\n", item.Type)
			fmt.Printf("Category: %s\n", item.Category)
			fmt.Printf("Location: %s\n", item.Location)
			fmt.Printf("Time:     %s\n", item.Time)
			fmt.Printf("Status:   %s\n", item.Status)
			if len(item.Tags) > 0 {
				fmt.Printf("Tags:     %s\n", strings.Join(item.Tags, ", "))
			}
			if item.Publisher != nil {
				fmt.Printf("Contact:  %s", item.Publisher.Name)
				if item.Publisher.Phone != "" {
					fmt.Printf(" (%s)", item.Publisher.Phone)
				}
				fmt.Println()
			}
			fmt.Printf("\n%s\n", item.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newLostPublishCmd() *cobra.Command {
	var portalAlias string
	var tags []string
	var req client.CreateLostItemRequest

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a lost-and-found listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			req.Tags = tags
			if req.Time == "" {
				req.Time = time.Now().Format("2006-01-02 15:04")
			}
			if err := validate.Struct(req); err != nil {
				return describeValidation(err)
			}

			item, err := app.api.CreateLostItem(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Published listing #%d\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&req.Title, "title", "", "Item title")
	cmd.Flags().StringVar(&req.Type, "type", "lost", "Listing type: lost or found")
	cmd.Flags().StringVar(&req.Category, "category", "", "Item category")
	cmd.Flags().StringVar(&req.Description, "description", "", "Item description")
	cmd.Flags().StringVar(&req.Location, "location", "", "Where it was lost or found")
	cmd.Flags().StringVar(&req.Time, "time", "", "When it was lost or found (defaults to now)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags (repeatable)")

	return cmd
}

func newLostCloseCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Mark a listing as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			status := "resolved"
			if _, err := app.api.UpdateLostItem(cmd.Context(), id, client.UpdateLostItemRequest{Status: &status}); err != nil {
				return err
			}

			fmt.Printf("✓ Listing #%d marked as resolved\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newLostDeleteCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			if err := app.api.DeleteLostItem(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted listing #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

// describeValidation turns validator errors into flag-oriented messages
func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("--%s is required", strings.ToLower(fe.Field())))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("--%s must be one of: %s", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("--%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("--%s must be at least %s characters", strings.ToLower(fe.Field()), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("--%s must be a valid URL", strings.ToLower(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("--%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
