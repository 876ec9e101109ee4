package cli

import (
	"math"
	"strconv"
	"strings"

	"stockpile/internal/form"
	"stockpile/internal/model"
	"stockpile/internal/store"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsRemoveCmd(app))
	cmd.AddCommand(newItemsSortCmd(app))
	cmd.AddCommand(newItemsSeedCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var search, by, order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (filtered and sorted like the UI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Flags override the session view without persisting anything.
			sortBy, sortDir := st.SortState()
			if by != "" {
				b, err := parseSortBy(by)
				if err != nil {
					return writeErr(cmd, err)
				}
				sortBy = b
			}
			if order != "" {
				d, err := parseSortDir(order)
				if err != nil {
					return writeErr(cmd, err)
				}
				sortDir = d
			}

			items := store.View(st.Items(), search, sortBy, sortDir)
			return writeOut(cmd, app, map[string]any{"data": items})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name filter")
	cmd.Flags().StringVar(&by, "by", "", "Sort key (name|updatedAt)")
	cmd.Flags().StringVar(&order, "order", "", "Sort direction (asc|desc)")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show a single item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, ok := st.Get(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var raw form.RawDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			draft, errs := form.Validate(raw)
			if len(errs) > 0 {
				return writeErr(cmd, errValidation(errs))
			}

			it := st.Add(draft)
			st.Flush()
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVar(&raw.Name, "name", "", "Item name")
	cmd.Flags().StringVar(&raw.Quantity, "quantity", "", "Quantity (> 0)")
	cmd.Flags().StringVar(&raw.Category, "category", "", "Category")
	cmd.Flags().StringVar(&raw.Notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&raw.PhotoURI, "photo", "", "Photo reference (opaque URI)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var name, quantity, category, notes, photoURI string

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update fields of an item (only supplied flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			id := strings.TrimSpace(args[0])
			if _, ok := st.Get(id); !ok {
				// The store treats a missing id as a no-op; scripts get a
				// real error so typos don't pass silently.
				return writeErr(cmd, errNotFound("item", id))
			}

			var patch model.Patch
			errs := form.Fields{}
			if cmd.Flags().Changed("name") {
				v := strings.TrimSpace(name)
				if v == "" {
					errs[form.FieldName] = form.MsgNameRequired
				}
				patch.Name = &v
			}
			if cmd.Flags().Changed("quantity") {
				q, err := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
				if err != nil || math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
					errs[form.FieldQuantity] = form.MsgQuantityRange
				}
				patch.Quantity = &q
			}
			if cmd.Flags().Changed("category") {
				v := strings.TrimSpace(category)
				patch.Category = &v
			}
			if cmd.Flags().Changed("notes") {
				v := strings.TrimSpace(notes)
				patch.Notes = &v
			}
			if cmd.Flags().Changed("photo") {
				patch.PhotoURI = &photoURI
			}
			if len(errs) > 0 {
				return writeErr(cmd, errValidation(errs))
			}

			st.Update(id, patch)
			st.Flush()
			it, _ := st.Get(id)
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&quantity, "quantity", "", "Quantity (> 0)")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&photoURI, "photo", "", "Photo reference (opaque URI)")
	return cmd
}

func newItemsRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item (no-op when already gone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			_, existed := st.Get(id)
			st.Remove(id)
			st.Flush()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "removed": existed}})
		},
	}
	return cmd
}

func newItemsSortCmd(app *App) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Set the persisted sort key (repeat to toggle direction)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := parseSortBy(by)
			if err != nil {
				return writeErr(cmd, err)
			}
			st.SetSort(b)
			st.Flush()
			sortBy, sortDir := st.SortState()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"sortBy": sortBy, "sortDir": sortDir}})
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Sort key (name|updatedAt)")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func newItemsSeedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the store to the demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st.Seed()
			st.Flush()
			return writeOut(cmd, app, map[string]any{"data": st.Items()})
		},
	}
	return cmd
}

func parseSortBy(s string) (model.SortBy, error) {
	switch model.SortBy(strings.TrimSpace(s)) {
	case model.SortByName:
		return model.SortByName, nil
	case model.SortByUpdatedAt:
		return model.SortByUpdatedAt, nil
	}
	return "", errInvalidFlag("--by", s, "name|updatedAt")
}

func parseSortDir(s string) (model.SortDir, error) {
	switch model.SortDir(strings.TrimSpace(s)) {
	case model.SortAsc:
		return model.SortAsc, nil
	case model.SortDesc:
		return model.SortDesc, nil
	}
	return "", errInvalidFlag("--order", s, "asc|desc")
}
