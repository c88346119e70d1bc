package main

import (
	"context"
	"fmt"

	"github.com/phrazzld/pantry-api/internal/domain"
	"github.com/phrazzld/pantry-api/internal/domain/readiness"
	"github.com/phrazzld/pantry-api/internal/platform/postgres"
	"github.com/phrazzld/pantry-api/internal/service"
	"github.com/spf13/cobra"
)

func newClassifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Print the diet category of a free-text label",
		Long: `Classify a diet label. "vegetarian" and "vegan" are matched
case-insensitively; anything else is "normal".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.stdout, domain.ParseDiet(args[0]).String())
			return err
		},
	}
}

func newEvaluateCmd(c *cli) *cobra.Command {
	var ingredients, items []string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score an ad-hoc recipe against ad-hoc stock without storing either",
		Example: `  pantry evaluate --ingredient Flour=500 --ingredient Water=300 \
    --item Flour=500 --item Water=150`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			required, err := parseAmounts(ingredients)
			if err != nil {
				return err
			}
			available, err := parseAmounts(items)
			if err != nil {
				return err
			}
			if err := domain.ValidateAmounts(required); err != nil {
				return fmt.Errorf("ingredients: %w", err)
			}
			if err := domain.ValidateAmounts(available); err != nil {
				return fmt.Errorf("items: %w", err)
			}
			report, err := readiness.Evaluate(required, available)
			if err != nil {
				return err
			}
			return c.printJSON(report)
		},
	}
	cmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "required ingredient as name=amount (repeatable)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "available stock as name=amount (repeatable)")
	return cmd
}

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version|reset]",
		Short:     "Run database migrations",
		Long:      "Run the embedded goose migrations against database.url. Defaults to up.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion, postgres.MigrateReset},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			db, err := postgres.Open(cmd.Context(), c.cfg.Database, c.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					c.logger.Error("failed to close database", "error", err)
				}
			}()

			return postgres.Migrate(cmd.Context(), db, command, c.logger)
		},
	}
}

func newRecipeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage recipes",
	}

	var (
		name        string
		diet        string
		ingredients []string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Store a new recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			required, err := parseAmounts(ingredients)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				recipe, err := svc.CreateRecipe(ctx, name, diet, required)
				if err != nil {
					return err
				}
				return c.printJSON(recipe)
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "recipe name")
	add.Flags().StringVar(&diet, "diet", "", "diet label (vegetarian, vegan; anything else is normal)")
	add.Flags().StringArrayVar(&ingredients, "ingredient", nil, "required ingredient as name=amount (repeatable)")
	_ = add.MarkFlagRequired("name")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				recipe, err := svc.GetRecipe(ctx, args[0])
				if err != nil {
					return err
				}
				return c.printJSON(recipe)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				return svc.DeleteRecipe(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(add, get, del)
	return cmd
}

func newPantryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Manage pantries",
	}

	var (
		name  string
		items []string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Store a new pantry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stock, err := parseAmounts(items)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				pantry, err := svc.CreatePantry(ctx, name, stock)
				if err != nil {
					return err
				}
				return c.printJSON(pantry)
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "pantry name")
	add.Flags().StringArrayVar(&items, "item", nil, "stock as name=amount (repeatable)")
	_ = add.MarkFlagRequired("name")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored pantry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				pantry, err := svc.GetPantry(ctx, args[0])
				if err != nil {
					return err
				}
				return c.printJSON(pantry)
			})
		},
	}

	var delta []string
	restock := &cobra.Command{
		Use:   "restock <id>",
		Short: "Add to (or, with negative amounts, take from) a pantry's stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := parseAmounts(delta)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				pantry, err := svc.RestockPantry(ctx, args[0], changes)
				if err != nil {
					return err
				}
				return c.printJSON(pantry)
			})
		},
	}
	restock.Flags().StringArrayVar(&delta, "item", nil, "change as name=amount (repeatable)")

	cmd.AddCommand(add, get, restock)
	return cmd
}

func newReadinessCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "readiness <recipe-id> <pantry-id>",
		Short: "Report how ready a stored recipe is against a stored pantry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				report, err := svc.RecipeReadiness(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return c.printJSON(report)
			})
		},
	}
}

func newRankCmd(c *cli) *cobra.Command {
	var diet string

	cmd := &cobra.Command{
		Use:   "rank <pantry-id>",
		Short: "Rank every stored recipe by readiness against a pantry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseDietFilter(diet)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc service.ReadinessService) error {
				ranked, err := svc.RankRecipes(ctx, args[0], filter)
				if err != nil {
					return err
				}
				return c.printJSON(ranked)
			})
		},
	}
	cmd.Flags().StringVar(&diet, "diet", "", "only rank recipes of this diet (normal, vegetarian, vegan)")
	return cmd
}
