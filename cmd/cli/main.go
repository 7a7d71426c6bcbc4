package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maxton76/stall-bokning-sub001/internal/config"
	"github.com/maxton76/stall-bokning-sub001/pkg/core/model"
	"github.com/maxton76/stall-bokning-sub001/pkg/core/services"
	"github.com/maxton76/stall-bokning-sub001/pkg/postgres"
	"github.com/maxton76/stall-bokning-sub001/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Stall-Bokning CLI - Manage chore selection processes",
		Long:  `A CLI tool for generating chore instances from routines and running fair turn-order selection processes for a stable.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(generateInstancesCmd())
	rootCmd.AddCommand(startSelectionCmd())
	rootCmd.AddCommand(viewSelectionCmd())
	rootCmd.AddCommand(claimTurnCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp(ctx context.Context) error {
	var err error
	app = &App{
		ctx: ctx,
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Debug("Database connection established")

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// parseDateRange parses the from/to arguments shared by range commands
func parseDateRange(fromArg, toArg string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", fromArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", fromArg, err)
	}
	to, err := time.Parse("2006-01-02", toArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", toArg, err)
	}
	return from, to, nil
}

// Command definitions

func generateInstancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateInstances <from> <to>",
		Short: "Generate chore instances from routine definitions for a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseDateRange(args[0], args[1])
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.GenerateInstances(app.ctx, app.database, app.cfg, app.logger, from, to, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Instance generation completed!\n\n")
			fmt.Printf("Routines expanded: %d\n", result.RoutineCount)
			fmt.Printf("Instances created: %d\n", len(result.Generated))
			fmt.Printf("Skipped (existing): %d\n\n", result.Skipped)
			if dryRun {
				fmt.Println("(dry run - nothing was saved)")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func startSelectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startSelection <from> <to>",
		Short: "Compute a fair turn order for the unassigned instances in a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseDateRange(args[0], args[1])
			if err != nil {
				return err
			}
			algorithmFlag, _ := cmd.Flags().GetString("algorithm")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if algorithmFlag == "" {
				algorithmFlag = app.cfg.DefaultAlgorithm
			}
			if algorithmFlag == "" {
				algorithmFlag = string(model.AlgorithmQuotaBased)
			}

			result, err := services.StartSelectionProcess(app.ctx, app.database, app.cfg, app.logger, services.StartSelectionParams{
				Algorithm:  model.Algorithm(algorithmFlag),
				RangeStart: from,
				RangeEnd:   to,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Selection process computed!\n\n")
			if result.ProcessID != "" {
				fmt.Printf("Process ID: %s\n", result.ProcessID)
			}
			fmt.Printf("Algorithm:  %s\n", result.TurnOrder.Algorithm)
			fmt.Printf("Members:    %d\n", result.MemberCount)
			fmt.Printf("Pool size:  %d\n", result.PoolSize)
			if result.TurnOrder.Algorithm == model.AlgorithmQuotaBased {
				fmt.Printf("Total available points: %.1f\n", result.TurnOrder.TotalAvailablePoints)
				fmt.Printf("Quota per member:       %.2f\n", result.TurnOrder.QuotaPerMember)
			}

			fmt.Printf("\nTurn order:\n")
			for i, userID := range result.TurnOrder.Turns {
				name := userID
				if member, ok := result.Members[userID]; ok {
					name = member.DisplayName
				}
				fmt.Printf("  %2d. %s (%.1f pts)\n", i+1, name, result.TurnOrder.Metadata.MemberPointsMap[userID])
			}
			fmt.Println()

			if dryRun {
				fmt.Println("(dry run - nothing was saved)")
			}

			return nil
		},
	}

	cmd.Flags().String("algorithm", "", "Turn order algorithm (points_balance or quota_based)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func viewSelectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewSelection [process_id]",
		Short: "View a selection process (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var processID string
			if len(args) > 0 {
				processID = args[0]
			}

			result, err := services.ViewSelectionProcess(app.ctx, app.database, app.logger, app.cfg.StableID, processID)
			if err != nil {
				return err
			}

			fmt.Printf("\nSelection process %s\n\n", result.Process.ID)
			fmt.Printf("Algorithm:  %s\n", result.Process.Algorithm)
			fmt.Printf("Date range: %s to %s\n", result.Process.RangeStart, result.Process.RangeEnd)
			fmt.Printf("Total available points: %.1f\n", result.Process.TotalAvailablePoints)
			fmt.Printf("Quota per member:       %.2f\n\n", result.Process.QuotaPerMember)

			fmt.Printf("Turn order:\n")
			for _, turn := range result.Turns {
				marker := "  "
				if turn.Position == result.Process.CurrentTurnIndex {
					marker = "→ "
				}
				fmt.Printf("%s%2d. %s (%.1f pts)\n", marker, turn.Position+1, turn.UserID, turn.HistoricalPoints)
			}
			fmt.Println()

			return nil
		},
	}
}

func claimTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claimTurn <process_id> <user_id> <instance_id>",
		Short: "Claim an unassigned instance for the member whose turn is next",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ClaimNextTurn(app.ctx, app.database, app.logger, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Instance %s assigned to %s\n", result.InstanceID, result.UserID)
			fmt.Printf("Next turn: %s (position %d)\n\n", result.NextUserID, result.NextTurnIndex+1)

			return nil
		},
	}
}
