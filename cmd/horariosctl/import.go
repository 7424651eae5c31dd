package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"horarios/database"
	teacherRepo "horarios/database/repository/teacher"
	"horarios/models"
	"horarios/services/registration"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	DatabaseURL  string
	DatabaseName string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <submission.json>...",
		Short: "Store form submissions and update the derived tables",
		Long: `Runs each submission through the same pipeline as the HTTP form.
Without --database-url the profile is not stored in MongoDB and only the
tables and the per-teacher profile export are written.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.DatabaseURL, "database-url", "", "MongoDB URI of the identity store")
	cmd.Flags().StringVar(&opts.DatabaseName, "database-name", "generador_horarios", "MongoDB database name")

	return cmd
}

func runImport(cmd *cobra.Command, opts *ImportOptions, paths []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger()
	defer logger.Sync()

	var teachers teacherRepo.TeacherRepository = offlineTeachers{}
	if opts.DatabaseURL != "" {
		conn, err := database.Connect(ctx, opts.DatabaseURL, opts.DatabaseName)
		if err != nil {
			return err
		}
		defer conn.Close(context.Background())
		repo, err := teacherRepo.NewMongoTeacherRepo(conn.DB)
		if err != nil {
			logger.Warn("failed to create teacher indexes", zap.Error(err))
		}
		teachers = repo
	}

	store, err := opts.openStore(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := &registration.DefaultRegistrationService{
		Teachers: teachers,
		Tables:   store,
		Profiles: &registration.CSVProfileExporter{Dir: opts.DataDir},
		Logger:   logger,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	var failed int
	for _, path := range paths {
		sub, err := readSubmission(cmd.InOrStdin(), path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		outcome, err := svc.Submit(ctx, sub)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if outcome.Partial() {
			failed++
			logger.Warn("submission partially stored", zap.String("file", path))
		}
		if err := enc.Encode(outcome); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d submissions were only partially stored", failed, len(paths))
	}
	return nil
}

// offlineTeachers accepts every profile without storing it.
type offlineTeachers struct{}

func (offlineTeachers) Upsert(context.Context, string, []byte) error { return nil }

func (offlineTeachers) ListCompleted(context.Context) ([]models.TeacherName, error) {
	return nil, nil
}

func (offlineTeachers) Ping(context.Context) error { return nil }
