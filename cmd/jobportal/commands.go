package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deppfellow/jobportal/internal/console"
	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/handler"
	"github.com/deppfellow/jobportal/internal/router"
	"github.com/deppfellow/jobportal/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobportal",
		Short:         "Job portal: interactive console, HTTP API and notification worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConsole,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "console",
			Short: "Start the interactive menu (default)",
			RunE:  runConsole,
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "worker",
			Short: "Process notification jobs",
			RunE:  runWorker,
		},
		newCompanyCmd(),
		newJobCmd(),
	)
	return root
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signalContext(cmd)
	defer stop()

	c := console.New(a.services, cmd.InOrStdin(), cmd.OutOrStdout(), a.server.Logger, a.server.LoggerService)
	return c.Run(ctx)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(os.Stdout)
	if err != nil {
		return err
	}
	defer a.server.LoggerService.Shutdown()

	s := a.server
	r := router.NewRouter(s, handler.NewHandlers(s, a.services), a.services)
	s.SetupHTTPServer(r)

	ctx, stop := signalContext(cmd)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			s.Logger.Error().Err(serveErr).Msg("server stopped")
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		s.Logger.Error().Err(err).Msg("server forced to shutdown")
		return errors.Join(serveErr, err)
	}
	if serveErr != nil {
		return serveErr
	}
	s.Logger.Info().Msg("server exited properly")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signalContext(cmd)
	defer stop()

	return database.Migrate(ctx, a.server.Logger, a.server.DB)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	if a.server.Job == nil {
		return errors.New("worker needs a redis address (JOBPORTAL_REDIS.ADDRESS)")
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	if err := a.server.Job.Start(); err != nil {
		return fmt.Errorf("starting worker: %w", err)
	}
	<-ctx.Done()
	return nil
}

func newCompanyCmd() *cobra.Command {
	company := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
	}

	var in service.CreateCompanyInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			c, err := a.services.Companies.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Company created with ID: %d\n", c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "company name")
	add.Flags().StringVar(&in.Location, "location", "", "company location")
	add.Flags().StringVar(&in.Industry, "industry", "", "industry")
	_ = add.MarkFlagRequired("name")

	company.AddCommand(add)
	return company
}

func newJobCmd() *cobra.Command {
	job := &cobra.Command{
		Use:   "job",
		Short: "Manage job postings",
	}

	var in service.PostJobInput
	post := &cobra.Command{
		Use:   "post",
		Short: "Post a job for an existing company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			j, err := a.services.JobPostings.Post(cmd.Context(), in)
			if errors.Is(err, service.ErrCompanyNotFound) {
				return fmt.Errorf("company not found with ID: %d", in.CompanyID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job posted with ID: %d\n", j.ID)
			return nil
		},
	}
	post.Flags().Int64Var(&in.CompanyID, "company-id", 0, "posting company")
	post.Flags().StringVar(&in.Title, "title", "", "job title")
	post.Flags().StringVar(&in.Description, "description", "", "job description")
	post.Flags().StringVar(&in.Location, "location", "", "job location")
	post.Flags().StringVar(&in.SkillsRequired, "skills", "", "comma separated skills")
	_ = post.MarkFlagRequired("company-id")
	_ = post.MarkFlagRequired("title")

	job.AddCommand(post)
	return job
}
