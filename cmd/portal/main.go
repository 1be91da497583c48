// Command portal runs the staff portal core against the demo dataset. The
// demo subcommand walks a scripted day of portal usage and prints what
// happened.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"staffportal/internal/async"
	"staffportal/internal/blob"
	"staffportal/internal/config"
	"staffportal/internal/core"
	"staffportal/internal/notify"
	"staffportal/internal/observ"
	"staffportal/internal/portal"
	"staffportal/internal/seed"
	"staffportal/internal/session"
	"staffportal/pkg/domain"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Building maintenance staff portal",
	}
	rootCmd.AddCommand(demoCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var email, passphrase string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed the demo dataset, sign in, and walk a complaint through its workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), email, passphrase)
		},
	}
	cmd.Flags().StringVar(&email, "email", "admin@building.com", "staff email to sign in with")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "passphrase (defaults to the configured demo passphrase)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the portal version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("portal", version)
		},
	}
}

func buildPortal(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*portal.Portal, *notify.MemorySink, error) {
	logos, err := blob.Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob store: %w", err)
	}
	store := core.NewMemoryStore(core.NewDefaultRulesEngine())
	seed.Apply(store)
	svc := core.NewService(store,
		core.WithLogoStore(logos),
		core.WithMetrics(core.NewExpvarMetricsRecorder("portal_service_metrics")),
	)

	slot, err := session.OpenSlot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open session slot: %w", err)
	}
	sessions, err := session.NewManager(ctx, svc, slot,
		session.WithPassphrase(cfg.Passphrase),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}

	sink := notify.NewMemorySink()
	p := portal.New(svc, sessions,
		portal.WithDelays(async.DelaysFromEnv()),
		portal.WithSink(notify.TeeSink{sink, notify.NewZapSink(logger)}),
		portal.WithLogger(logger),
	)
	return p, sink, nil
}

func runDemo(ctx context.Context, email, passphrase string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if passphrase == "" {
		passphrase = cfg.Passphrase
	}

	p, sink, err := buildPortal(ctx, cfg, logger)
	if err != nil {
		return err
	}

	id, err := p.Login(ctx, email, passphrase).Wait(ctx)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("signed in as %s (%s)\n\n", id.Name, id.Role)

	dash, err := p.Dashboard(ctx).Wait(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("complaints: %d total, %d open, %d in progress, %d resolved, %d unassigned\n",
		dash.Total,
		dash.ByStatus[domain.StatusOpen],
		dash.ByStatus[domain.StatusInProgress],
		dash.ByStatus[domain.StatusResolved],
		dash.Unassigned)
	fmt.Println("recent:")
	for _, c := range dash.Recent {
		fmt.Printf("  [%s] %-8s %s (apt %s)\n", c.Status, c.Priority, c.Title, c.ApartmentNo)
	}
	fmt.Println()

	open, err := p.Complaints(ctx, domain.ComplaintFilter{Unassigned: true}).Wait(ctx)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		fmt.Println("nothing to assign")
		return nil
	}
	target := open[0]

	techs, err := p.AssignmentCandidates(ctx).Wait(ctx)
	if err != nil {
		return err
	}
	if len(techs) == 0 {
		return fmt.Errorf("no active technicians to assign")
	}
	tech := techs[0]

	assigned, err := p.AssignComplaint(ctx, target.ID, tech.ID).Wait(ctx)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	fmt.Printf("assigned %q to %s, status now %s\n", assigned.Title, tech.Name, assigned.Status)

	if _, err := p.AddComplaintNote(ctx, target.ID, "Scheduled a visit for tomorrow morning.").Wait(ctx); err != nil {
		return fmt.Errorf("add note: %w", err)
	}

	resolved, err := p.UpdateComplaintStatus(ctx, target.ID, domain.StatusResolved).Wait(ctx)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	fmt.Printf("resolved %q at %s\n\n", resolved.Title, resolved.ResolvedAt.Format("2006-01-02 15:04:05"))

	if p.Can(domain.CapManageSettings) {
		settings, err := p.UploadLogo(ctx, "sunset-towers.png", strings.NewReader("demo logo bytes")).Wait(ctx)
		if err != nil {
			return fmt.Errorf("upload logo: %w", err)
		}
		fmt.Printf("settings for %s updated by %s, logo key %s\n\n", settings.BuildingName, settings.UpdatedBy, *settings.LogoKey)
	}

	fmt.Println("notifications:")
	for _, n := range sink.Notifications() {
		fmt.Printf("  %-7s %s\n", n.Level, n.Message)
	}

	return p.Logout(ctx)
}
