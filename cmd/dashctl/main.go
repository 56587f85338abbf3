package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Apurer/dharai-delivery/internal/app/dashctl"
	authdomain "github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	ordersmemory "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/dharai-delivery/internal/platform/postgres"
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Dharai courier dashboard from the terminal",
	Long: `dashctl runs the courier pages in-process against a seeded order registry.
Pass --postgres-dsn to read orders from the API's database instead.`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(ordersCmd(), emailCheckCmd(), walkthroughCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("DASHCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "dump raw results")
	rootCmd.PersistentFlags().String("postgres-dsn", "", "read orders from PostgreSQL")
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("postgres-dsn", rootCmd.PersistentFlags().Lookup("postgres-dsn"))
}

func ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List the order registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), func(repo ordersports.Repository) error {
				orders, err := repo.List(cmd.Context())
				if err != nil {
					return err
				}
				if viper.GetBool("debug") {
					spew.Dump(orders)
				}
				if viper.GetBool("json") {
					return printJSON(orders)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Reference", "Status", "Customer", "Phone", "Note", "Action"})
				for _, o := range orders {
					tw.AppendRow(table.Row(dashctl.OrderRow(o)))
				}
				tw.Render()
				return nil
			})
		},
	}
}

func emailCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email-check <email>",
		Short: "Run the login form email checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			result := map[string]any{
				"email":     email,
				"valid":     authdomain.ValidateEmail(email),
				"plausible": authdomain.PlausibleEmail(email),
			}
			if viper.GetBool("json") {
				return printJSON(result)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Email", "Valid", "Plausible"})
			tw.AppendRow(table.Row{result["email"], result["valid"], result["plausible"]})
			tw.Render()
			return nil
		},
	}
}

func walkthroughCmd() *cobra.Command {
	var (
		email    string
		password string
		orderID  int64
		latency  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "walkthrough",
		Short: "Sign in, route an order and complete its delivery",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), func(repo ordersports.Repository) error {
				h, err := dashctl.NewHarness(repo, authdomain.DemoPassword, latency)
				if err != nil {
					return err
				}
				steps, runErr := h.Walkthrough(cmd.Context(), email, password, orderID)
				toasts, err := h.Toasts(cmd.Context())
				if err != nil {
					return err
				}
				if viper.GetBool("debug") {
					spew.Dump(steps, toasts)
				}
				if viper.GetBool("json") {
					if err := printJSON(map[string]any{"steps": steps, "toasts": toasts}); err != nil {
						return err
					}
					return runErr
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.SetTitle("Walkthrough")
				tw.AppendHeader(table.Row{"#", "Action", "Outcome"})
				for i, s := range steps {
					tw.AppendRow(table.Row{i + 1, s.Action, s.Outcome})
				}
				tw.Render()

				tt := table.NewWriter()
				tt.SetOutputMirror(os.Stdout)
				tt.SetTitle("Toasts")
				tt.AppendHeader(table.Row{"Shown at", "Severity", "Message"})
				for _, t := range toasts {
					tt.AppendRow(table.Row{t.ShownAt().Format(time.TimeOnly), t.Severity, t.Message})
				}
				tt.Render()
				return runErr
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "courier@dharai.app", "login email")
	cmd.Flags().StringVar(&password, "password", authdomain.DemoPassword, "login password")
	cmd.Flags().Int64Var(&orderID, "order", 1, "order to deliver")
	cmd.Flags().DurationVar(&latency, "latency", 0, "simulated login latency")
	return cmd
}

func withRepository(ctx context.Context, fn func(ordersports.Repository) error) error {
	dsn := strings.TrimSpace(viper.GetString("postgres-dsn"))
	if dsn == "" {
		return fn(ordersmemory.NewSeededRepository())
	}
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(orderspostgres.NewRepository(db))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
