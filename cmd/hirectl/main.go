package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"smarthire-backend/config"
	"smarthire-backend/db"
	"smarthire-backend/initializers"
	"smarthire-backend/lib/analytics"
	"smarthire-backend/lib/applicant"
	candidatestore "smarthire-backend/lib/applicant/store"
	xlsexport "smarthire-backend/lib/export/xls"
	authutils "smarthire-backend/lib/utils/auth-utils"
	"smarthire-backend/models"
	candidateapimodels "smarthire-backend/models/api/candidate"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hirectl",
	Short: "SmartHire operator CLI",
	Long: `hirectl reads the candidate store configured in config.yml (or the environment)
and prints the hiring pipeline for operators: candidate lists, stage tracker
and audit trail of one candidate, the pipeline report. It also runs the
database migrations and signs development tokens.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initializers.InitLogger()
		log.SetLevel(log.WarnLevel)
		config.InitConfig()
	},
}

var jsonOutput bool

func main() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.AddCommand(listCmd(), showCmd(), reportCmd(), migrateCmd(), tokenCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func openService() (applicant.Provider, candidatestore.Provider) {
	store := initializers.InitStore()
	return applicant.NewInstance(store, time.Now, nil), store
}

func listCmd() *cobra.Command {
	var filter candidateapimodels.CandidateFilter
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Status = models.ApplicationStatus(status)
			service, _ := openService()
			list, rowCount, err := service.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(list)
			}
			renderCandidates(os.Stdout, list, rowCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter, e.g. \"Interview Scheduled\"")
	cmd.Flags().StringVar(&filter.Search, "search", "", "substring of name, phone or vacancy")
	cmd.Flags().StringVar(&filter.Department, "department", "", "department filter")
	cmd.Flags().IntVar(&filter.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "rows per page")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <candidate id>",
		Short: "Show the stage tracker and audit trail of a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _ := openService()
			rec, err := service.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			progress := service.ResolveStage(rec)
			if jsonOutput {
				return printJSON(map[string]any{
					"candidate": rec,
					"stage":     progress,
				})
			}
			fmt.Printf("%s · %s · %s\n", rec.FullName, rec.Vacancy, rec.Status)
			renderStages(os.Stdout, progress)
			renderHistory(os.Stdout, rec.StatusHistory)
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var xlsxPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the pipeline report",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store := openService()
			xlsexport.NewHandler()
			report := analytics.NewInstance(store, xlsexport.Instance)
			if xlsxPath != "" {
				return exportReport(cmd.Context(), report, xlsxPath)
			}
			summary, err := report.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(summary)
			}
			renderSummary(os.Stdout, summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the Excel export to this file instead")
	return cmd
}

func exportReport(ctx context.Context, report analytics.Provider, path string) error {
	data, err := report.ExportToXls(ctx)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "error writing export")
	}
	fmt.Println("written", path)
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the candidates table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Conf.Storage.Backend == config.StorageMemory {
				return errors.New("storage backend is memory, nothing to migrate")
			}
			err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
				config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, false)
			if err != nil {
				return err
			}
			if err = db.AutoMigrateDB(); err != nil {
				return err
			}
			fmt.Println("migrations done")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var userID, name, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development token",
		RunE: func(cmd *cobra.Command, args []string) error {
			userRole := models.UserRole(role)
			if !userRole.IsValid() {
				return errors.Errorf("unknown role %q", role)
			}
			if userID == "" {
				return errors.New("--user is required")
			}
			token, err := authutils.GetToken(userID, name, userRole)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (candidate id for the Candidate role)")
	cmd.Flags().StringVar(&name, "name", "", "display name written to the history")
	cmd.Flags().StringVar(&role, "role", string(models.HRRole), "role: Admin, HR, HOD, Scheduler, Surveillance, Candidate")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
