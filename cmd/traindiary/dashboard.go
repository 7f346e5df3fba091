package traindiary

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/export"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	dashMonth  string
	dashFormat string
	dashOut    string
)

var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1).
			MarginBottom(1)

	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginRight(1)

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Regenerate and show the monthly summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		month := dashMonth
		if strings.TrimSpace(month) == "" {
			month = time.Now().Format("2006-01")
		}
		if _, err := time.Parse("2006-01", month); err != nil {
			return fmt.Errorf("invalid --month %q (expected YYYY-MM)", month)
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			key := api.MonthlyKey(user.UserID, month)
			if err := env.Summary.Refresh(cmd.Context(), key); err != nil {
				return err
			}
			s, ok := env.Summary.Summary()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), emptyStyle.Render("No summary data available for this period."))
				return nil
			}

			if dashFormat != "" {
				return exportSummary(&s, dashFormat, dashOut)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, dashTitleStyle.Render(fmt.Sprintf("Summary — %s", month)))
			cards := lipgloss.JoinHorizontal(lipgloss.Top,
				statCard(fmt.Sprintf("%d", s.TotalWorkouts), "workouts"),
				statCard(fmt.Sprintf("%.0f", s.TotalCaloriesIntake), "kcal intake"),
				statCard(fmt.Sprintf("%.1fg", s.AvgProtein), "avg protein"),
				statCard(fmt.Sprintf("%.1f", s.AvgGrScore), "avg score"),
			)
			fmt.Fprintln(out, cards)

			if len(s.DailyData) == 0 {
				fmt.Fprintln(out, emptyStyle.Render("No daily data for this period."))
				return nil
			}
			fmt.Fprintln(out)
			maxCal := 0.0
			for _, d := range s.DailyData {
				if d.Calories > maxCal {
					maxCal = d.Calories
				}
			}
			for _, d := range s.DailyData {
				width := 0
				if maxCal > 0 {
					width = int(d.Calories / maxCal * 40)
				}
				fmt.Fprintf(out, "%s %s %.0f kcal, %d workout(s)\n",
					d.Date, barStyle.Render(strings.Repeat("█", width)), d.Calories, d.Workouts)
			}
			return nil
		})
	},
}

func statCard(value, label string) string {
	return statCardStyle.Render(statValueStyle.Render(value) + "\n" + statLabelStyle.Render(label))
}

func exportSummary(s *model.Summary, format, out string) error {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	w := os.Stdout
	if strings.TrimSpace(out) != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return exporter.Export(s, w)
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashMonth, "month", "", "Month YYYY-MM (default current)")
	dashboardCmd.Flags().StringVar(&dashFormat, "format", "", "Export format instead of rendering: json or yaml")
	dashboardCmd.Flags().StringVar(&dashOut, "out", "", "Export file path (default stdout)")
}
