package traindiary

import (
	"fmt"
	"sort"

	"github.com/Hirosolo/train-diary-cli/internal/db"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage local configuration",
}

var cfgBaseURL string

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			if !cmd.Flags().Changed("backend-url") {
				return fmt.Errorf("set at least one flag")
			}
			if err := db.SetValue(env.DB, db.StateBaseURL, cfgBaseURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated backend URL")
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			rows, err := env.DB.Query(`SELECT key, value FROM app_state WHERE key NOT IN (?, ?) ORDER BY key ASC`,
				db.StateToken, db.StateUser)
			if err != nil {
				return fmt.Errorf("list config: %w", err)
			}
			defer rows.Close()
			values := map[string]string{}
			for rows.Next() {
				var k, v string
				if err := rows.Scan(&k, &v); err != nil {
					return fmt.Errorf("scan config: %w", err)
				}
				values[k] = v
			}
			if err := rows.Err(); err != nil {
				return fmt.Errorf("iterate config: %w", err)
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, values[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgBaseURL, "backend-url", "", "Backend base URL")
}
