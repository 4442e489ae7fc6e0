package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ib-77/validated/internal/settings"
)

// errInvalidSettings makes the process exit with status 1 once the report
// has been printed.
var errInvalidSettings = errors.New("settings are invalid")

func newCheckCmd(a *app) *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a settings file once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("unknown output format %q", output)
			}

			raw, err := settings.Load(configPath, settings.EnvPrefix)
			if err != nil {
				return err
			}

			report := settings.Check(raw)
			a.logger.Debug("settings checked", "file", configPath, "valid", report.Valid,
				"problems", len(report.Problems))

			if err := writeReport(cmd.OutOrStdout(), output, report); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !report.Valid {
				return errInvalidSettings
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings file to validate")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, yaml)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func writeReport(w io.Writer, format string, r settings.Report) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	if r.Valid {
		s := r.Settings
		_, err := fmt.Fprintf(w, "valid: %s listens on %s (read timeout %s, max %d connections, admin %s)\n",
			s.Name, s.Addr, s.ReadTimeout, s.MaxConnections, s.AdminEmail)
		return err
	}

	if _, err := fmt.Fprintln(w, "invalid:"); err != nil {
		return err
	}
	for _, p := range r.Problems {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", p.Field, p.Reason); err != nil {
			return err
		}
	}
	return nil
}
