package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vdot/internal/analysis"
	"vdot/internal/api"
	"vdot/internal/config"
	"vdot/internal/export"
	"vdot/internal/render"
	"vdot/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "vdot",
		Short:         "VDOT running calculator",
		Long:          "Calculate VDOT from a race result, predict equivalent race times and derive training paces.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.vdot/config.yaml)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(newCalcCmd(flags))
	root.AddCommand(newPredictCmd(flags))
	root.AddCommand(newPacesCmd(flags))
	root.AddCommand(newCurveCmd(flags))
	root.AddCommand(newTableCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func newCalcCmd(flags *globalFlags) *cobra.Command {
	var distance, raceTime string
	var noSave bool

	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Calculate VDOT, equivalent times and training paces from a race",
		Example: "  vdot calc --distance 5K --time 24:34\n  vdot calc --distance \"13.1 mi\" --time 1:45:00 --no-save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			meters, err := service.ParseDistance(distance)
			if err != nil {
				return err
			}
			duration, err := service.ParseDuration(raceTime)
			if err != nil {
				return err
			}

			a, err := loadApp(flags, !noSave)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.calc.Calculate(cmd.Context(), meters, duration, !noSave)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Report(report, a.units))
			return nil
		},
	}
	cmd.Flags().StringVarP(&distance, "distance", "d", "", "race distance: 5K, 10K, half, marathon or a value such as 1500m, 15km, 3mi")
	cmd.Flags().StringVarP(&raceTime, "time", "t", "", "finish time as H:MM:SS or M:SS")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "don't record the calculation in history")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newPredictCmd(flags *globalFlags) *cobra.Command {
	var vdot float64
	var distance string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the race time for a distance at a given VDOT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			meters, err := service.ParseDistance(distance)
			if err != nil {
				return err
			}

			a, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.calc.Predict(vdot, meters)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Prediction(vdot, meters, t, a.units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&vdot, "vdot", 0, "VDOT value")
	cmd.Flags().StringVarP(&distance, "distance", "d", "", "target distance")
	_ = cmd.MarkFlagRequired("vdot")
	_ = cmd.MarkFlagRequired("distance")
	return cmd
}

func newPacesCmd(flags *globalFlags) *cobra.Command {
	var vdot float64
	var all bool

	cmd := &cobra.Command{
		Use:   "paces",
		Short: "Show training paces for a VDOT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if all {
				report, err := a.calc.ForVDOT(vdot)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, render.Report(report, a.units))
				return nil
			}

			paces, err := a.calc.Paces(vdot)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, render.Paces(paces, a.units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&vdot, "vdot", 0, "VDOT value")
	cmd.Flags().BoolVar(&all, "all", false, "include equivalent race times")
	_ = cmd.MarkFlagRequired("vdot")
	return cmd
}

func newCurveCmd(flags *globalFlags) *cobra.Command {
	var vdot float64
	var from, to string
	var samples int

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Plot predicted race pace against distance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromMeters, err := service.ParseDistance(from)
			if err != nil {
				return err
			}
			toMeters, err := service.ParseDistance(to)
			if err != nil {
				return err
			}

			a, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer a.Close()

			points, err := a.calc.Curve(vdot, fromMeters, toMeters, samples)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Curve(vdot, points, a.units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&vdot, "vdot", 0, "VDOT value")
	cmd.Flags().StringVar(&from, "from", "1500m", "shortest distance")
	cmd.Flags().StringVar(&to, "to", "marathon", "longest distance")
	cmd.Flags().IntVar(&samples, "samples", 60, "number of sampled distances")
	_ = cmd.MarkFlagRequired("vdot")
	return cmd
}

func newTableCmd(flags *globalFlags) *cobra.Command {
	table := &cobra.Command{Use: "table", Short: "Precomputed VDOT table commands"}

	table.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Build the VDOT table for VDOT 30.0 to 85.0 and store it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := a.calc.GenerateTable(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.RenderSuccess(fmt.Sprintf("stored %d rows", n)))
			return nil
		},
	})

	var vdot float64
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored table row nearest to a VDOT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			row, err := a.calc.LookupTable(cmd.Context(), vdot)
			if err != nil {
				return tableHint(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.TableRow(row, a.units))
			return nil
		},
	}
	showCmd.Flags().Float64Var(&vdot, "vdot", 0, "VDOT value between 30 and 85")
	_ = showCmd.MarkFlagRequired("vdot")

	var format, outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored table as JSON, YAML or MessagePack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			rows, err := a.calc.TableRows(cmd.Context())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return tableHint(errors.New("table is empty"))
			}

			if outPath == "" || outPath == "-" {
				return export.WriteTable(cmd.OutOrStdout(), f, rows)
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := export.WriteTable(file, f, rows); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			a.log.Infow("exported table", "rows", len(rows), "format", f, "path", outPath)
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), render.RenderSuccess(fmt.Sprintf("wrote %d rows to %s", len(rows), outPath)))
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|yaml|msgpack")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	table.AddCommand(showCmd, exportCmd)
	return table
}

// tableHint points the user at table generate when the table is missing
func tableHint(err error) error {
	if errors.Is(err, analysis.ErrOutsideTable) {
		return err
	}
	return fmt.Errorf("%w (run `vdot table generate` first)", err)
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int

	history := &cobra.Command{
		Use:   "history",
		Short: "List recent calculations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.calc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.History(entries))
			return nil
		},
	}
	history.Flags().IntVarP(&limit, "limit", "n", service.HistoryLimit, "number of calculations to show")

	history.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show the full report for a recorded calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.calc.Recall(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Report(report, a.units))
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded calculation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.calc.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.RenderSuccess("history cleared"))
			return nil
		},
	})

	return history
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(a.calc, a.log).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			a.log.Infow("api server listening", "addr", addr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("api server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info("shutting down api server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration commands"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write an example config file if none exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.CreateExample(flags.configPath); err != nil {
				return fmt.Errorf("creating example config: %w", err)
			}
			path := flags.configPath
			if path == "" {
				dir, err := config.GetConfigDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.yaml")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "config file at %s\n", path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer a.Close()
			return export.Encode(cmd.OutOrStdout(), export.FormatYAML, a.cfg)
		},
	})

	return cfgCmd
}
