package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chainkit/internal/adapter/stream"
	"chainkit/internal/domain/entity"
)

func parseChainArg(raw string) (entity.ChainID, error) {
	chain, ok := entity.ParseChainID(strings.ToLower(raw))
	if !ok {
		return "", fmt.Errorf("unknown chain %q (supported: %s)", raw, supportedChains())
	}
	return chain, nil
}

type ratesResult struct {
	Chain     entity.ChainID `json:"chain" yaml:"chain"`
	UpdatedAt time.Time      `json:"updatedAt" yaml:"updatedAt"`
	Rates     []entity.Rate  `json:"rates" yaml:"rates"`
}

func newRatesCommand(opts *rootOptions) *cobra.Command {
	var codes []string

	cmd := &cobra.Command{
		Use:   "rates <chain>",
		Short: "Fetch and print the fiat rates of a chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := parseChainArg(args[0])
			if err != nil {
				return err
			}
			app, err := opts.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Rates.WhenAvailable(cmd.Context(), chain); err != nil {
				return fmt.Errorf("rates for %s unavailable: %w", chain, err)
			}
			table, _ := app.Rates.Table(cmd.Context(), chain)

			rates := table.Entries()
			if len(codes) > 0 {
				wanted := make(map[string]bool, len(codes))
				for _, c := range codes {
					wanted[entity.NormalizeCode(c)] = true
				}
				filtered := rates[:0]
				for _, r := range rates {
					if wanted[r.Code] {
						filtered = append(filtered, r)
					}
				}
				rates = filtered
			}

			result := ratesResult{Chain: chain, UpdatedAt: table.UpdatedAt, Rates: rates}
			return opts.render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				fmt.Fprintf(w, "%s rates, updated %s\n", strings.ToUpper(chain.String()), humanize.Time(table.UpdatedAt))
				for _, r := range rates {
					fmt.Fprintf(w, "  %-4s %-28s %s\n", r.Code, r.Name, humanize.CommafWithDigits(r.Rate, 8))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&codes, "code", nil, "only print these currency codes")
	return cmd
}

type convertResult struct {
	Chain    entity.ChainID `json:"chain" yaml:"chain"`
	Code     string         `json:"code" yaml:"code"`
	Satoshis int64          `json:"satoshis" yaml:"satoshis"`
	Fiat     float64        `json:"fiat" yaml:"fiat"`
}

func newConvertCommand(opts *rootOptions) *cobra.Command {
	var (
		satoshis int64
		amount   float64
	)

	cmd := &cobra.Command{
		Use:   "convert <chain> <code>",
		Short: "Convert satoshis to fiat (--satoshis) or fiat to satoshis (--amount)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bySatoshis := cmd.Flags().Changed("satoshis")
			byAmount := cmd.Flags().Changed("amount")
			if bySatoshis == byAmount {
				return errors.New("exactly one of --satoshis or --amount is required")
			}
			chain, err := parseChainArg(args[0])
			if err != nil {
				return err
			}
			code := entity.NormalizeCode(args[1])

			app, err := opts.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Rates.WhenAvailable(cmd.Context(), chain); err != nil {
				return fmt.Errorf("rates for %s unavailable: %w", chain, err)
			}

			result := convertResult{Chain: chain, Code: code, Satoshis: satoshis, Fiat: amount}
			var ok bool
			if bySatoshis {
				result.Fiat, ok = app.Converter.ToFiat(cmd.Context(), satoshis, code, chain)
			} else {
				result.Satoshis, ok = app.Converter.FromFiat(cmd.Context(), amount, code, chain)
			}
			if !ok {
				return fmt.Errorf("no %s rate for %s", chain, code)
			}

			return opts.render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s sat = %s %s\n",
					humanize.Comma(result.Satoshis), humanize.CommafWithDigits(result.Fiat, 2), code)
				return err
			})
		},
	}
	cmd.Flags().Int64Var(&satoshis, "satoshis", 0, "amount in satoshis")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in fiat")
	return cmd
}

func newAlternativesCommand(opts *rootOptions) *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "alternatives",
		Short: "List the selectable fiat currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Rates.WhenAvailable(cmd.Context(), entity.ChainBTC); err != nil {
				return fmt.Errorf("rates unavailable: %w", err)
			}

			alternatives := app.Rates.ListAlternatives(cmd.Context(), sorted)
			return opts.render(cmd.OutOrStdout(), alternatives, func(w io.Writer) error {
				for _, a := range alternatives {
					fmt.Fprintf(w, "%-4s %s\n", a.IsoCode, a.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&sorted, "sort", true, "sort by name")
	return cmd
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var (
		url   string
		count int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow rate-table installs of a running API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			watchLogger, err := opts.newLogger(cfg)
			if err != nil {
				return err
			}
			if url == "" {
				url = "ws://localhost:" + cfg.Server.Port + "/ws/rates"
			}

			seen := 0
			watcher := stream.NewWatcher(cfg.Rates.GetRequestTimeout(), watchLogger)
			return watcher.Watch(cmd.Context(), url, func(e stream.Event) error {
				err := opts.render(cmd.OutOrStdout(), e, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s\t%d rates\tupdated %s\n", e.Chain, e.Count, humanize.Time(e.UpdatedAt))
					return err
				})
				if err != nil {
					return err
				}
				seen++
				if count > 0 && seen >= count {
					return stream.ErrStopWatching
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "stream URL (default ws://localhost:<server.port>/ws/rates)")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many events (0 = until interrupted)")
	return cmd
}
