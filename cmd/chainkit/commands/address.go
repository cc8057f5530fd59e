package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"chainkit/internal/bootstrap"
	"chainkit/internal/coldstaking"
	"chainkit/internal/domain/entity"
)

type classifyResult struct {
	Input   string           `json:"input" yaml:"input"`
	Valid   bool             `json:"valid" yaml:"valid"`
	Chain   entity.ChainID   `json:"chain,omitempty" yaml:"chain,omitempty"`
	Network entity.NetworkID `json:"network,omitempty" yaml:"network,omitempty"`
	Address string           `json:"address,omitempty" yaml:"address,omitempty"`
}

func newClassifyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <input>...",
		Short: "Identify the chain and network of addresses or payment URIs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp(cmd.Context())
			if err != nil {
				return err
			}

			results := make([]classifyResult, 0, len(args))
			for _, input := range args {
				resolved, ok := app.Classifier.Resolve(input)
				results = append(results, classifyResult{
					Input:   input,
					Valid:   ok,
					Chain:   resolved.Chain,
					Network: resolved.Network,
					Address: resolved.Address,
				})
			}

			return opts.render(cmd.OutOrStdout(), results, func(w io.Writer) error {
				for _, r := range results {
					if !r.Valid {
						fmt.Fprintf(w, "%s\tinvalid\n", r.Input)
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Input, r.Chain, r.Network, r.Address)
				}
				return nil
			})
		},
	}
}

func newNetworkCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "network <input>",
		Short: "Report the network of an address; unknown is not the same as invalid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp(cmd.Context())
			if err != nil {
				return err
			}

			network, ok := app.Classifier.NetworkOf(args[0])
			result := map[string]any{"input": args[0], "known": ok, "network": network}
			return opts.render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				if !ok {
					_, err := fmt.Fprintln(w, "unknown")
					return err
				}
				_, err := fmt.Fprintln(w, network)
				return err
			})
		},
	}
}

func newMatchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <chain> <network> <input>",
		Short: "Check that input is a valid address of chain on network",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := parseChainArg(args[0])
			if err != nil {
				return err
			}
			network, ok := entity.ParseNetworkID(strings.ToLower(args[1]))
			if !ok {
				return fmt.Errorf("unknown network %q (livenet or testnet)", args[1])
			}
			app, err := opts.loadApp(cmd.Context())
			if err != nil {
				return err
			}

			match := app.Classifier.Matches(chain, network, args[2])
			return opts.render(cmd.OutOrStdout(), map[string]bool{"match": match}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, match)
				return err
			})
		},
	}
}

type credentialResult struct {
	Valid   bool                  `json:"valid" yaml:"valid"`
	Kind    entity.CredentialKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Prefix  string                `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Network entity.NetworkID      `json:"network" yaml:"network"`
	Reason  string                `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func newColdStakingCommand(opts *rootOptions) *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "coldstaking <credential>",
		Short: "Validate a cold-staking pool public key or staking address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if network != "" {
				cfg.ColdStaking.Network = network
			}
			validator, err := bootstrap.NewValidator(cfg.ColdStaking)
			if err != nil {
				return err
			}

			cred, verr := validator.Validate(args[0])
			result := credentialResult{
				Valid:   verr == nil,
				Kind:    cred.Kind,
				Prefix:  cred.Prefix,
				Network: validator.Network(),
				Reason:  coldstaking.Reason(verr),
			}
			return opts.render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				if result.Valid {
					_, err := fmt.Fprintf(w, "ok\t%s\t%s\n", result.Kind, result.Prefix)
					return err
				}
				_, err := fmt.Fprintln(w, result.Reason)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "network context (livenet or testnet); defaults to coldstaking.network")
	return cmd
}

func supportedChains() string {
	return strings.Join(lo.Map(entity.ChainPriority, func(c entity.ChainID, _ int) string {
		return c.String()
	}), ", ")
}
