package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/auth"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/client"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
)

type options struct {
	apiURL  string
	token   string
	output  string
	timeout time.Duration
}

func (o *options) session(cmd *cobra.Command) (*client.Session, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	return client.NewSession(client.NewClient(o.apiURL, o.token)), ctx, cancel
}

func (o *options) api() *client.Client {
	return client.NewClient(o.apiURL, o.token)
}

func (o *options) render(w io.Writer, v any, table func(io.Writer)) error {
	if o.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table(w)
	return nil
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "stockctl",
		Short:        "Operate the stock control API from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "table" && opts.output != "json" {
				return fmt.Errorf("unknown output %q (want table or json)", opts.output)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", cfg.APIURL, "API base URL (STOCK_API_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", cfg.APIToken, "bearer token (STOCK_API_TOKEN)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		newTokenCmd(cfg, opts),
		newProductsCmd(opts),
		newUsersCmd(opts),
		newStatsCmd(opts),
		newInitCmd(opts),
	)
	return root
}

func newTokenCmd(cfg *config.Config, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue or revoke bearer tokens",
	}

	var (
		subject string
		role    string
		ttl     time.Duration
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a new token with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, claims, err := auth.NewJWTService(cfg.JWTSecret).IssueToken(subject, role, ttl)
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return opts.render(cmd.OutOrStdout(), map[string]any{
					"token":     token,
					"tokenId":   claims.ID,
					"expiresAt": claims.ExpiresAt.Time,
				}, nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&subject, "subject", "operator", "token subject")
	issue.Flags().StringVar(&role, "role", "", "role claim")
	issue.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "token lifetime")

	revoke := &cobra.Command{
		Use:   "revoke [token]",
		Short: "Revoke a token (defaults to --token)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := opts.token
			if len(args) == 1 {
				token = args[0]
			}
			if token == "" {
				return fmt.Errorf("no token given")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			if err := client.NewClient(opts.apiURL, token).Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token revoked")
			return nil
		},
	}

	cmd.AddCommand(issue, revoke)
	return cmd
}

func newProductsCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products with their stock status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, cancel := opts.session(cmd)
			defer cancel()
			if err := s.Reload(ctx); err != nil {
				return err
			}
			products := s.FilterProducts(search)
			return opts.render(cmd.OutOrStdout(), products, func(w io.Writer) {
				renderProducts(w, products)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, SKU or category")
	return cmd
}

func newUsersCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, cancel := opts.session(cmd)
			defer cancel()
			if err := s.Reload(ctx); err != nil {
				return err
			}
			users := s.FilterUsers(search)
			return opts.render(cmd.OutOrStdout(), users, func(w io.Writer) {
				renderUsers(w, users)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, email, role or department")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the inventory summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			stats, err := opts.api().Stats(ctx)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), stats, func(w io.Writer) {
				renderStats(w, stats)
			})
		},
	}
}

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed empty collections with the baseline data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, cancel := opts.session(cmd)
			defer cancel()
			result, err := s.Initialize(ctx)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "products seeded: %d\nusers seeded: %d\n", result.ProductsSeeded, result.UsersSeeded)
			})
		},
	}
}
