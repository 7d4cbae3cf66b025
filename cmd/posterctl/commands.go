package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fhuszti/rated-posters-ms-go/internal/client"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

const defaultAPIURL = "http://localhost:8080"

type rootOptions struct {
	apiURL  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "posterctl",
		Short:         "Resolve and manage rated posters",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	apiURL := os.Getenv("RATED_POSTERS_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "base URL of the rated posters API (env RATED_POSTERS_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "timeout of each API call")

	root.AddCommand(newResolveCmd(opts), newDeleteCmd(opts))
	return root
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var rating string

	cmd := &cobra.Command{
		Use:   "resolve <contentId> <posterUrl>",
		Short: "Print the rated poster URL, creating it if needed",
		Long: "Looks the rated poster up, asks the API to create it when missing " +
			"and prints the original poster URL when anything fails.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseContentID(args[0])
			if err != nil {
				return err
			}
			r, err := model.ParseRating(rating)
			if err != nil {
				return err
			}

			res := client.NewResolver(opts.apiURL, opts.timeout).Resolve(cmd.Context(), client.Request{
				PosterURL: args[1],
				Rating:    r,
				ContentID: id,
			})
			if res.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Source, res.URL)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rating, "rating", "r", model.NotRated, `rating on a 0-10 scale, or "NR"`)
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <contentId>",
		Short: "Delete a stored rated poster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseContentID(args[0])
			if err != nil {
				return err
			}
			if err := client.NewResolver(opts.apiURL, opts.timeout).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}
