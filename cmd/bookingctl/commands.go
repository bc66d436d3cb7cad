package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"hotelbooking/pkg/client"
	"hotelbooking/pkg/model"

	"github.com/spf13/cobra"
)

const (
	defaultAddr    = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
)

type cliOptions struct {
	addr    string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Manage reservations for the hotel room",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", defaultAddr, "base URL of the bookings service")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "request timeout")

	root.AddCommand(
		newSearchCmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newCreateCmd(opts),
		newCancelCmd(opts),
		newUpdateCmd(opts),
	)
	return root
}

func (o *cliOptions) client() *client.BookingClient {
	return client.NewBookingClient(o.addr)
}

func (o *cliOptions) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newSearchCmd(opts *cliOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List bookings that overlap a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			end, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}

			ctx, cancel := opts.requestContext(cmd)
			defer cancel()
			bookings, err := opts.client().Search(ctx, start, end)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), bookings)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of the range (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()
			bookings, err := opts.client().GetAll(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), bookings)
		},
	}
}

func newGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()
			booking, err := opts.client().GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), booking)
		},
	}
}

func newCreateCmd(opts *cliOptions) *cobra.Command {
	var name, from, to string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Reserve the room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			end, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}

			ctx, cancel := opts.requestContext(cmd)
			defer cancel()
			booking, err := opts.client().Create(ctx, &model.Booking{
				Name:      name,
				StartDate: model.DatePtr(start),
				EndDate:   model.DatePtr(end),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), booking)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "guest name")
	cmd.Flags().StringVar(&from, "from", "", "check-in day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last night of the stay (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCancelCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.requestContext(cmd)
			defer cancel()
			if err := opts.client().Cancel(ctx, args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "booking %s cancelled\n", args[0])
			return err
		},
	}
}

func newUpdateCmd(opts *cliOptions) *cobra.Command {
	var name, from, to string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the guest name or dates of a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := &model.BookingPatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("from") {
				start, err := parseDateFlag("from", from)
				if err != nil {
					return err
				}
				patch.StartDate = model.DatePtr(start)
			}
			if cmd.Flags().Changed("to") {
				end, err := parseDateFlag("to", to)
				if err != nil {
					return err
				}
				patch.EndDate = model.DatePtr(end)
			}

			ctx, cancel := opts.requestContext(cmd)
			defer cancel()
			booking, err := opts.client().Update(ctx, args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), booking)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new guest name")
	cmd.Flags().StringVar(&from, "from", "", "new check-in day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "new last night (YYYY-MM-DD)")
	return cmd
}

func parseDateFlag(flag, value string) (model.Date, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
