package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
)

// fixture is one restaurant day plus the booking being asked about.
type fixture struct {
	Tables   []availability.Table   `json:"tables"`
	Bookings []availability.Booking `json:"bookings"`
	Query    availability.Query     `json:"query"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

func newCheckCmd() *cobra.Command {
	var (
		path     string
		buffer   time.Duration
		duration time.Duration
		free     bool
	)

	defaults := availability.DefaultSettings()
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decide a booking request against a JSON fixture and print the decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(path)
			if err != nil {
				return err
			}
			engine, err := availability.NewEngine(availability.Settings{TurnoverBuffer: buffer, DefaultDuration: duration})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if free {
				tables, err := engine.FreeTables(f.Query, f.Tables, f.Bookings)
				if err != nil {
					return err
				}
				if tables == nil {
					tables = []availability.Table{}
				}
				return enc.Encode(tables)
			}

			decision, err := engine.Check(f.Query, f.Tables, f.Bookings)
			if err != nil {
				return err
			}
			return enc.Encode(decision)
		},
	}

	cmd.Flags().StringVar(&path, "fixture", "", "path to a JSON file with tables, bookings and query")
	cmd.Flags().DurationVar(&buffer, "buffer", defaults.TurnoverBuffer, "turnover buffer")
	cmd.Flags().DurationVar(&duration, "duration", defaults.DefaultDuration, "default duration when a booking has no end time")
	cmd.Flags().BoolVar(&free, "free", false, "print every free table for the query instead of a decision")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}
