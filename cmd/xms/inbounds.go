// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clxcommunications/sdk-xms-go/internal/output"
	"github.com/clxcommunications/sdk-xms-go/xms"
)

func newInboundsCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbounds",
		Short: "Browse mobile-originated messages",
	}

	cmd.AddCommand(newInboundsListCommand(flags))
	cmd.AddCommand(newInboundsShowCommand(flags))

	return cmd
}

func newInboundsListCommand(flags *globalFlags) *cobra.Command {
	var (
		pageSize   int
		recipients []string
		startDate  string
		endDate    string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inbound messages as NDJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := buildClient(flags)
			if err != nil {
				return err
			}

			if pageSize == 0 {
				pageSize = cfg.Defaults.PageSize
			}

			start, err := parseDateFlag("--start-date", startDate)
			if err != nil {
				return err
			}
			end, err := parseDateFlag("--end-date", endDate)
			if err != nil {
				return err
			}

			writer, err := newOutputWriter(outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			pages := client.FetchInbounds(xms.InboundParams{
				PageSize:   pageSize,
				Recipients: recipients,
				StartDate:  start,
				EndDate:    end,
			})

			for mo, err := range pages.Elements(cmd.Context()) {
				if err != nil {
					return err
				}
				if err := writer.Write(mo); err != nil {
					return fmt.Errorf("failed to write message: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Messages per page (default from config)")
	cmd.Flags().StringSliceVar(&recipients, "to", nil, "Only list messages addressed to this number (repeatable)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Only list messages received at or after this date")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Only list messages received before this date")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")

	return cmd
}

func newInboundsShowCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <inbound-id>",
		Short: "Show one inbound message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			mo, err := client.FetchInbound(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, mo)
		},
	}

	return cmd
}
