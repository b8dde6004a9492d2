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
	"os"

	"github.com/spf13/cobra"

	"github.com/clxcommunications/sdk-xms-go/internal/output"
	"github.com/clxcommunications/sdk-xms-go/xms"
	"github.com/clxcommunications/sdk-xms-go/xms/api"
)

func newReportCommand(flags *globalFlags) *cobra.Command {
	var (
		kind      string
		statuses  []string
		codes     []int
		recipient string
	)

	cmd := &cobra.Command{
		Use:   "report <batch-id>",
		Short: "Fetch the delivery report of a batch",
		Long: `Fetch the delivery report of a batch.

By default the aggregated report is fetched; --kind selects the summary
or the full variant, and --status/--code narrow it down. With
--recipient the report for that single recipient is fetched instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			if recipient != "" {
				report, err := client.FetchRecipientDeliveryReport(cmd.Context(), args[0], recipient)
				if err != nil {
					return err
				}
				return output.WriteIndented(os.Stdout, report)
			}

			params := xms.DeliveryReportParams{
				Kind:  api.ReportType(kind),
				Codes: codes,
			}
			for _, s := range statuses {
				params.Statuses = append(params.Statuses, api.DeliveryStatus(s))
			}

			report, err := client.FetchDeliveryReport(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return output.WriteIndented(os.Stdout, report)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Report type: summary or full (default: server default)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Only include this delivery status (repeatable)")
	cmd.Flags().IntSliceVar(&codes, "code", nil, "Only include this status code (repeatable)")
	cmd.Flags().StringVar(&recipient, "recipient", "", "Fetch the report for this single recipient instead")

	return cmd
}
