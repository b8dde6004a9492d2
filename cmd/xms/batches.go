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
	"time"

	"github.com/spf13/cobra"

	"github.com/clxcommunications/sdk-xms-go/internal/output"
	"github.com/clxcommunications/sdk-xms-go/xms"
	"github.com/clxcommunications/sdk-xms-go/xms/api"
)

// newOutputWriter opens the NDJSON destination for a list command.
func newOutputWriter(outputFile string) (output.OutputWriter, error) {
	if outputFile == "" {
		return output.NewWriter(os.Stdout), nil
	}
	w, err := output.NewFileWriter(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return w, nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s value %q: expected YYYY-MM-DD", name, value)
	}
	return t, nil
}

func newBatchesCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Inspect and manage SMS batches",
	}

	cmd.AddCommand(newBatchesListCommand(flags))
	cmd.AddCommand(newBatchesShowCommand(flags))
	cmd.AddCommand(newBatchesCancelCommand(flags))
	cmd.AddCommand(newBatchesDryRunCommand(flags))
	cmd.AddCommand(newBatchesTagsCommand(flags))

	return cmd
}

func newBatchesListCommand(flags *globalFlags) *cobra.Command {
	var (
		pageSize   int
		senders    []string
		tags       []string
		startDate  string
		endDate    string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List batches as NDJSON",
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

			pages := client.FetchBatches(xms.BatchParams{
				PageSize:  pageSize,
				Senders:   senders,
				Tags:      tags,
				StartDate: start,
				EndDate:   end,
			})

			for batch, err := range pages.Elements(cmd.Context()) {
				if err != nil {
					return err
				}
				if err := writer.Write(batch); err != nil {
					return fmt.Errorf("failed to write batch: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Batches per page (default from config)")
	cmd.Flags().StringSliceVar(&senders, "sender", nil, "Only list batches from this sender (repeatable)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only list batches carrying this tag (repeatable)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Only list batches sent at or after this date")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Only list batches sent before this date")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")

	return cmd
}

func newBatchesShowCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show one batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			batch, err := client.FetchBatch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, batch)
		},
	}

	return cmd
}

func newBatchesCancelCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <batch-id>",
		Short: "Cancel a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			if err := client.CancelBatch(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Canceled batch %s\n", args[0])
			return nil
		},
	}

	return cmd
}

func newBatchesDryRunCommand(flags *globalFlags) *cobra.Command {
	bf := &batchFlags{}
	var perRecipient int

	cmd := &cobra.Command{
		Use:   "dry-run <from> <to> <body>",
		Short: "Simulate sending a text batch",
		Long: `Simulate sending a text batch without creating it.

The response reports how many messages the batch would produce. With
--per-recipient N it also includes per-recipient statistics for N
recipients.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			batch := &api.MtBatchTextSmsCreate{
				Sender:     args[0],
				Recipients: splitRecipients(args[1]),
				Body:       args[2],
			}
			if err := bf.apply(batch); err != nil {
				return err
			}

			result, err := client.CreateBatchDryRun(cmd.Context(), batch, perRecipient)
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, result)
		},
	}

	bf.register(cmd)
	cmd.Flags().IntVar(&perRecipient, "per-recipient", 0, "Include per-recipient statistics for this many recipients")

	return cmd
}

func newBatchesTagsCommand(flags *globalFlags) *cobra.Command {
	var (
		add    []string
		remove []string
	)

	cmd := &cobra.Command{
		Use:   "tags <batch-id>",
		Short: "Show or update batch tags",
		Long: `Show the tags of a batch.

With --add or --remove the tag set is updated first and the resulting
set is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			var tags []string
			if len(add) > 0 || len(remove) > 0 {
				tags, err = client.UpdateBatchTags(cmd.Context(), args[0], add, remove)
			} else {
				tags, err = client.FetchBatchTags(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, tags)
		},
	}

	cmd.Flags().StringSliceVar(&add, "add", nil, "Tag to add (repeatable)")
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "Tag to remove (repeatable)")

	return cmd
}
