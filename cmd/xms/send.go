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
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clxcommunications/sdk-xms-go/internal/output"
	"github.com/clxcommunications/sdk-xms-go/xms/api"
)

// batchFlags holds the optional batch settings shared by the send
// subcommands.
type batchFlags struct {
	deliveryReport string
	sendAt         string
	expireAt       string
	callbackURL    string
	tags           []string
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.deliveryReport, "delivery-report", "", "Requested delivery report type (none, summary, full, per_recipient)")
	cmd.Flags().StringVar(&f.sendAt, "send-at", "", "Scheduled send time (RFC 3339)")
	cmd.Flags().StringVar(&f.expireAt, "expire-at", "", "Expiry time (RFC 3339)")
	cmd.Flags().StringVar(&f.callbackURL, "callback-url", "", "Delivery report callback URL")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag to attach to the batch (repeatable)")
}

// apply copies the flag values into a text batch create.
func (f *batchFlags) apply(batch *api.MtBatchTextSmsCreate) error {
	batch.DeliveryReport = api.ReportType(f.deliveryReport)
	batch.CallbackURL = f.callbackURL
	batch.Tags = f.tags

	sendAt, err := parseTimeFlag("--send-at", f.sendAt)
	if err != nil {
		return err
	}
	batch.SendAt = sendAt

	expireAt, err := parseTimeFlag("--expire-at", f.expireAt)
	if err != nil {
		return err
	}
	batch.ExpireAt = expireAt

	return nil
}

func (f *batchFlags) applyBinary(batch *api.MtBatchBinarySmsCreate) error {
	batch.DeliveryReport = api.ReportType(f.deliveryReport)
	batch.CallbackURL = f.callbackURL
	batch.Tags = f.tags

	sendAt, err := parseTimeFlag("--send-at", f.sendAt)
	if err != nil {
		return err
	}
	batch.SendAt = sendAt

	expireAt, err := parseTimeFlag("--expire-at", f.expireAt)
	if err != nil {
		return err
	}
	batch.ExpireAt = expireAt

	return nil
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: expected RFC 3339, e.g. 2026-01-02T15:04:05Z", name, value)
	}
	return &t, nil
}

// splitRecipients splits a comma-separated recipient list.
func splitRecipients(arg string) []string {
	var recipients []string
	for _, r := range strings.Split(arg, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	return recipients
}

func newSendCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a text or binary SMS batch",
	}

	cmd.AddCommand(newSendTextCommand(flags))
	cmd.AddCommand(newSendBinaryCommand(flags))

	return cmd
}

func newSendTextCommand(flags *globalFlags) *cobra.Command {
	bf := &batchFlags{}
	var parameters []string

	cmd := &cobra.Command{
		Use:   "text <from> <to> <body>",
		Short: "Send a text SMS batch",
		Long: `Send a text SMS batch.

The recipient argument accepts a comma-separated list of MSISDNs. The
body may contain substitution templates such as ${name}; supply values
with --parameter key:recipient:value.`,
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
			if batch.Parameters, err = parseParameters(parameters); err != nil {
				return err
			}

			result, err := client.CreateBatch(cmd.Context(), batch)
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, result)
		},
	}

	bf.register(cmd)
	cmd.Flags().StringArrayVar(&parameters, "parameter", nil,
		"Substitution value as key:recipient:value, with recipient \"default\" for the fallback (repeatable)")

	return cmd
}

// parseParameters builds the substitution table from repeated
// key:recipient:value flags.
func parseParameters(specs []string) (map[string]map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	params := make(map[string]map[string]string)
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --parameter value %q: expected key:recipient:value", spec)
		}
		key, recipient, value := parts[0], parts[1], parts[2]
		if params[key] == nil {
			params[key] = make(map[string]string)
		}
		params[key][recipient] = value
	}

	return params, nil
}

func newSendBinaryCommand(flags *globalFlags) *cobra.Command {
	bf := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "binary <from> <to> <udh-hex> <body-base64>",
		Short: "Send a binary SMS batch",
		Long: `Send a binary SMS batch.

The User Data Header is given as a hex string and the body as standard
base64. The recipient argument accepts a comma-separated list of
MSISDNs.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			udh, err := hex.DecodeString(args[2])
			if err != nil {
				return fmt.Errorf("invalid UDH %q: %w", args[2], err)
			}
			body, err := base64.StdEncoding.DecodeString(args[3])
			if err != nil {
				return fmt.Errorf("invalid base64 body: %w", err)
			}

			batch := &api.MtBatchBinarySmsCreate{
				Sender:     args[0],
				Recipients: splitRecipients(args[1]),
				UDH:        udh,
				Body:       body,
			}
			if err := bf.applyBinary(batch); err != nil {
				return err
			}

			result, err := client.CreateBatch(cmd.Context(), batch)
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, result)
		},
	}

	bf.register(cmd)

	return cmd
}
