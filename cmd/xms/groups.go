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
	"github.com/clxcommunications/sdk-xms-go/xms/api"
)

func newGroupsCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Inspect and manage recipient groups",
	}

	cmd.AddCommand(newGroupsListCommand(flags))
	cmd.AddCommand(newGroupsShowCommand(flags))
	cmd.AddCommand(newGroupsCreateCommand(flags))
	cmd.AddCommand(newGroupsDeleteCommand(flags))
	cmd.AddCommand(newGroupsMembersCommand(flags))
	cmd.AddCommand(newGroupsTagsCommand(flags))

	return cmd
}

func newGroupsListCommand(flags *globalFlags) *cobra.Command {
	var (
		pageSize   int
		tags       []string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups as NDJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := buildClient(flags)
			if err != nil {
				return err
			}

			if pageSize == 0 {
				pageSize = cfg.Defaults.PageSize
			}

			writer, err := newOutputWriter(outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			pages := client.FetchGroups(xms.GroupParams{
				PageSize: pageSize,
				Tags:     tags,
			})

			for group, err := range pages.Elements(cmd.Context()) {
				if err != nil {
					return err
				}
				if err := writer.Write(group); err != nil {
					return fmt.Errorf("failed to write group: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Groups per page (default from config)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only list groups carrying this tag (repeatable)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")

	return cmd
}

func newGroupsShowCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <group-id>",
		Short: "Show one group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			group, err := client.FetchGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, group)
		},
	}

	return cmd
}

func newGroupsCreateCommand(flags *globalFlags) *cobra.Command {
	var (
		name        string
		members     []string
		childGroups []string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipient group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			group, err := client.CreateGroup(cmd.Context(), &api.GroupCreate{
				Name:        name,
				Members:     members,
				ChildGroups: childGroups,
				Tags:        tags,
			})
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, group)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().StringSliceVar(&members, "member", nil, "Member MSISDN (repeatable)")
	cmd.Flags().StringSliceVar(&childGroups, "child-group", nil, "Child group identifier (repeatable)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach to the group (repeatable)")

	return cmd
}

func newGroupsDeleteCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			if err := client.DeleteGroup(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Deleted group %s\n", args[0])
			return nil
		},
	}

	return cmd
}

func newGroupsMembersCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members <group-id>",
		Short: "List the MSISDNs that belong to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			members, err := client.FetchGroupMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output.WriteIndented(os.Stdout, members)
		},
	}

	return cmd
}

func newGroupsTagsCommand(flags *globalFlags) *cobra.Command {
	var (
		add    []string
		remove []string
	)

	cmd := &cobra.Command{
		Use:   "tags <group-id>",
		Short: "Show or update group tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(flags)
			if err != nil {
				return err
			}

			var tags []string
			if len(add) > 0 || len(remove) > 0 {
				tags, err = client.UpdateGroupTags(cmd.Context(), args[0], add, remove)
			} else {
				tags, err = client.FetchGroupTags(cmd.Context(), args[0])
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
