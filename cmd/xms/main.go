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
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clxcommunications/sdk-xms-go/internal/config"
	"github.com/clxcommunications/sdk-xms-go/pkg/version"
	"github.com/clxcommunications/sdk-xms-go/xms"
	"github.com/clxcommunications/sdk-xms-go/xmserror"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configFile string
	plan       string
	token      string
	endpoint   string
	verbose    bool
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "xms",
		Short: "Send and manage SMS batches through the XMS API",
		Long: `xms is a command line interface to the CLX Communications XMS API.
It can send text and binary SMS batches, inspect and cancel existing
batches, fetch delivery reports, and browse recipient groups and inbound
messages.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Config file path (default: standard locations)")
	pf.StringVar(&flags.plan, "plan", "", "XMS service plan identifier (overrides config)")
	pf.StringVar(&flags.token, "token", "", "XMS API token (overrides the token environment variable)")
	pf.StringVar(&flags.endpoint, "endpoint", "", "XMS endpoint URL (overrides config)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSendCommand(flags))
	rootCmd.AddCommand(newBatchesCommand(flags))
	rootCmd.AddCommand(newGroupsCommand(flags))
	rootCmd.AddCommand(newInboundsCommand(flags))
	rootCmd.AddCommand(newReportCommand(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// buildClient loads configuration, applies flag overrides, and creates
// the API client.
func buildClient(flags *globalFlags) (*xms.Client, *config.Config, error) {
	cfg, err := config.LoadConfig(flags.configFile)
	if err != nil {
		return nil, nil, err
	}

	if flags.endpoint != "" {
		cfg.XMS.Endpoint = flags.endpoint
	}
	if flags.plan != "" {
		cfg.XMS.ServicePlanID = flags.plan
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if cfg.XMS.ServicePlanID == "" {
		return nil, nil, fmt.Errorf("service plan not set. Use --plan or set service_plan_id in the config file")
	}

	token := flags.token
	if token == "" {
		token = cfg.Token()
	}
	if token == "" {
		return nil, nil, fmt.Errorf("API token not found. Set %s or use --token flag", cfg.XMS.TokenEnv)
	}

	configureLogging(cfg, flags)

	client := xms.NewClient(cfg.XMS.ServicePlanID, token,
		xms.WithEndpoint(cfg.XMS.Endpoint),
		xms.WithLogger(logrus.StandardLogger()),
	)

	return client, cfg, nil
}

// configureLogging sets the logrus level from config, with --verbose
// forcing debug.
func configureLogging(cfg *config.Config, flags *globalFlags) {
	if flags.verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
}

// mapErrorToExitCode maps API errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	var (
		unauthorized *xmserror.UnauthorizedError
		rejected     *xmserror.ResponseError
		notFound     *xmserror.NotFoundError
		urlErr       *url.Error
	)

	if errors.As(err, &unauthorized) ||
		errors.As(err, &rejected) ||
		errors.As(err, &notFound) {
		return 2 // The API refused the request
	}

	if errors.As(err, &urlErr) {
		return 3 // Network errors
	}

	return 1 // General error
}
