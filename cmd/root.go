// Package cmd holds the gads-emulators command line
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/shamanec/GADS-emulator-manager/config"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/provider"
	"github.com/shamanec/GADS-emulator-manager/settings"
	"github.com/shamanec/GADS-emulator-manager/util"
	"github.com/spf13/cobra"
)

var (
	appVersion string
	configPath string
	overrides  config.ProviderConfig
	listJSON   bool
)

func NewRootCmd() *cobra.Command {
	configPath = ""
	overrides = config.ProviderConfig{}
	listJSON = false

	rootCmd := &cobra.Command{
		Use:           "gads-emulators",
		Short:         "Manage iOS simulators, Android emulators and HarmonyOS emulators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "provider config file (TOML)")
	rootCmd.PersistentFlags().StringVar(&overrides.ProviderFolder, "folder", "", "provider folder for logs and settings")
	rootCmd.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&overrides.Storage, "storage", "", "settings storage: file or rethinkdb")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP provider",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&overrides.Port, "port", "", "The port to run the server on")

	listCmd := &cobra.Command{
		Use:       "list <platform>",
		Short:     "List the emulators of a platform",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.PlatformIOS), string(models.PlatformAndroid), string(models.PlatformHarmony)},
		RunE:      runList,
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the emulators as JSON")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the persisted settings",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gads-emulators %s\n", appVersion)
		},
	}

	rootCmd.AddCommand(serveCmd, listCmd, validateCmd, versionCmd)
	return rootCmd
}

func Execute(version string) error {
	appVersion = version
	return NewRootCmd().Execute()
}

// loadConfig reads the config file and applies the flags set on top of it
func loadConfig() (config.ProviderConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if overrides.ProviderFolder != "" {
		cfg.ProviderFolder = overrides.ProviderFolder
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.Storage != "" {
		cfg.Storage = overrides.Storage
	}
	if overrides.Port != "" {
		cfg.Port = overrides.Port
	}

	cfg.ProviderFolder, err = provider.ResolveFolder(cfg.ProviderFolder)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func setupProvider() (*provider.Provider, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.SetupLogging(cfg.ProviderFolder, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	storage, fileStore, err := provider.OpenStorage(cfg)
	if err != nil {
		log.LogError("provider", fmt.Sprintf("Could not open settings storage - %s", err))
		return nil, err
	}
	return provider.New(cfg, storage, fileStore, log, util.NewShellRunner(cfg.CommandTimeout())), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := setupProvider()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextFor(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting provider on port:%v\n", p.Config.Port)
	return p.Serve(ctx)
}

func runList(cmd *cobra.Command, args []string) error {
	platform, err := models.ParsePlatform(args[0])
	if err != nil {
		return err
	}

	p, err := setupProvider()
	if err != nil {
		return err
	}
	ctx := contextFor(cmd)
	p.LoadSettings(ctx)

	if err := p.Registry.Refresh(ctx, platform); err != nil {
		return err
	}
	if listJSON {
		out, err := util.ConvertToJSONString(p.Registry.Devices())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	return printDevices(cmd.OutOrStdout(), p.Registry.Devices())
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := setupProvider()
	if err != nil {
		return err
	}
	ctx := contextFor(cmd)
	p.LoadSettings(ctx)

	valid := p.Settings.ValidateAll(ctx)
	printOutcomes(cmd.OutOrStdout(), p.Settings)
	if !valid {
		return fmt.Errorf("settings are invalid")
	}
	return nil
}

func contextFor(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printDevices(out io.Writer, devices []models.VirtualDevice) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROFILE\tOS\tSTATUS")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.DeviceProfile, d.OSVersion, d.Status)
	}
	return w.Flush()
}

func printOutcomes(out io.Writer, store *settings.Store) {
	outcomes := store.Errors()
	fields := make([]string, 0, len(outcomes))
	for field := range outcomes {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	for _, field := range fields {
		outcome := outcomes[settings.Field(field)]
		if outcome.Valid {
			fmt.Fprintf(out, "%-24s ok\n", field)
			continue
		}
		fmt.Fprintf(out, "%-24s %s\n", field, outcome.Reason)
	}
}
