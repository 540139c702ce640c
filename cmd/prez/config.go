package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fallinov/prez-app/internal/adapters/secondary/config"
	"github.com/fallinov/prez-app/internal/domain/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage prez configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Long: `Write the default configuration to the global config file, or with
--local to prez.toml in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().Bool("local", false, "Write prez.toml in the current directory")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader := config.NewTOMLLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewTOMLLoaderWithPath(path)
	}

	local, _ := cmd.Flags().GetBool("local")

	path := loader.GetGlobalPath()
	if local {
		path = loader.GetLocalPath(".")
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	var err error
	if local {
		err = loader.CreateDefaults(cmd.Context(), path)
	} else {
		err = services.NewConfigService(loader, config.NewConfigMerger()).CreateGlobalConfig(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	color.New(color.FgGreen).Fprint(cmd.OutOrStdout(), "✓ ")
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Clean(path))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	resolved, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, source := range resolved.Sources {
		fmt.Fprintf(out, "# source: %s\n", source)
	}
	fmt.Fprintln(out)

	return config.Encode(out, resolved.Config)
}
