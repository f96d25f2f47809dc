package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HendryAvila/jumble/internal/config"
	"github.com/HendryAvila/jumble/internal/logging"
	"github.com/HendryAvila/jumble/internal/server"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "jumble",
		Short: "Project-context MCP server for AI coding tools",
		Long: `jumble scans a workspace for .jumble/project.toml descriptors and serves
what they declare (commands, architecture concepts, conventions, docs and
skills) to AI coding tools over the Model Context Protocol.

Without a subcommand jumble runs the stdio server. Add it to your AI tool's
MCP config:

  {
    "mcpServers": {
      "jumble": {
        "command": "jumble",
        "env": { "JUMBLE_ROOT": "/path/to/workspace" }
      }
    }
  }`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		RunE:              a.serve,
	}
	root.Version = server.Version
	root.SetVersionTemplate("jumble v{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "",
		"config file (default: jumble.yaml or jumble.toml in the user config dir)")
	flags.String(config.KeyRoot, "",
		"workspace root (default: $JUMBLE_ROOT, then the current directory)")
	flags.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")
	flags.String(config.KeyLogFormat, string(logging.FormatText), "log format: text, json")
	flags.Bool(config.KeyWatch, false, "rebuild the workspace when descriptor files change")
	flags.Duration(config.KeyDebounce, workspace.DefaultDebounce, "how long to wait for changes to settle")
	flags.StringSlice(config.KeyIgnore, nil,
		"glob of directories to skip, relative to the root (repeatable; replaces the defaults)")
	flags.String(config.KeyMarker, ".jumble", "name of the descriptor directory")
	for _, key := range config.Keys {
		cobra.CheckErr(a.v.BindPFlag(key, flags.Lookup(key)))
	}

	root.AddCommand(newServeCmd(a), newCheckCmd(a), newVersionCmd())
	return root
}

// load resolves the configuration and builds the logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging())
	if cfg.File != "" {
		a.log.Debug("config file loaded", "path", cfg.File)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jumble v%s\n", server.Version)
		},
	}
}
