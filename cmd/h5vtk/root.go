package main

import (
	goflag "flag"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// subCommand pairs a command with the configuration bound to its flags.
type subCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

// logger is replaced before any subcommand runs.
var logger = zap.NewNop()

func newLogger(verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func newRootCmd() *cobra.Command {
	rootConf := viper.New()
	var subcommands []*subCommand
	root := &cobra.Command{
		Use:   "h5vtk",
		Short: "Store and inspect vtk datasets in HDF5 files",
		Long: `
h5vtk writes PolyData and UnstructuredGrid datasets into HDF5 files, reads
them back, and keeps the per-file object index that lists where datasets live.
Meshes are exchanged as YAML documents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(rootConf.GetBool("verbose"))
			return readConfig(rootConf.GetString("config"), subcommands)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
			glog.Flush()
		},
	}
	root.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden by environment variables and flags.")
	root.PersistentFlags().Bool("verbose", false, "Log debug messages. Library detail is controlled by --v.")
	_ = rootConf.BindPFlags(root.PersistentFlags())

	// glog registers its flags on the standard flag set; cobra picks them up
	// from pflag's command line.
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	_ = goflag.CommandLine.Parse(nil)

	subcommands = []*subCommand{
		newDumpCmd(), newImportCmd(), newExportCmd(), newIndexCmd(), newSampleCmd(),
	}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		_ = sc.Conf.BindPFlags(sc.Cmd.Flags())
		_ = sc.Conf.BindPFlags(root.PersistentFlags())
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
		sc.Conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		sc.Conf.AutomaticEnv()
	}
	return root
}

// readConfig loads the configuration file, when one is given, into every
// subcommand's settings.
func readConfig(cfg string, subcommands []*subCommand) error {
	if cfg == "" {
		return nil
	}
	for _, sc := range subcommands {
		sc.Conf.SetConfigFile(cfg)
		if err := sc.Conf.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", cfg)
		}
	}
	return nil
}

// requireFlag returns the value of a string setting or an error naming the flag.
func requireFlag(conf *viper.Viper, name string) (string, error) {
	v := conf.GetString(name)
	if v == "" {
		return "", errors.Errorf("--%s is required", name)
	}
	return v, nil
}
