package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/asig/sdit/internal/config"
	fusefs "github.com/asig/sdit/internal/fuse"
	"github.com/asig/sdit/internal/saydos"
)

type app struct {
	fs         afero.Fs
	out        io.Writer
	logLevel   logLevelFlag
	configPath string
	cfg        config.Config
}

func newRootCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	a := &app{fs: fs, out: out, logLevel: logLevelFlag{level: zerolog.InfoLevel}}

	root := &cobra.Command{
		Use:   "sdit <action> <args>",
		Short: "Converts SayDos disk images to and from a folder of artifacts",
		Long: `sdit converts SayDos disk images to and from a folder of artifacts.

Actions:
   Dump <image> <folder>: Writes all sectors, files and the root directory of <image> to <folder>
   Write <image> <folder>: Builds <image> from the artifacts in <folder>
   List <image>: Lists the files in <image>
   Mount <image> <mountpoint>: Mounts the files in <image> read-only at <mountpoint>`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no action given: %w", saydos.ErrArgumentCount)
			}
			return fmt.Errorf("%s: %w", args[0], saydos.ErrUnknownAction)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.PersistentFlags().Var(&a.logLevel, "log-level", "Log level (trace, debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default: sdit/config.yaml in the user config directory, if present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "Dump <image> <folder>",
			Short: "Unpacks an image into a folder",
			Args:  exactArgs(2),
			RunE:  a.dump,
		},
		&cobra.Command{
			Use:   "Write <image> <folder>",
			Short: "Builds an image from a folder",
			Args:  exactArgs(2),
			RunE:  a.write,
		},
		&cobra.Command{
			Use:   "List <image>",
			Short: "Lists the files in an image",
			Args:  exactArgs(1),
			RunE:  a.list,
		},
		&cobra.Command{
			Use:   "Mount <image> <mountpoint>",
			Short: "Mounts an image read-only",
			Args:  exactArgs(2),
			RunE:  a.mount,
		},
	)
	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s expects %d arguments, got %d: %w", cmd.Name(), n, len(args), saydos.ErrArgumentCount)
		}
		return nil
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path, required := a.configPath, true
	if !cmd.Flags().Changed("config") {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(a.fs, path, required)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel.Get()
	if !cmd.Flags().Changed("log-level") {
		if err := a.logLevel.Set(cfg.LogLevel); err != nil {
			return fmt.Errorf("config: bad log level %q: %w", cfg.LogLevel, err)
		}
		level = a.logLevel.Get()
	}
	config.InitLogging(level, cfg)
	return nil
}

func (a *app) dump(cmd *cobra.Command, args []string) error {
	image, folder := args[0], args[1]
	table, err := saydos.Unpack(a.fs, image, folder)
	if err != nil {
		return err
	}
	log.Info().Msgf("Dumped %d files", len(table.Files()))
	return nil
}

func (a *app) write(cmd *cobra.Command, args []string) error {
	image, folder := args[0], args[1]
	res, err := saydos.Repack(a.fs, folder, image)
	if err != nil {
		return err
	}
	log.Info().Msgf("Wrote %d files, battle data at sector 0x%04X", len(res.Table.Files()), res.NextSector)
	return nil
}

func (a *app) list(cmd *cobra.Command, args []string) error {
	vol, err := saydos.OpenVolume(a.fs, args[0])
	if err != nil {
		return err
	}
	total := 0
	for _, e := range vol.Files() {
		fmt.Fprintf(a.out, "%-12s 0x%04X-0x%04X %5d sectors\n", e.File(), e.StartSector, e.EndSector, e.SizeInSectors())
		total += e.SizeInSectors()
	}
	fmt.Fprintf(a.out, "%d files, %d sectors\n", len(vol.Files()), total)
	return nil
}

func (a *app) mount(cmd *cobra.Command, args []string) error {
	vol, err := saydos.OpenVolume(a.fs, args[0])
	if err != nil {
		return err
	}
	mountpoint := args[1]

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	done := make(chan struct{})
	defer close(done)
	go unmountOnSignal(mountpoint, sig, done, fusefs.Unmount)

	return fusefs.Mount(vol, mountpoint, a.cfg.Mount.FSName)
}

// unmountOnSignal calls unmount when a signal arrives and returns without
// doing anything once done is closed.
func unmountOnSignal(mountpoint string, sig <-chan os.Signal, done <-chan struct{}, unmount func(string) error) {
	select {
	case s := <-sig:
		log.Info().Msgf("Got %s, unmounting %s", s, mountpoint)
		if err := unmount(mountpoint); err != nil {
			log.Error().Err(err).Msgf("Can't unmount %s", mountpoint)
		}
	case <-done:
	}
}
