package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grovetools/dragdrop/cli"
	"github.com/grovetools/dragdrop/internal/dustbin"
	"github.com/grovetools/dragdrop/internal/paths"
	"github.com/grovetools/dragdrop/internal/pidfile"
	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/pkg/remote"
)

// NewServeCmd serves the dustbin board to websocket pointer clients.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept pointer events over a websocket",
		Long: `Lays out the dustbin board on a pointer backend and feeds it pointer
events received over a websocket. Every state change is broadcast to all
clients as a snapshot.

Examples:
  dndctl serve --listen 127.0.0.1:9000
  dndctl serve --pidfile ""`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().String("listen", "", "Override remote.listen from dnd.yml")
	cmd.Flags().String("pidfile", paths.PidFilePath(), "Refuse to start while this pid file names a live process (empty disables)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := cli.GetLogger(cmd, "serve")
		cfg, _, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Remote.Listen = listen
		}
		if path, _ := cmd.Flags().GetString("pidfile"); path != "" {
			if err := pidfile.Acquire(path); err != nil {
				return err
			}
			defer pidfile.Release(path)
		}

		opts, err := pointer.OptionsFromConfig(cfg.Pointer)
		if err != nil {
			return err
		}
		manager := dnd.NewManager(pointer.New(opts), dnd.WithLogger(log))
		defer manager.Teardown()
		board, err := dustbin.New(manager)
		if err != nil {
			return err
		}
		defer board.Close()

		server, err := remote.NewServer(manager, cfg.Remote, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		err = server.ListenAndServe(ctx)
		server.Wait()
		return err
	}
	return cmd
}
