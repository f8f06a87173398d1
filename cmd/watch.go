package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/dragdrop/cli"
	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/pkg/remote"
	"github.com/grovetools/dragdrop/tui/theme"
)

// NewWatchCmd streams snapshots from a dndctl serve endpoint.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <url>",
		Short: "Print drag snapshots from a pointer endpoint",
		Long: `Connects to a dndctl serve endpoint and prints every snapshot it
broadcasts. With --stdin, lines such as "press 3 10", "move 20 4",
"release 20 4" or "cancel" are sent as pointer events.

Examples:
  dndctl watch ws://127.0.0.1:7878/pointer
  printf 'press 20 10\nmove 23 4\nrelease 23 4\n' | dndctl watch --stdin ws://127.0.0.1:7878/pointer`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().Bool("stdin", false, "Send pointer events read from stdin")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client, err := remote.Dial(ctx, args[0])
		if err != nil {
			return err
		}
		defer client.Close()

		if fromStdin, _ := cmd.Flags().GetBool("stdin"); fromStdin {
			log := cli.GetLogger(cmd, "watch")
			go func() {
				if err := sendEvents(cmd.InOrStdin(), client); err != nil {
					log.WithError(err).Warn("Stopped sending events")
				}
			}()
		}

		jsonOutput := cli.GetOptions(cmd).JSONOutput
		out := cmd.OutOrStdout()
		for msg := range client.Stream(ctx) {
			if jsonOutput {
				data, err := json.Marshal(msg)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				continue
			}
			fmt.Fprintln(out, formatMessage(theme.DefaultTheme, msg))
		}
		return nil
	}
	return cmd
}

func sendEvents(r io.Reader, client *remote.Client) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseEvent(line)
		if err != nil {
			return err
		}
		if err := client.Send(ev); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseEvent reads "<type> [x y]".
func parseEvent(line string) (remote.Event, error) {
	fields := strings.Fields(line)
	ev := remote.Event{Type: remote.EventType(fields[0])}
	if len(fields) == 1 {
		return ev, nil
	}
	if len(fields) != 3 {
		return ev, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("want '<type> <x> <y>', got '%s'", line))
	}
	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	if errX != nil || errY != nil {
		return ev, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("coordinates must be integers in '%s'", line))
	}
	ev.X, ev.Y = x, y
	return ev, nil
}

func formatMessage(t *theme.Theme, msg remote.Message) string {
	switch {
	case msg.Error != nil:
		return t.Error.Render(string(msg.Error.Code)) + " " + msg.Error.Message
	case msg.Snapshot != nil:
		return formatSnapshot(t, *msg.Snapshot)
	}
	return t.Muted.Render(string(msg.Type))
}

func formatSnapshot(t *theme.Theme, snap dnd.Snapshot) string {
	state := t.Muted.Render(fmt.Sprintf("#%d", snap.StateID))
	if !snap.Dragging {
		return state + " idle"
	}
	line := fmt.Sprintf("%s %s %s", state, t.Info.Render("dragging"), snap.SourceID)
	if len(snap.TargetIDs) > 0 {
		ids := make([]string, len(snap.TargetIDs))
		for i, id := range snap.TargetIDs {
			ids[i] = string(id)
		}
		line += " over " + strings.Join(ids, " > ")
	}
	if snap.DidDrop {
		line += " " + t.Success.Render(fmt.Sprintf("dropped %v", snap.DropResult))
	}
	return line
}
