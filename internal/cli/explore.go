package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/meridian/internal/logging"
	"github.com/aretw0/meridian/internal/presentation/tui"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/ports"
)

const exploreHelp = "Commands: n/s/e/w (or north...), look, exits, help, quit"

// Explorer walks the world one move at a time, reading commands from In.
// Random fallbacks leave the explorer where it stands; picking a random area
// is the game's job.
type Explorer struct {
	Engine ports.Navigator
	In     io.Reader
	Out    io.Writer
	Render func(string) (string, error)
	Logger *slog.Logger
}

// Run starts at start and returns the area the explorer ended in.
// End of input and context cancellation are clean exits.
func (x *Explorer) Run(ctx context.Context, start string) (string, error) {
	area, ok := x.Engine.Area(start)
	if !ok {
		return start, fmt.Errorf("%w: %s", domain.ErrAreaNotFound, start)
	}
	if x.Logger == nil {
		x.Logger = logging.NewNop()
	}
	current := area.Name
	x.print(tui.AreaCard(area))
	printSystemMessage(x.Out, exploreHelp)

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(x.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		fmt.Fprint(x.Out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(x.Out)
			return current, nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(x.Out)
				return current, nil
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			printSystemMessage(x.Out, "Stopped at '%s'.", current)
			return current, nil
		case "help", "?":
			printSystemMessage(x.Out, exploreHelp)
			continue
		case "look", "l":
			if a, ok := x.Engine.Area(current); ok {
				x.print(tui.AreaCard(a))
			}
			continue
		case "exits", "x":
			x.exits(current)
			continue
		}

		dir, err := domain.ParseDirection(line)
		if err != nil {
			printSystemMessage(x.Out, "Unknown command %q. %s", line, exploreHelp)
			continue
		}

		res := x.Engine.Next(current, dir)
		x.Logger.Debug("move", "from", current, "dir", dir, "kind", res.Kind)
		x.print(tui.NavigationCard(current, dir, res))
		switch res.Kind {
		case domain.NavAdjacent:
			current = res.Area.Name
		case domain.NavLiminal:
			current = res.Destination
		}
	}
}

func (x *Explorer) exits(current string) {
	for _, dir := range domain.Directions {
		e := x.Engine.Edge(current, dir)
		switch e.Kind {
		case domain.EdgeAdjacent:
			fmt.Fprintf(x.Out, "  %-5s -> %s\n", dir.Name(), e.Target)
		case domain.EdgeLiminal:
			fmt.Fprintf(x.Out, "  %-5s -> %s (via %s)\n", dir.Name(), e.Sequence.Destination, e.Target)
		default:
			fmt.Fprintf(x.Out, "  %-5s -> ? (%s)\n", dir.Name(), e.Reason)
		}
	}
}

func (x *Explorer) print(markdown string) {
	if x.Render == nil {
		fmt.Fprint(x.Out, markdown)
		return
	}
	out, err := x.Render(markdown)
	if err != nil {
		fmt.Fprint(x.Out, markdown)
		return
	}
	fmt.Fprint(x.Out, out)
}
