package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cascadebot/cascade/internal/presentation/tui"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"golang.org/x/term"
)

// RunChat runs the interactive local conversation loop. Each line of
// input is one turn; replies render as markdown when stdout is a TTY.
func RunChat(ctx context.Context, opts Options, logger *slog.Logger) error {
	b, closer, err := BuildBot(opts, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}
	defer closer()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	render := func(s string) string { return s }
	if interactive {
		tui.PrintBanner()
		render = tui.NewRenderer()
	}

	user := os.Getenv("USER")
	if user == "" {
		user = "local-user"
	}
	conversationID := fmt.Sprintf("local-%d", time.Now().Unix())

	responder := ports.ResponderFunc(func(ctx context.Context, text string) error {
		fmt.Print(render(text))
		if !strings.HasSuffix(text, "\n") {
			fmt.Println()
		}
		return nil
	})

	// A join event first, so the welcome card and the intro prompt show
	// before the user types anything.
	join := &domain.Activity{
		Type:           domain.ActivityConversationUpdate,
		ConversationID: conversationID,
		From:           domain.ChannelAccount{ID: user},
		Recipient:      domain.ChannelAccount{ID: "cascade"},
		MembersAdded:   []domain.ChannelAccount{{ID: user}},
	}
	if err := b.OnTurn(ctx, join, responder); err != nil {
		return fmt.Errorf("error starting conversation: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" || text == "/exit" {
			break
		}

		activity := &domain.Activity{
			Type:           domain.ActivityMessage,
			ConversationID: conversationID,
			From:           domain.ChannelAccount{ID: user},
			Recipient:      domain.ChannelAccount{ID: "cascade"},
			Text:           text,
		}
		if err := b.OnTurn(ctx, activity, responder); err != nil {
			// The turn ended uncommitted; keep the session alive.
			logger.Error("turn failed", "err", err)
			fmt.Println("Sorry, something went wrong handling that. Please try again.")
		}
	}
	return scanner.Err()
}
