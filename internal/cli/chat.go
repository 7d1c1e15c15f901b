package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Akash-N-Exotel/botcepter/internal/chat"
	chatui "github.com/Akash-N-Exotel/botcepter/internal/ui/chat"
)

var chatCommand = &Command{
	Name:    "chat",
	Summary: "Open an interactive chat session with the bot",
	Usage: []string{
		"botcepter chat [--config FILE] [--url URL] [--plain]",
	},
}

func init() { chatCommand.Run = runChat }

func runChat(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "botcepter.yaml", "config file path")
	url := fs.String("url", "", "chat bot base URL (overrides config)")
	plain := fs.Bool("plain", false, "line-based chat instead of the full-screen UI")
	if wantsHelp(args) {
		printCommandUsage(chatCommand, stdout)
		return ExitOK
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, log, ok := loadConfig(*configPath, stderr)
	if !ok {
		return ExitError
	}
	defer log.Sync()
	if *url != "" {
		cfg.Chat.BaseURL = *url
	}

	client, err := chat.NewClient(cfg.Chat.BaseURL, 30*time.Second, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error building chat client: %v\n", err)
		return ExitError
	}
	session := chat.NewSession(client)

	if *plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlainChat(session, os.Stdin, stdout, stderr)
	}

	program := tea.NewProgram(chatui.NewModel(session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(stderr, "Chat UI error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// runPlainChat is the fallback for non-TTY use: one line in, one reply out.
func runPlainChat(session *chat.Session, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "Failed to start chat: %v\n", err)
		return ExitError
	}
	printNewMessages(stdout, session, 0)
	seen := len(session.Messages())

	scanner := bufio.NewScanner(stdin)
	fmt.Fprint(stdout, "> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "/quit" {
			break
		}
		if text == "/new" {
			session.StartNewIteration()
			fmt.Fprintln(stdout, "(started a new iteration)")
			fmt.Fprint(stdout, "> ")
			continue
		}
		if value, ok := strings.CutPrefix(text, "/accuracy "); ok {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				fmt.Fprintln(stderr, "Usage: /accuracy <percent>")
			} else {
				session.SetAccuracy(parsed)
				fmt.Fprintf(stdout, "(accuracy set to %.0f%%)\n", parsed)
			}
			fmt.Fprint(stdout, "> ")
			continue
		}
		if err := session.Send(ctx, text); err != nil {
			fmt.Fprintf(stderr, "Send failed: %v\n", err)
		}
		printNewMessages(stdout, session, seen)
		seen = len(session.Messages())
		fmt.Fprint(stdout, "> ")
	}
	return ExitOK
}

func printNewMessages(w io.Writer, session *chat.Session, seen int) {
	messages := session.Messages()
	for _, msg := range messages[seen:] {
		label := "Bot"
		if msg.Sender == chat.SenderUser {
			label = "You"
		}
		fmt.Fprintf(w, "%s: %s\n", label, msg.Text)
		if len(msg.Objectives) > 0 {
			fmt.Fprintf(w, "     objectives: %s\n", strings.Join(msg.Objectives, ", "))
		}
		if len(msg.ToolCalls) > 0 {
			fmt.Fprintf(w, "     tools: %s\n", strings.Join(msg.ToolCalls, ", "))
		}
	}
}
