package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/tutor"
)

var (
	chatRules   string
	chatPolicy  string
	chatDB      string
	chatVerbose bool
)

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatRules, "rules", "", "Path to rules YAML (default ~/.edututor/rules.yaml)")
	chatCmd.Flags().StringVar(&chatPolicy, "policy", "", "Path to policy YAML (default ~/.edututor/policy.yaml)")
	chatCmd.Flags().StringVar(&chatDB, "db", "", "Path to conversation database (default ~/.edututor/edututor.db)")
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "Log pipeline decisions to stderr")
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive tutoring session",
	Long: "Reads questions line by line from stdin. Edits to the rules or\n" +
		"policy files are picked up without restarting.\n\n" +
		"Prefix a line with /concept, /error, or /explain_code to hint the\n" +
		"intent. Type /quit or press Ctrl-D to exit.",
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	tut, st, err := buildTutor(chatRules, chatPolicy, chatDB, chatVerbose)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Hot-reload config edits while the session runs. Missing files are
	// fine; the session just runs on defaults.
	if reloader, err := tutor.NewReloader(tut, chatRules, chatPolicy); err == nil {
		go func() {
			if err := reloader.Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "config watcher stopped: %v\n", err)
			}
		}()
	}

	fmt.Fprintf(os.Stderr, "edututor chat (provider: %s, session: %s)\n", tut.Provider().Name(), tut.SessionID())
	fmt.Fprintln(os.Stderr, "Ask a question, or /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		text, hint := parseHintPrefix(line)
		res := tut.HandleUserMessage(ctx, text, hint)
		if !res.Allowed {
			fmt.Printf("[refused: %s]\n", res.Reason)
		}
		fmt.Println(res.Content)
		fmt.Println()
	}
	return scanner.Err()
}

// parseHintPrefix splits a leading /intent directive off a chat line.
func parseHintPrefix(line string) (string, intent.Intent) {
	if !strings.HasPrefix(line, "/") {
		return line, intent.None
	}
	head, rest, _ := strings.Cut(line, " ")
	if it := intent.Parse(strings.TrimPrefix(head, "/")); it != intent.None {
		return strings.TrimSpace(rest), it
	}
	return line, intent.None
}
