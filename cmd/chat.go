package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the car repair assistant in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.kb.Load(ctx); err != nil {
			return fmt.Errorf("load knowledge base: %w", err)
		}
		a.sessions.Initialize()

		prompt := color.New(color.FgCyan, color.Bold)
		notice := color.New(color.FgYellow)
		source := color.New(color.FgGreen)

		fmt.Println("wrench chat (type /help for commands, /exit to quit)")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			prompt.Print("you> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}

			switch question {
			case "/exit", "/quit":
				fmt.Println("Goodbye.")
				return nil
			case "/clear":
				a.sessions.Clear()
				notice.Println("Conversation cleared.")
				continue
			case "/info":
				info := a.sessions.Info()
				fmt.Printf("Session:  %s\n", info.ID)
				fmt.Printf("Messages: %d\n", info.MessageCount)
				fmt.Printf("Duration: %s\n", info.Duration)
				continue
			case "/help":
				fmt.Println("Commands:")
				fmt.Println("  /clear  - clear conversation history")
				fmt.Println("  /info   - show session details")
				fmt.Println("  /exit   - quit chat")
				fmt.Println("  /help   - show this help")
				continue
			}

			if a.sessions.IsExpired() {
				notice.Println("Session expired after inactivity, starting a new one.")
				a.sessions.Reset()
			}

			// History is snapshotted before the question is recorded so the
			// prompt does not contain the question twice.
			history := a.sessions.History()
			a.sessions.AddUserMessage(question)

			reply := a.orch.Answer(ctx, question, history)

			fmt.Println()
			fmt.Println(reply.Text)
			source.Printf("[source: %s]\n\n", reply.Source)

			a.sessions.AddAssistantMessage(reply.Text)
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
