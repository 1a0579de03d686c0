package cmd

import (
	"fmt"
	"os"
	"strings"

	"wrench/internal/parts"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var flagAsk bool

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Identify a car part from an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}

		part := parts.Identify(data)

		color.New(color.Bold).Println(part.Name)
		fmt.Printf("Category:   %s\n", part.Category)
		fmt.Printf("Confidence: %.0f%%\n", part.Confidence*100)
		fmt.Println("Common issues:")
		for _, issue := range part.CommonIssues {
			fmt.Printf("  - %s\n", issue)
		}

		if !flagAsk {
			return nil
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.kb.Load(ctx); err != nil {
			return fmt.Errorf("load knowledge base: %w", err)
		}

		question := fmt.Sprintf("How do I inspect and replace a %s?", strings.ToLower(part.Name))
		reply := a.orch.Answer(ctx, question, nil)

		fmt.Println()
		fmt.Println(reply.Text)
		color.New(color.FgGreen).Printf("[source: %s]\n", reply.Source)
		return nil
	},
}

func init() {
	identifyCmd.Flags().BoolVar(&flagAsk, "ask", false, "ask the assistant for repair guidance on the identified part")
	rootCmd.AddCommand(identifyCmd)
}
