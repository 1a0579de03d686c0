package cmd

import (
	"fmt"
	"os"

	"wrench/internal/ingest"

	"github.com/spf13/cobra"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the car repair knowledge base",
}

var kbBuildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Rebuild the knowledge base from a document directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		docs, errs := ingest.LoadDirectory(args[0])
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "skipped: %v\n", e)
		}
		if len(docs) == 0 {
			return fmt.Errorf("no loadable documents in %s", args[0])
		}

		if err := a.kb.CreateFromDocuments(cmd.Context(), docs); err != nil {
			return err
		}
		n, err := a.kb.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d documents (%d chunks).\n", len(docs), n)
		return nil
	},
}

var kbAddCmd = &cobra.Command{
	Use:   "add <dir>",
	Short: "Add documents to the existing knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		docs, errs := ingest.LoadDirectory(args[0])
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "skipped: %v\n", e)
		}
		if len(docs) == 0 {
			return fmt.Errorf("no loadable documents in %s", args[0])
		}

		if err := a.kb.AddDocuments(cmd.Context(), docs); err != nil {
			return err
		}
		n, err := a.kb.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Added %d documents (%d chunks total).\n", len(docs), n)
		return nil
	},
}

var kbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the knowledge base and reseed the bundled samples",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.kb.Reset(cmd.Context()); err != nil {
			return err
		}
		n, err := a.kb.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Knowledge base reset to bundled samples (%d chunks).\n", n)
		return nil
	},
}

var kbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show knowledge base status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.kb.Exists() {
			fmt.Printf("No knowledge base at %s. It will be seeded from samples on first use.\n", a.cfg.VectorDBPath)
			return nil
		}
		n, err := a.kb.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Path:   %s\n", a.cfg.VectorDBPath)
		fmt.Printf("Chunks: %d\n", n)
		return nil
	},
}

func init() {
	kbCmd.AddCommand(kbBuildCmd, kbAddCmd, kbResetCmd, kbInfoCmd)
	rootCmd.AddCommand(kbCmd)
}
