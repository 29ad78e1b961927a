package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/jhoicas/bloodconnect-api/docs"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bloodconnect",
		Short: "Blood Connect API: donantes, pacientes y hospitales",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
