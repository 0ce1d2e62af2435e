package main

import (
	"fmt"
	"strings"

	"github.com/quilltools/pdfmeta"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pdfmeta",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pdfmeta version %s\n", strings.TrimSpace(pdfmeta.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
