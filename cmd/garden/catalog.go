package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the plant species",
	Long:  `Shows every species in the deck with its symbol, growth cost and effect.`,
	Run:   runCatalog,
}

func runCatalog(_ *cobra.Command, _ []string) {
	plants := garden.Catalog()

	nameLen := len("Species")
	for _, p := range plants {
		nameLen = max(nameLen, len(p.Name))
	}

	fmt.Println("Plant species:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-5s  %-24s  %s\n", "Sym", nameLen, "Species", "Base", "Grow cost", "Effect")
	fmt.Printf("  %-3s  %-*s  %-5s  %-24s  %s\n", "---", nameLen, "-------", "----", "---------", "------")
	for _, p := range plants {
		fmt.Printf("  %-3c  %-*s  %-5d  %-24s  %s\n", p.Symbol, nameLen, p.Name, p.BaseScore, p.Cost, p.Description)
	}

	fmt.Println()
	fmt.Println("Grown plants show in upper case, pests as X.")
}
