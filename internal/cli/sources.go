package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/registry"
)

var (
	sourcesDomain string
	sourcesType   string

	addDomain      string
	addName        string
	addURL         string
	addType        string
	addCredibility float64
	addAccess      string
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the trusted source catalogue",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trusted sources, optionally filtered by domain or type",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.New(model.DefaultConfig())
		if err != nil {
			return err
		}

		var sources []model.Source
		switch {
		case sourcesDomain != "":
			sources = reg.SourcesForDomain(sourcesDomain)
		case sourcesType != "":
			sources = reg.SourcesByType(model.SourceType(sourcesType))
		default:
			sources = reg.AllSources()
		}

		for _, s := range sources {
			fmt.Printf("%-28s %-13s %5.1f  %s  [%s]\n",
				s.Name, s.Type, s.Credibility, s.URL, strings.Join(s.Domains, ", "))
		}
		fmt.Printf("%d source(s)\n", len(sources))
		return nil
	},
}

var sourcesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalogue statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.New(model.DefaultConfig())
		if err != nil {
			return err
		}
		stats := reg.Statistics()

		fmt.Printf("Total sources:     %d\n", stats.TotalSources)
		fmt.Printf("Mean credibility:  %.1f\n", stats.MeanCredibility)
		fmt.Println("By type:")
		for typ, n := range stats.ByType {
			fmt.Printf("  %-13s %d\n", typ, n)
		}
		fmt.Println("By domain:")
		for dom, n := range stats.ByDomain {
			fmt.Printf("  %-13s %d\n", dom, n)
		}
		return nil
	},
}

// sourcesAddCmd validates a custom source and prints the config snippet
// that registers it permanently. The catalogue itself lives in-process;
// persistence belongs to the config file.
var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Validate a custom source and emit its config snippet",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.New(model.DefaultConfig())
		if err != nil {
			return err
		}
		if err := reg.AddCustomSource(addDomain, addName, addURL,
			model.SourceType(addType), addCredibility, model.AccessMethod(addAccess)); err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}

		snippet := map[string]interface{}{
			"source_overrides": map[string]interface{}{
				"extra": []model.Source{{
					Name:        addName,
					URL:         addURL,
					Type:        model.SourceType(addType),
					Credibility: addCredibility,
					Domains:     []string{addDomain},
					Access:      model.AccessMethod(addAccess),
				}},
			},
		}
		out, err := yaml.Marshal(snippet)
		if err != nil {
			return err
		}
		fmt.Println("Source is valid. Add to ~/.veracity/config.yaml:")
		fmt.Println()
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesStatsCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)

	sourcesListCmd.Flags().StringVar(&sourcesDomain, "domain", "", "filter by domain")
	sourcesListCmd.Flags().StringVar(&sourcesType, "type", "", "filter by source type")

	sourcesAddCmd.Flags().StringVar(&addDomain, "domain", "general", "domain the source is authoritative for")
	sourcesAddCmd.Flags().StringVar(&addName, "name", "", "display name")
	sourcesAddCmd.Flags().StringVar(&addURL, "url", "", "base URL (stable key)")
	sourcesAddCmd.Flags().StringVar(&addType, "type", "", "source type (academic, news, government, encyclopedia)")
	sourcesAddCmd.Flags().Float64Var(&addCredibility, "credibility", 0, "credibility score 0-100")
	sourcesAddCmd.Flags().StringVar(&addAccess, "access", "manual", "access method (api, scrape, manual)")
	_ = sourcesAddCmd.MarkFlagRequired("name")
	_ = sourcesAddCmd.MarkFlagRequired("url")
	_ = sourcesAddCmd.MarkFlagRequired("type")
	_ = sourcesAddCmd.MarkFlagRequired("credibility")
}
