package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/spf13/cobra"
)

var baseURL string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run catalog lookups against the database and print JSON",
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search products by substring over every column",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := ""
		if len(args) == 1 {
			q = args[0]
		}
		return withUseCase(cmd, func(uc product.UseCase) error {
			page, err := uc.SearchProducts(cmd.Context(), strings.TrimSpace(q), baseURL)
			if err != nil {
				return err
			}
			return printPage(page)
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one product by its identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUseCase(cmd, func(uc product.UseCase) error {
			rec, err := uc.GetProduct(cmd.Context(), args[0], baseURL)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("product %q not found", args[0])
			}
			return printJSON(rec)
		})
	},
}

var ringsCmd = &cobra.Command{
	Use:   "rings",
	Short: "List rings that are not engagement rings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUseCase(cmd, func(uc product.UseCase) error {
			page, err := uc.NormalRing(cmd.Context(), baseURL)
			if err != nil {
				return err
			}
			return printPage(page)
		})
	},
}

var bestSellersCmd = &cobra.Command{
	Use:   "best-sellers",
	Short: "List products flagged as best sellers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUseCase(cmd, func(uc product.UseCase) error {
			page, err := uc.BestSellers(cmd.Context(), baseURL)
			if err != nil {
				return err
			}
			return printPage(page)
		})
	},
}

func init() {
	queryCmd.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:5057/", "base URL used to build image links")
	queryCmd.AddCommand(searchCmd, getCmd, ringsCmd, bestSellersCmd)
}

func withUseCase(cmd *cobra.Command, fn func(uc product.UseCase) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	uc, err := newUseCase(db, cfg, appLogger)
	if err != nil {
		return err
	}
	return fn(uc)
}

func printPage(page *dto.CatalogPage) error {
	if err := printJSON(page); err != nil {
		return err
	}
	color.New(color.FgGreen, color.Bold).Fprintf(os.Stderr, "%d product(s)\n", page.Total)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
