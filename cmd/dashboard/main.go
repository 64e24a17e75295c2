// Command dashboard renders a portfolio dashboard for one or more
// Polymarket wallets: open positions with liquidation estimates, risk
// classification, and summary totals.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/johan/polymarket-portfolio/internal/config"
	"github.com/johan/polymarket-portfolio/internal/dashboard"
	"github.com/johan/polymarket-portfolio/internal/portfolio"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	wallets := flag.String("wallets", "", "Comma-separated wallet addresses (overrides config)")
	sortKey := flag.String("sort", portfolio.SortByMarket, "Sort column")
	desc := flag.Bool("desc", false, "Sort descending")
	watch := flag.Bool("watch", false, "Keep rendering live from the order book feed")
	output := flag.String("output", "table", "Output format: table or json")
	showBuckets := flag.Bool("pnl-range", false, "Show liquidation PnL grouped by end date")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Config file not found, using defaults")
			cfg = config.DefaultConfig()
		} else {
			log.Fatalf("Error loading config: %v", err)
		}
	}

	if *wallets != "" {
		cfg.Wallets = nil
		for _, w := range strings.Split(*wallets, ",") {
			if w = strings.TrimSpace(w); w != "" {
				cfg.Wallets = append(cfg.Wallets, w)
			}
		}
	}

	if len(cfg.Wallets) == 0 {
		fmt.Println("Usage: dashboard --wallets <address>[,<address>...] [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	svc, err := dashboard.NewService(cfg)
	if err != nil {
		log.Fatalf("Error creating service: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Printf("\nReceived signal %v, shutting down...\n", sig)
		cancel()
	}()

	sortState := portfolio.SortState{Key: *sortKey, Ascending: !*desc}

	render := func(result *dashboard.Result) {
		portfolio.SortRows(result.Rows, sortState)
		if *output == "json" {
			printJSON(result)
			return
		}
		printResult(result, *showBuckets)
	}

	if *watch {
		if err := svc.Watch(ctx, render); err != nil && ctx.Err() == nil {
			log.Fatalf("Watch error: %v", err)
		}
		return
	}

	result, err := svc.Refresh(ctx)
	if err != nil {
		log.Fatalf("Refresh error: %v", err)
	}
	render(result)
}

func printJSON(result *dashboard.Result) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Printf("Error encoding result: %v", err)
	}
}

func printResult(result *dashboard.Result, showBuckets bool) {
	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	s := result.Summary
	fmt.Printf("\nTotal Risk: $%.2f   Total Value: $%.2f   Market Value: $%.2f   Total PnL: $%.2f\n\n",
		s.TotalRisk, s.TotalValue, s.MarketValue, s.TotalPnL)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MARKET\tOUTCOME\tSHARES\tRISK LEVEL\tCLOSE\tAVG\tCUR\tRISK\tLIQ 25%\tLIQ 50%\tLIQ 75%\tLIQ 100%\tREWARD\tVALUE")

	for _, row := range result.Rows {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\t%.0f¢\t%.0f¢\t$%.2f\t$%.2f\t$%.2f\t$%.2f\t$%.2f\t$%.2f\t$%.2f\n",
			truncateTitle(row.Market, 40),
			row.Outcome,
			row.Size,
			row.RiskLabel,
			row.ResolvedEndDate,
			row.AvgPrice*100,
			row.CurrentPrice*100,
			row.Risk,
			row.Estimate(0.25).EstimatedPnL,
			row.Estimate(0.50).EstimatedPnL,
			row.Estimate(0.75).EstimatedPnL,
			row.Estimate(1.00).EstimatedPnL,
			row.Reward,
			row.CurrentValue,
		)
	}
	w.Flush()

	if showBuckets {
		fmt.Println()
		bw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(bw, "END DATE\tRISK LEVEL\tLIQUIDATION PNL")
		for _, b := range portfolio.PnLByEndDate(result.Rows) {
			date := b.EndDate
			if date == "" {
				date = "(unknown)"
			}
			fmt.Fprintf(bw, "%s\t%s\t$%.2f\n", date, b.RiskLabel, b.LiquidationPnL)
		}
		bw.Flush()
	}
}

func truncateTitle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
