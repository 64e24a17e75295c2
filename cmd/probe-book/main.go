// Command probe-book is a CLI tool for exploring the CLOB order book of a
// single token: normalized levels plus liquidation estimates for a
// hypothetical position size.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/johan/polymarket-portfolio/internal/book"
	"github.com/johan/polymarket-portfolio/internal/clob"
	"github.com/johan/polymarket-portfolio/internal/liquidation"
	"github.com/johan/polymarket-portfolio/internal/portfolio"
)

func main() {
	token := flag.String("token", "", "Token ID to fetch order book")
	size := flag.Float64("size", 0, "Position size to estimate liquidation for")
	midpoint := flag.Bool("midpoint", false, "Fetch midpoint price only")
	spread := flag.Bool("spread", false, "Fetch spread only")
	output := flag.String("output", "table", "Output format: table or json")
	timeout := flag.Duration("timeout", 30*time.Second, "Request timeout")

	flag.Parse()

	if *token == "" {
		fmt.Println("Usage: probe-book --token <token_id> [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  probe-book --token 83955612...")
		fmt.Println("  probe-book --token 83955612... --size 100")
		fmt.Println("  probe-book --token 83955612... --midpoint")
		os.Exit(1)
	}

	client := clob.NewClient(&http.Client{Timeout: *timeout})
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *midpoint {
		mid, err := client.FetchMidpoint(ctx, *token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching midpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Midpoint: %s\n", mid)
		return
	}

	if *spread {
		spr, err := client.FetchSpread(ctx, *token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching spread: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Spread: %s\n", spr)
		return
	}

	snapshot, err := client.FetchBook(ctx, *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching book: %v\n", err)
		os.Exit(1)
	}

	levels, err := book.Normalize(snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error normalizing book: %v\n", err)
		os.Exit(1)
	}

	if *output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(levels)
		return
	}

	fmt.Printf("Book for token %s (market %s)\n\n", shorten(*token), snapshot.Market)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SIDE\tPRICE\tSIZE\tCUM VALUE")
	for _, l := range levels {
		fmt.Fprintf(w, "%s\t%.3f\t%.2f\t$%.2f\n", l.Side, l.Price, l.Size, l.CumulativeValue)
	}
	w.Flush()

	if *size > 0 {
		printEstimates(*size, levels)
	}
}

func printEstimates(size float64, levels []book.Level) {
	bids := book.BestBids(levels)

	fmt.Printf("\nLiquidation estimates for %.1f shares:\n\n", size)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FRACTION\tTARGET\tEXIT PRICE\tPROCEEDS\tUNFILLED")
	for _, fraction := range portfolio.DefaultFractions {
		est := liquidation.EstimateSale(size, bids, fraction)
		exit := est.ExitPrice
		if fraction == 1.0 {
			exit = liquidation.AveragePrice(est.Proceeds, size)
		}
		fmt.Fprintf(w, "%.0f%%\t%.1f\t%.3f\t$%.2f\t%.1f\n",
			fraction*100, est.TargetShares, exit, est.Proceeds, est.Unfilled)
	}
	w.Flush()
}

func shorten(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:20] + "..."
}
