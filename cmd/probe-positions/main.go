// Command probe-positions is a CLI tool for exploring the Polymarket Data
// API positions endpoint.
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

	"github.com/johan/polymarket-portfolio/internal/dataapi"
)

func main() {
	wallet := flag.String("wallet", "", "Wallet address to fetch positions for")
	all := flag.Bool("all", false, "Include redeemable (resolved) positions")
	sizeThreshold := flag.Float64("size-threshold", 0, "Minimum position size to include")
	limit := flag.Int("limit", 0, "Maximum number of positions")
	output := flag.String("output", "table", "Output format: table or json")
	timeout := flag.Duration("timeout", 30*time.Second, "Request timeout")

	flag.Parse()

	if *wallet == "" {
		fmt.Println("Usage: probe-positions --wallet <address> [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  probe-positions --wallet 0xa5f8d182...")
		fmt.Println("  probe-positions --wallet 0xa5f8d182... --all --output json")
		os.Exit(1)
	}

	client := dataapi.NewClient(&http.Client{Timeout: *timeout})
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	positions, err := client.FetchPositions(ctx, *wallet, &dataapi.Filter{
		SizeThreshold: *sizeThreshold,
		Limit:         *limit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching positions: %v\n", err)
		os.Exit(1)
	}

	if !*all {
		positions = dataapi.OpenPositions(positions)
	}

	if *output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(positions)
		return
	}

	fmt.Printf("%d positions for %s\n\n", len(positions), *wallet)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MARKET\tOUTCOME\tSIZE\tAVG\tCUR\tINITIAL\tVALUE\tPNL%\tEND DATE")
	for _, p := range positions {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.2f\t%.2f\t$%.2f\t$%.2f\t%.2f%%\t%s\n",
			truncate(p.Title, 50), p.Outcome, p.Size, p.AvgPrice, p.CurPrice,
			p.InitialValue, p.CurrentValue, p.PercentPnL, p.EndDate)
	}
	w.Flush()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
