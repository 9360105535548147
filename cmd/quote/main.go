package main

import (
	"fmt"
	"os"

	"github.com/primowater/deliveryform/internal/pricing"
)

func main() {
	if len(os.Args) != 3 && len(os.Args) != 5 {
		fmt.Println("Usage: go run cmd/quote/main.go <water-type> <water-qty> [<dispenser-type> <dispenser-qty>]")
		fmt.Println("Example: go run cmd/quote/main.go \"Alkaline Water\" 3 \"Coffee Dispenser\" 1")
		fmt.Println()
		fmt.Println("Water types:")
		for _, e := range pricing.WaterOptions() {
			fmt.Printf("  %-20s %s\n", e.Product, pricing.FormatUSD(e.UnitPrice))
		}
		fmt.Println("Dispenser types:")
		for _, e := range pricing.DispenserOptions() {
			fmt.Printf("  %-20s %s\n", e.Product, pricing.FormatUSD(e.UnitPrice))
		}
		os.Exit(1)
	}

	waterType := pricing.Product(os.Args[1])
	waterQty := pricing.ParseQuantity(os.Args[2])

	var dispenserType pricing.Product
	var dispenserQty int
	if len(os.Args) == 5 {
		dispenserType = pricing.Product(os.Args[3])
		dispenserQty = pricing.ParseQuantity(os.Args[4])
	}

	if !waterType.IsWater() {
		fmt.Fprintf(os.Stderr, "Unknown water type %q, it will be priced at $0.00\n", waterType)
	}
	if dispenserType != "" && !dispenserType.IsDispenserSelection() {
		fmt.Fprintf(os.Stderr, "Unknown dispenser type %q, it will be priced at $0.00\n", dispenserType)
	}

	summary := pricing.Calculate(waterType, waterQty, dispenserType, dispenserQty)
	lines := summary.Lines()

	fmt.Println(lines.Water)
	fmt.Printf("  %s\n", pricing.FormatUSD(summary.WaterLine()))
	fmt.Println(lines.Dispenser)
	fmt.Printf("  %s\n", pricing.FormatUSD(summary.DispenserLine()))
	fmt.Println(lines.Total)
}
