package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/papudim/sales-report/internal/business/sales"
	"github.com/papudim/sales-report/internal/platform/config"
	firestoreclient "github.com/papudim/sales-report/internal/platform/firestore"
	"github.com/papudim/sales-report/internal/repository"
)

// check-firestore prints how a single order document is read by the report.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: check-firestore <order-document-id>")
		os.Exit(2)
	}
	docID := os.Args[1]

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("dotenv: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	ctx := context.Background()
	client, _, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	orders := repository.NewOrderRepository(client, cfg.OrdersCollection)
	rec, raw, decodeErr := orders.Get(ctx, docID)
	if raw == nil && decodeErr != nil {
		log.Fatalf("Failed to get document: %v", decodeErr)
	}

	fmt.Printf("Document: %s/%s\n\n", cfg.OrdersCollection, docID)

	rawJSON, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal: %v", err)
	}
	fmt.Println("Raw document data:")
	fmt.Println(string(rawJSON))

	fmt.Printf("\n=== Decoded ===\n")
	if decodeErr != nil {
		fmt.Printf("decode error: %v\n", decodeErr)
		return
	}
	decoded, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal: %v", err)
	}
	fmt.Println(string(decoded))

	fmt.Printf("counted as paid: %v\n", rec.Paid())
	if date, ok := sales.DateFromOrderID(rec.ID); ok {
		fmt.Printf("revenue date: %s\n", date)
	} else {
		fmt.Printf("revenue date: none (id %q has no millisecond suffix)\n", rec.ID)
	}
}
