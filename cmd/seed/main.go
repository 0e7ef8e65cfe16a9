package main

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/spf13/cobra"

	"github.com/arkanhakim/livecart/pkg/config"
)

// Seeds the Firestore collections the API reads from. Meant for dev projects
// and the emulator, not production.
func main() {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed Firestore with baseline documents",
	}
	root.AddCommand(paymentMethodsCmd(), categoriesCmd(), demoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func client(ctx context.Context) (*firestore.Client, error) {
	cfg := config.Load()
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}
	return firestore.NewClient(ctx, cfg.ProjectID)
}

func paymentMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payment-methods",
		Short: "Write the default payment method set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := client(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			methods := []struct {
				id   string
				code string
				name string
				icon string
			}{
				{"pm-cod", "cash_on_delivery", "Cash on Delivery", "cod.png"},
				{"pm-bank", "bank_transfer", "Bank Transfer", "bank.png"},
				{"pm-wallet", "e_wallet", "E-Wallet", "wallet.png"},
			}
			for _, m := range methods {
				_, err := cl.Collection("paymentMethods").Doc(m.id).Set(ctx, map[string]any{
					"code": m.code,
					"name": m.name,
					"icon": m.icon,
				})
				if err != nil {
					return fmt.Errorf("seed payment method %s: %w", m.id, err)
				}
				fmt.Printf("payment method %s\n", m.id)
			}
			return nil
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Write the default product categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := client(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			categories := []struct {
				id    string
				name  string
				image string
			}{
				{"cat-fashion", "Fashion", "fashion.png"},
				{"cat-beauty", "Beauty", "beauty.png"},
				{"cat-food", "Food & Beverage", "food.png"},
				{"cat-electronics", "Electronics", "electronics.png"},
			}
			for _, c := range categories {
				_, err := cl.Collection("categories").Doc(c.id).Set(ctx, map[string]any{
					"name":  c.name,
					"image": c.image,
				})
				if err != nil {
					return fmt.Errorf("seed category %s: %w", c.id, err)
				}
				fmt.Printf("category %s\n", c.id)
			}
			return nil
		},
	}
}

func demoCmd() *cobra.Command {
	var vendorID string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write demo products and a live broadcast for one vendor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := client(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			products := []struct {
				id    string
				title string
				cat   string
				price string
			}{
				{"demo-tee", "Oversized Tee", "cat-fashion", "150000"},
				{"demo-serum", "Vitamin C Serum", "cat-beauty", "89000"},
				{"demo-coffee", "Cold Brew 1L", "cat-food", "45000"},
			}
			ids := make([]string, 0, len(products))
			for _, p := range products {
				_, err := cl.Collection("products").Doc(p.id).Set(ctx, map[string]any{
					"vendorId":    vendorID,
					"categoryId":  p.cat,
					"title":       p.title,
					"description": "Demo product",
					"image":       p.id + ".png",
					"price":       p.price,
					"createdAt":   firestore.ServerTimestamp,
				})
				if err != nil {
					return fmt.Errorf("seed product %s: %w", p.id, err)
				}
				ids = append(ids, p.id)
				fmt.Printf("product %s\n", p.id)
			}

			_, err = cl.Collection("lives").Doc("demo-live").Set(ctx, map[string]any{
				"vendorId":   vendorID,
				"title":      "Friday Flash Sale",
				"videoUrl":   "https://cdn.livecart.app/demo-live.m3u8",
				"productIds": ids,
				"createdAt":  firestore.ServerTimestamp,
			})
			if err != nil {
				return fmt.Errorf("seed live: %w", err)
			}
			fmt.Println("live demo-live")
			return nil
		},
	}
	cmd.Flags().StringVar(&vendorID, "vendor", "demo-vendor", "vendor id to attach demo docs to")
	return cmd
}
