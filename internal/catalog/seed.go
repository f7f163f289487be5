package catalog

import (
	"shopng/internal/models"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedProducts returns the fixed store collection. In a real deployment
// this would come from a product API; the admin panel only ever reads it.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Wireless Bluetooth Headphones",
			Description: "Premium over-ear headphones with active noise cancellation, 30-hour battery life, and crystal-clear sound quality. Perfect for music lovers and remote workers who want to block out distractions.",
			Price:       price("79.99"),
			Image:       "https://picsum.photos/seed/headphones/400/400",
			Category:    "Electronics",
			Rating:      4.5,
			Stock:       15,
		},
		{
			ID:          2,
			Name:        "Smart Watch Pro",
			Description: "Feature-packed smartwatch with heart rate monitoring, GPS tracking, sleep analysis, and a stunning AMOLED display. Water-resistant up to 50 meters with 7-day battery life.",
			Price:       price("199.99"),
			Image:       "https://picsum.photos/seed/smartwatch/400/400",
			Category:    "Electronics",
			Rating:      4.2,
			Stock:       8,
		},
		{
			ID:          3,
			Name:        "Portable Bluetooth Speaker",
			Description: "Compact and powerful wireless speaker with 360-degree sound, IPX7 waterproofing, and 12-hour playback. Take your music anywhere — from the beach to the mountains.",
			Price:       price("49.99"),
			Image:       "https://picsum.photos/seed/speaker/400/400",
			Category:    "Electronics",
			Rating:      4.0,
			Stock:       22,
		},
		{
			ID:          4,
			Name:        "Classic Denim Jacket",
			Description: "Timeless denim jacket crafted from premium cotton. Features a comfortable regular fit, button closure, and multiple pockets. A wardrobe essential that goes with everything.",
			Price:       price("89.99"),
			Image:       "https://picsum.photos/seed/denim-jacket/400/400",
			Category:    "Clothing",
			Rating:      4.7,
			Stock:       12,
		},
		{
			ID:          5,
			Name:        "Running Sneakers Ultra",
			Description: "Lightweight performance running shoes with responsive cushioning and breathable mesh upper. Engineered for comfort on long runs with superior arch support.",
			Price:       price("129.99"),
			Image:       "https://picsum.photos/seed/sneakers/400/400",
			Category:    "Clothing",
			Rating:      4.6,
			Stock:       18,
		},
		{
			ID:          6,
			Name:        "Wool Blend Overcoat",
			Description: "Elegant wool blend overcoat perfect for cooler weather. Tailored silhouette with notch lapels, two-button closure, and fully lined interior for warmth and comfort.",
			Price:       price("159.99"),
			Image:       "https://picsum.photos/seed/overcoat/400/400",
			Category:    "Clothing",
			Rating:      4.3,
			Stock:       5,
		},
		{
			ID:          7,
			Name:        "The Art of Clean Code",
			Description: "A comprehensive guide to writing maintainable, readable, and efficient code. Covers best practices, design patterns, refactoring techniques, and real-world examples from industry experts.",
			Price:       price("34.99"),
			Image:       "https://picsum.photos/seed/coding-book/400/400",
			Category:    "Books",
			Rating:      4.8,
			Stock:       30,
		},
		{
			ID:          8,
			Name:        "Modern JavaScript Deep Dive",
			Description: "Master JavaScript from fundamentals to advanced concepts. Covers ES6+, async programming, closures, prototypes, modules, and practical patterns used in modern web development.",
			Price:       price("44.99"),
			Image:       "https://picsum.photos/seed/js-book/400/400",
			Category:    "Books",
			Rating:      4.9,
			Stock:       25,
		},
		{
			ID:          9,
			Name:        "Design Patterns Handbook",
			Description: "Learn the 23 classic design patterns with modern examples in TypeScript and JavaScript. Includes creational, structural, and behavioral patterns with UML diagrams and code samples.",
			Price:       price("39.99"),
			Image:       "https://picsum.photos/seed/patterns-book/400/400",
			Category:    "Books",
			Rating:      4.4,
			Stock:       20,
		},
		{
			ID:          10,
			Name:        "Ceramic Plant Pot Set",
			Description: "Set of 3 minimalist ceramic pots in varying sizes. Features drainage holes and matching saucers. Matte finish in neutral tones that complement any interior decor style.",
			Price:       price("29.99"),
			Image:       "https://picsum.photos/seed/plant-pots/400/400",
			Category:    "Home",
			Rating:      4.1,
			Stock:       35,
		},
		{
			ID:          11,
			Name:        "LED Desk Lamp",
			Description: "Adjustable LED desk lamp with 5 brightness levels and 3 color temperatures. Features a USB charging port, touch controls, and a flexible gooseneck for perfect positioning.",
			Price:       price("54.99"),
			Image:       "https://picsum.photos/seed/desk-lamp/400/400",
			Category:    "Home",
			Rating:      4.3,
			Stock:       14,
		},
		{
			ID:          12,
			Name:        "Scented Candle Collection",
			Description: "Luxury soy wax candle set with 4 seasonal fragrances: lavender, vanilla, cedarwood, and ocean breeze. Each candle provides up to 45 hours of clean, even burn time.",
			Price:       price("24.99"),
			Image:       "https://picsum.photos/seed/candles/400/400",
			Category:    "Home",
			Rating:      4.6,
			Stock:       40,
		},
	}
}
