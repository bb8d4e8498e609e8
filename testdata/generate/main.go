// Command generate produces the messy sales export used by the tests and
// the README walkthrough. The output is deterministic (fixed seed) and is
// written in Windows-1252 to exercise the encoding fallback on read.
package main

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	regions := []string{"North", "South", "East", "West"}
	products := []struct {
		id    string
		name  string
		price float64
	}{
		{"P101", "Laptop Pro 15\"", 45000},
		{"P102", "Wireless Mouse", 500},
		{"P103", "Mechanical Keyboard", 2500},
		{"P104", "USB-C Hub, 7-port", 1800},
		{"P105", "Monitor 27\"", 15000},
		{"P106", "Webcam HD", 3200},
		{"P107", "Headset Pro", 4500},
		{"P108", "Café Desk Lamp", 1200},
	}

	var b strings.Builder
	b.WriteString("TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n")

	for i := 1; i <= 120; i++ {
		p := products[rng.Intn(len(products))]
		day := rng.Intn(28)
		date := startDate.AddDate(0, 0, day).Format("2006-01-02")

		txnID := fmt.Sprintf("T%04d", i)
		custID := fmt.Sprintf("C%03d", rng.Intn(40)+1)
		region := regions[rng.Intn(len(regions))]
		qty := rng.Intn(10) + 1

		// Sprinkle in the defects the pipeline has to survive.
		switch {
		case i%17 == 0:
			// Zero or negative quantity, rejected during validation.
			qty = -rng.Intn(3)
		case i%23 == 0:
			// Wrong ID prefixes, rejected during validation.
			txnID = strings.Replace(txnID, "T", "X", 1)
		case i%29 == 0:
			// Missing region, rejected during validation.
			region = ""
		case i%31 == 0:
			// Short row, dropped during parsing.
			b.WriteString(fmt.Sprintf("%s|%s|%s\n", txnID, date, p.id))
			continue
		}

		price := formatPrice(p.price)
		b.WriteString(fmt.Sprintf("%s|%s|%s|%s|%d|%s|%s|%s\n",
			txnID, date, p.id, p.name, qty, price, custID, region))

		if i%41 == 0 {
			b.WriteString("\n")
		}
	}

	encoded, err := encodeCP1252(b.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}

	outPath := filepath.Join(baseDir, "sales_data.txt")
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", outPath)
}

// formatPrice renders large prices with thousands separators, the way the
// upstream export does.
func formatPrice(v float64) string {
	if v < 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	whole := int(v)
	return fmt.Sprintf("%d,%03d", whole/1000, whole%1000)
}

func encodeCP1252(s string) ([]byte, error) {
	var buf bytes.Buffer
	w := charmap.Windows1252.NewEncoder().Writer(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func findTestdataDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		candidate := filepath.Join(dir, "testdata")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
