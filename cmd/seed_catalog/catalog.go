package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const columns = 10

// seedNamespace base de los UUID v5: el mismo nombre produce siempre el mismo id,
// así la migración es estable entre ejecuciones.
var seedNamespace = uuid.MustParse("6f1c2a4e-8b0d-4c55-9a57-3e2f8d9b1c70")

type catalogRow struct {
	Product           string
	Description       string
	Price             decimal.Decimal
	Value             decimal.Decimal
	Unit              string
	Category          string
	Manufacturer      string
	Country           string
	ManufacturingDate time.Time
	ExpiredDate       time.Time
}

// readCatalog decodifica el CSV Latin-1 y valida cada fila.
func readCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = columns
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("CSV vacío")
		}
		return nil, err
	}

	var rows []catalogRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (catalogRow, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row := catalogRow{
		Product:      rec[0],
		Description:  rec[1],
		Unit:         rec[4],
		Category:     rec[5],
		Manufacturer: rec[6],
		Country:      rec[7],
	}
	if row.Product == "" || row.Category == "" || row.Manufacturer == "" || row.Country == "" || row.Unit == "" {
		return row, errors.New("producto, unidad, categoría, fabricante y país son obligatorios")
	}
	var err error
	// Admite coma decimal ("4500,50").
	if row.Price, err = decimal.NewFromString(strings.ReplaceAll(rec[2], ",", ".")); err != nil || row.Price.IsNegative() {
		return row, fmt.Errorf("precio inválido: %q", rec[2])
	}
	if row.Value, err = decimal.NewFromString(strings.ReplaceAll(rec[3], ",", ".")); err != nil || row.Value.IsNegative() {
		return row, fmt.Errorf("cantidad inválida: %q", rec[3])
	}
	if row.ManufacturingDate, err = time.Parse("2006-01-02", rec[8]); err != nil {
		return row, fmt.Errorf("fecha de fabricación inválida: %q", rec[8])
	}
	if row.ExpiredDate, err = time.Parse("2006-01-02", rec[9]); err != nil {
		return row, fmt.Errorf("fecha de vencimiento inválida: %q", rec[9])
	}
	if row.ExpiredDate.Before(row.ManufacturingDate) {
		return row, errors.New("el vencimiento es anterior a la fabricación")
	}
	return row, nil
}

func seedID(kind, name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+name)).String()
}

// writeMigration escribe el script goose: primero las tablas referenciadas, luego productos.
func writeMigration(w io.Writer, rows []catalogRow) error {
	countries := make(map[string]struct{})
	categories := make(map[string]struct{})
	manufacturers := make(map[string]string) // fabricante -> país
	for _, r := range rows {
		countries[r.Country] = struct{}{}
		categories[r.Category] = struct{}{}
		manufacturers[r.Manufacturer] = r.Country
	}

	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed_catalog\n\n")
	b.WriteString("-- +goose Up\n")

	for _, name := range sortedKeys(countries) {
		fmt.Fprintf(&b, "INSERT INTO countries (id, name) VALUES ('%s', '%s') ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n",
			seedID("country", name), escapeSQL(name))
	}
	for _, name := range sortedKeys(categories) {
		fmt.Fprintf(&b, "INSERT INTO categories (id, name) VALUES ('%s', '%s') ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n",
			seedID("category", name), escapeSQL(name))
	}
	mnames := make([]string, 0, len(manufacturers))
	for name := range manufacturers {
		mnames = append(mnames, name)
	}
	sort.Strings(mnames)
	for _, name := range mnames {
		fmt.Fprintf(&b, "INSERT INTO manufacturers (id, name, country_id, address, email) VALUES ('%s', '%s', '%s', '', '') ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n",
			seedID("manufacturer", name), escapeSQL(name), seedID("country", manufacturers[name]))
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "INSERT INTO products (id, name, description, price, manufacturer_id, category_id, value, unit, manufacturing_date, expired_date)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %s, '%s', '%s', %s, '%s', '%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
			seedID("product", r.Manufacturer+"/"+r.Product), escapeSQL(r.Product), escapeSQL(r.Description),
			r.Price.StringFixed(2), seedID("manufacturer", r.Manufacturer), seedID("category", r.Category),
			r.Value.String(), escapeSQL(r.Unit),
			r.ManufacturingDate.Format("2006-01-02"), r.ExpiredDate.Format("2006-01-02"))
	}

	b.WriteString("\n-- +goose Down\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "DELETE FROM products WHERE id = '%s';\n", seedID("product", r.Manufacturer+"/"+r.Product))
	}
	for _, name := range mnames {
		fmt.Fprintf(&b, "DELETE FROM manufacturers WHERE id = '%s';\n", seedID("manufacturer", name))
	}
	for _, name := range sortedKeys(categories) {
		fmt.Fprintf(&b, "DELETE FROM categories WHERE id = '%s';\n", seedID("category", name))
	}
	for _, name := range sortedKeys(countries) {
		fmt.Fprintf(&b, "DELETE FROM countries WHERE id = '%s';\n", seedID("country", name))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
