// Package sheets implements the unit directory on a Google Sheets table. The first row
// is headers, every following row is a unit record.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/altosdelrio/guest-concierge/internal/core"
)

// valuesFetcher fetches the raw cell grid for the configured range. Abstracted so
// tests can feed rows without a live Sheets service.
type valuesFetcher func(ctx context.Context) ([][]interface{}, error)

// Directory looks units up in a Google Sheets table. Every lookup fetches the sheet
// fresh: the operators edit it live and there is no cache to invalidate.
type Directory struct {
	fetch valuesFetcher
}

// NewDirectory builds a Sheets-backed directory reading the given range with the
// given service-account credentials (see ResolveCredentials).
func NewDirectory(ctx context.Context, spreadsheetID, readRange string, credentialsJSON []byte) (*Directory, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID is required but not set")
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Directory{
		fetch: func(ctx context.Context) ([][]interface{}, error) {
			resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
			if err != nil {
				return nil, err
			}
			return resp.Values, nil
		},
	}, nil
}

// Logical fields and their accepted header names, already in normalized form. The
// synonym list is ordered: for each field an exact header match is preferred, then a
// prefix match, so renamed or reordered columns keep resolving.
var fieldSynonyms = []struct {
	field    string
	synonyms []string
}{
	{"apartment", []string{"apartamento", "apto", "apartment", "unidad", "unit"}},
	{"status", []string{"estado", "status"}},
	{"network", []string{"red wifi", "red", "wifi", "network", "ssid"}},
	{"password", []string{"clave", "contrasena", "password", "pass"}},
	{"beds", []string{"camas", "cama", "beds", "bed"}},
	{"floor", []string{"piso", "floor"}},
	{"capacity", []string{"capacidad", "capacity", "personas"}},
	{"laundry", []string{"lavanderia", "lavadora", "laundry"}},
}

// FindUnit returns the first active row, in source order, whose apartment id matches
// case-, accent-, and whitespace-insensitively.
func (d *Directory) FindUnit(ctx context.Context, apartmentID string) (*core.UnitRecord, error) {
	rows, err := d.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrLookupUnavailable, err)
	}
	if len(rows) < 2 {
		return nil, core.ErrUnitNotFound
	}

	columns := resolveColumns(rows[0])
	aptCol, ok := columns["apartment"]
	if !ok {
		return nil, fmt.Errorf("%w: no apartment column in header row", core.ErrLookupUnavailable)
	}

	want := normalizeKey(apartmentID)
	for _, row := range rows[1:] {
		if normalizeKey(cell(row, aptCol)) != want {
			continue
		}
		if !rowActive(row, columns) {
			continue
		}
		return &core.UnitRecord{
			ApartmentID:  strings.TrimSpace(cell(row, aptCol)),
			WifiNetwork:  field(row, columns, "network"),
			WifiPassword: field(row, columns, "password"),
			Beds:         field(row, columns, "beds"),
			Floor:        field(row, columns, "floor"),
			Capacity:     field(row, columns, "capacity"),
			Laundry:      field(row, columns, "laundry"),
		}, nil
	}

	return nil, core.ErrUnitNotFound
}

// UnitSummary is the debug-preview projection of a directory row. Passwords are never
// exposed, only whether one is present.
type UnitSummary struct {
	ApartmentID string `json:"apartment_id"`
	Active      bool   `json:"active"`
	WifiNetwork string `json:"wifi_network"`
	HasPassword bool   `json:"has_password"`
}

// Preview returns up to limit parsed rows for the debug endpoint, inactive ones
// included.
func (d *Directory) Preview(ctx context.Context, limit int) ([]UnitSummary, error) {
	rows, err := d.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrLookupUnavailable, err)
	}
	if len(rows) < 2 {
		return []UnitSummary{}, nil
	}

	columns := resolveColumns(rows[0])
	aptCol, ok := columns["apartment"]
	if !ok {
		return nil, fmt.Errorf("%w: no apartment column in header row", core.ErrLookupUnavailable)
	}

	summaries := make([]UnitSummary, 0, limit)
	for _, row := range rows[1:] {
		if limit > 0 && len(summaries) >= limit {
			break
		}
		summaries = append(summaries, UnitSummary{
			ApartmentID: strings.TrimSpace(cell(row, aptCol)),
			Active:      rowActive(row, columns),
			WifiNetwork: field(row, columns, "network"),
			HasPassword: field(row, columns, "password") != "",
		})
	}
	return summaries, nil
}

// resolveColumns maps logical fields to column indexes by header name. Fields whose
// header cannot be found are simply absent from the map.
func resolveColumns(headers []interface{}) map[string]int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeKey(cellString(h))
	}

	columns := make(map[string]int, len(fieldSynonyms))
	for _, f := range fieldSynonyms {
		if idx, ok := matchColumn(normalized, f.synonyms); ok {
			columns[f.field] = idx
		}
	}
	return columns
}

// matchColumn walks the synonym list twice: all exact matches first, then prefix
// matches, so a "Red WiFi" header beats a bare "Red" column for the network field.
func matchColumn(headers []string, synonyms []string) (int, bool) {
	for _, syn := range synonyms {
		for i, h := range headers {
			if h == syn {
				return i, true
			}
		}
	}
	for _, syn := range synonyms {
		for i, h := range headers {
			if h != "" && strings.HasPrefix(h, syn) {
				return i, true
			}
		}
	}
	return 0, false
}

// rowActive reports whether a row is eligible for lookup. Rows qualify when their
// status starts with the "activ" token ("Activo", "activa", "ACTIVE"...). Tables
// without a status column treat every row as active.
func rowActive(row []interface{}, columns map[string]int) bool {
	statusCol, ok := columns["status"]
	if !ok {
		return true
	}
	return strings.HasPrefix(normalizeKey(cell(row, statusCol)), "activ")
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeKey lowercases, strips diacritics, and collapses whitespace so " Á-2 " and
// "a-2" compare equal.
func normalizeKey(s string) string {
	stripped, _, err := transform.String(stripAccents, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func cell(row []interface{}, idx int) string {
	if idx < len(row) {
		return cellString(row[idx])
	}
	return ""
}

func field(row []interface{}, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(cell(row, idx))
}
