package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altosdelrio/guest-concierge/internal/core"
)

func row(cells ...string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func fixedDirectory(rows ...[]interface{}) *Directory {
	return &Directory{fetch: func(_ context.Context) ([][]interface{}, error) {
		return rows, nil
	}}
}

var spanishHeaders = row("Apartamento", "Estado", "Red WiFi", "Clave", "Camas", "Piso", "Capacidad", "Lavadora")

func TestFindUnitMatchesActiveRow(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("101", "Activo", "Casa5", "abc123", "2 dobles", "3", "4", "Sí"),
	)

	unit, err := d.FindUnit(context.Background(), "101")
	require.NoError(t, err)

	assert.Equal(t, "101", unit.ApartmentID)
	assert.Equal(t, "Casa5", unit.WifiNetwork)
	assert.Equal(t, "abc123", unit.WifiPassword)
	assert.Equal(t, "2 dobles", unit.Beds)
	assert.Equal(t, "3", unit.Floor)
	assert.Equal(t, "4", unit.Capacity)
	assert.Equal(t, "Sí", unit.Laundry)
}

func TestFindUnitMatchingIsInsensitive(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("a-2 ", "Activo", "Casa2", "pw2"),
	)

	// Case, surrounding whitespace, and accents must not matter on either side.
	for _, query := range []string{"A-2", "a-2", " Á-2", "á-2  "} {
		unit, err := d.FindUnit(context.Background(), query)
		require.NoError(t, err, "query %q", query)
		assert.Equal(t, "Casa2", unit.WifiNetwork)
	}
}

func TestFindUnitMatchesAccentedCell(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row(" Á-2", "ACTIVA", "Casa2", "pw2"),
	)

	unit, err := d.FindUnit(context.Background(), "a-2")
	require.NoError(t, err)
	assert.Equal(t, "Casa2", unit.WifiNetwork)
}

func TestFindUnitSkipsInactiveRows(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("102", "Inactivo", "CasaVieja", "old"),
	)

	_, err := d.FindUnit(context.Background(), "102")
	assert.ErrorIs(t, err, core.ErrUnitNotFound)
}

func TestFindUnitFirstRowInSourceOrderWins(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("103", "Activo", "Primera", "pw1"),
		row("103", "Activo", "Segunda", "pw2"),
	)

	unit, err := d.FindUnit(context.Background(), "103")
	require.NoError(t, err)
	assert.Equal(t, "Primera", unit.WifiNetwork)
}

func TestFindUnitInactiveRowDoesNotShadowActiveOne(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("104", "Inactivo", "Vieja", "old"),
		row("104", "Activo", "Nueva", "new"),
	)

	unit, err := d.FindUnit(context.Background(), "104")
	require.NoError(t, err)
	assert.Equal(t, "Nueva", unit.WifiNetwork)
}

func TestHeaderSynonymsAndReordering(t *testing.T) {
	d := fixedDirectory(
		row("Status", "Password", "Unit", "Network"),
		row("active", "pw9", "901", "CasaNueve"),
	)

	unit, err := d.FindUnit(context.Background(), "901")
	require.NoError(t, err)
	assert.Equal(t, "CasaNueve", unit.WifiNetwork)
	assert.Equal(t, "pw9", unit.WifiPassword)
}

func TestHeaderPrefixMatch(t *testing.T) {
	d := fixedDirectory(
		row("Apartamento", "Estado", "Red WiFi de la casa", "Clave WiFi"),
		row("201", "Activo", "CasaDos", "pw201"),
	)

	unit, err := d.FindUnit(context.Background(), "201")
	require.NoError(t, err)
	assert.Equal(t, "CasaDos", unit.WifiNetwork)
	assert.Equal(t, "pw201", unit.WifiPassword)
}

func TestHeaderExactMatchPreferredOverPrefix(t *testing.T) {
	// "Apartamento Antiguo" is a prefix match for the apartment field, but the exact
	// "Apto" header must win even though it appears later.
	d := fixedDirectory(
		row("Apartamento Antiguo", "Apto", "Estado", "Red", "Clave"),
		row("999", "301", "Activo", "CasaTres", "pw301"),
	)

	unit, err := d.FindUnit(context.Background(), "301")
	require.NoError(t, err)
	assert.Equal(t, "CasaTres", unit.WifiNetwork)

	_, err = d.FindUnit(context.Background(), "999")
	assert.ErrorIs(t, err, core.ErrUnitNotFound)
}

func TestFindUnitWithoutStatusColumnTreatsRowsActive(t *testing.T) {
	d := fixedDirectory(
		row("Apartamento", "Red", "Clave"),
		row("401", "CasaCuatro", "pw401"),
	)

	unit, err := d.FindUnit(context.Background(), "401")
	require.NoError(t, err)
	assert.Equal(t, "CasaCuatro", unit.WifiNetwork)
}

func TestFindUnitShortRowsAndBlanksAreEmptyFields(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("501", "Activo", "Casa5"),
	)

	unit, err := d.FindUnit(context.Background(), "501")
	require.NoError(t, err)
	assert.Equal(t, "Casa5", unit.WifiNetwork)
	assert.Empty(t, unit.WifiPassword)
	assert.Empty(t, unit.Beds)
	assert.Empty(t, unit.Laundry)
}

func TestFindUnitNotFound(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("101", "Activo", "Casa5", "abc123"),
	)

	_, err := d.FindUnit(context.Background(), "777")
	assert.ErrorIs(t, err, core.ErrUnitNotFound)
}

func TestFindUnitEmptyTable(t *testing.T) {
	d := fixedDirectory(spanishHeaders)

	_, err := d.FindUnit(context.Background(), "101")
	assert.ErrorIs(t, err, core.ErrUnitNotFound)
}

func TestFindUnitFetchFailureIsLookupUnavailable(t *testing.T) {
	d := &Directory{fetch: func(_ context.Context) ([][]interface{}, error) {
		return nil, errors.New("googleapi: Error 503")
	}}

	_, err := d.FindUnit(context.Background(), "101")
	assert.ErrorIs(t, err, core.ErrLookupUnavailable)
}

func TestFindUnitMissingApartmentColumn(t *testing.T) {
	d := fixedDirectory(
		row("Estado", "Red", "Clave"),
		row("Activo", "Casa", "pw"),
	)

	_, err := d.FindUnit(context.Background(), "101")
	assert.ErrorIs(t, err, core.ErrLookupUnavailable)
}

func TestPreviewListsRowsWithoutPasswords(t *testing.T) {
	d := fixedDirectory(
		spanishHeaders,
		row("101", "Activo", "Casa5", "abc123"),
		row("102", "Inactivo", "CasaVieja", ""),
		row("103", "Activo", "CasaTres", "pw3"),
	)

	units, err := d.Preview(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "101", units[0].ApartmentID)
	assert.True(t, units[0].Active)
	assert.Equal(t, "Casa5", units[0].WifiNetwork)
	assert.True(t, units[0].HasPassword)

	assert.Equal(t, "102", units[1].ApartmentID)
	assert.False(t, units[1].Active)
	assert.False(t, units[1].HasPassword)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "a-2", normalizeKey(" Á-2 "))
	assert.Equal(t, "apto 2", normalizeKey("APTO   2"))
	assert.Equal(t, "", normalizeKey("   "))
}
