package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const header = "producto;descripcion;precio;cantidad;unidad;categoria;fabricante;pais;fabricacion;vencimiento\n"

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestReadCatalog_DecodificaLatin1(t *testing.T) {
	data := latin1(t, header+"Leche entera;Bolsa;4500,50;1;l;Lácteos;Alpina;Colombia;2026-01-01;2026-01-20\n")

	rows, err := readCatalog(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lácteos", rows[0].Category)
	assert.Equal(t, "4500.5", rows[0].Price.String())
}

func TestReadCatalog_RechazaFechasInvertidas(t *testing.T) {
	data := latin1(t, header+"Pan;;3000;1;u;Panadería;Bimbo;México;2026-02-01;2026-01-01\n")

	_, err := readCatalog(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestReadCatalog_RechazaPrecioNegativo(t *testing.T) {
	data := latin1(t, header+"Pan;;-1;1;u;Panadería;Bimbo;México;2026-01-01;2026-01-05\n")

	_, err := readCatalog(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestWriteMigration_IdsEstablesYEscapado(t *testing.T) {
	data := latin1(t, header+
		"Leche;;4500;1;l;Lácteos;Alpina;Colombia;2026-01-01;2026-01-20\n"+
		"Kumis;Dulce d'leche;3200;1;l;Lácteos;Alpina;Colombia;2026-01-01;2026-01-15\n")
	rows, err := readCatalog(bytes.NewReader(data))
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, writeMigration(&first, rows))
	require.NoError(t, writeMigration(&second, rows))
	sql := first.String()

	assert.Equal(t, sql, second.String(), "la salida es determinista")
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "Dulce d''leche")
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO categories"), "las categorías repetidas se insertan una vez")
	assert.Contains(t, sql, "4500.00")
}
