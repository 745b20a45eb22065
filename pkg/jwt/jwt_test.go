package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Mercado-api/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-unit-tests"
	testCustomerID = "00000000-0000-0000-0000-000000000001"
	testSessionID  = "00000000-0000-0000-0000-0000000000aa"
)

func TestGenerateAndParse_ConStaff(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testCustomerID, testSessionID, true, "mercado-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testCustomerID, claims.CustomerID)
	assert.Equal(t, testSessionID, claims.SessionID)
	assert.True(t, claims.IsStaff)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testCustomerID, testSessionID, false, "mercado-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testCustomerID, testSessionID, false, "mercado-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", testCustomerID, testSessionID, false, "mercado-test", 60)
	assert.Error(t, err)
}

func TestParse_SinSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testCustomerID, "", false, "mercado-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token sin session_id no es válido")
}
