package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	tok, err := Generate("secreto", "u1", RoleCashier, "taller-api", 5)
	require.NoError(t, err)

	uid, role, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, RoleCashier, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secreto", "u1", RoleAdmin, "taller-api", 5)
	require.NoError(t, err)
	_, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("secreto", "u1", RoleAdmin, "taller-api", -1)
	require.NoError(t, err)
	_, _, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := Generate("", "u1", RoleAdmin, "x", 5)
	assert.Error(t, err)
}
