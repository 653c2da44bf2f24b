package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("clave", jwt.Identity{Subject: "admin", Role: "admin", Name: "Administrador"}, "taller", 60)
	require.NoError(t, err)

	id, err := jwt.Parse("clave", token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{Subject: "admin", Role: "admin", Name: "Administrador"}, id)

	_, err = jwt.Parse("otra-clave", token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	token, err := jwt.Generate("clave", jwt.Identity{Subject: "admin"}, "taller", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("clave", token)
	assert.Error(t, err)
}

func TestMissingSecret(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{}, "", 1)
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
	_, err = jwt.Parse("", "x")
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
}
