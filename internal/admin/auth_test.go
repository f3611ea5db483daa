package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPassword_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := &Server{passwordHash: string(hash)}
	require.True(t, s.verifyPassword("s3cret"))
	require.False(t, s.verifyPassword("wrong"))
	require.False(t, s.verifyPassword(""))
}

func TestVerifyPassword_PlainFallback(t *testing.T) {
	s := &Server{password: "s3cret"}
	require.True(t, s.verifyPassword("s3cret"))
	require.False(t, s.verifyPassword("wrong"))

	// без настроенного пароля вход закрыт совсем
	empty := &Server{}
	require.False(t, empty.verifyPassword(""))
	require.False(t, empty.verifyPassword("anything"))
}

func TestVerifyPassword_HashBeatsPlain(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	require.NoError(t, err)

	s := &Server{passwordHash: string(hash), password: "plain"}
	require.True(t, s.verifyPassword("hashed"))
	require.False(t, s.verifyPassword("plain"))
}
