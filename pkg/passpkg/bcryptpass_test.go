package passpkg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	hashed, err := Hash("secret")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		password string
		hashed   string
		wantErr  error
	}{
		{name: "OK", password: "secret", hashed: hashed},
		{name: "WrongPassword", password: "secret1", hashed: hashed, wantErr: bcrypt.ErrMismatchedHashAndPassword},
		{name: "EmptyPassword", password: "", hashed: hashed, wantErr: bcrypt.ErrMismatchedHashAndPassword},
		{name: "MalformedHash", password: "secret", hashed: "plain", wantErr: bcrypt.ErrHashTooShort},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Check(tc.password, tc.hashed)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestHashSalted(t *testing.T) {
	t.Parallel()

	first, err := Hash("secret")
	require.NoError(t, err)

	second, err := Hash("secret")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, Check("secret", second))
}

func TestHashTooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'x'
	}

	_, err := Hash(string(long))
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}
