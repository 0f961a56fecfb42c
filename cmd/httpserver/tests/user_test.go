//go:build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/clientrepo"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/integrationtest"
	"github.com/go-petr/bookstore/internal/test"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

type userData struct {
	User domain.UserWihtoutPassword `json:"user,omitempty"`
}

func postJSON(t *testing.T, path string, body gin.H) (int, web.Response, userData) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var data userData
	resp := web.Response{Data: &data}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp), "decoding %s response", path)

	return w.Code, resp, data
}

func registration() gin.H {
	return gin.H{
		"username": "firstuser",
		"password": "qwerty",
		"fullname": "Foo Boo",
		"email":    "foo@boo.email",
	}
}

func TestCreateUserAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	body := registration()

	code, resp, data := postJSON(t, "/users", body)
	require.Equal(t, http.StatusOK, code, resp.Error)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	want := domain.UserWihtoutPassword{
		Username:  "firstuser",
		FullName:  "Foo Boo",
		Email:     "foo@boo.email",
		CreatedAt: time.Now(),
	}
	if diff := cmp.Diff(want, data.User, cmpopts.EquateApproxTime(time.Minute)); diff != "" {
		t.Errorf("POST /users user mismatch (-want +got):\n%s", diff)
	}

	// Registration opens an empty wallet.
	client, err := clientrepo.NewRepoPGS(server.DB).Get(context.Background(), "firstuser")
	require.NoError(t, err)
	require.Equal(t, "0", client.Money)
}

func TestCreateUserAPIRejects(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	seeded := test.SeedUser(t, server.DB)

	testCases := []struct {
		name           string
		mutate         func(body gin.H)
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "InvalidUsername",
			mutate:         func(body gin.H) { body["username"] = "user&%" },
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Username accepts only alphanumeric characters",
		},
		{
			name:           "ShortPassword",
			mutate:         func(body gin.H) { body["password"] = "short" },
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 6",
		},
		{
			name:           "InvalidEmail",
			mutate:         func(body gin.H) { body["email"] = "user%email.com" },
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email must contain a valid email",
		},
		{
			name:           "MissingFullname",
			mutate:         func(body gin.H) { delete(body, "fullname") },
			wantStatusCode: http.StatusBadRequest,
			wantError:      "FullName field is required",
		},
		{
			name:           "TakenUsername",
			mutate:         func(body gin.H) { body["username"] = seeded.Username },
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name:           "TakenEmail",
			mutate:         func(body gin.H) { body["email"] = seeded.Email },
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrEmailALreadyExists.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body := registration()
			tc.mutate(body)

			code, resp, _ := postJSON(t, "/users", body)
			require.Equal(t, tc.wantStatusCode, code)
			require.Equal(t, tc.wantError, resp.Error)
			require.Empty(t, resp.AccessToken)
		})
	}
}

func TestLoginUserAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	code, resp, _ := postJSON(t, "/users", registration())
	require.Equal(t, http.StatusOK, code, resp.Error)

	testCases := []struct {
		name           string
		username       string
		password       string
		wantStatusCode int
		wantError      string
	}{
		{name: "OK", username: "firstuser", password: "qwerty", wantStatusCode: http.StatusOK},
		{
			name:           "WrongPassword",
			username:       "firstuser",
			password:       "qwerty1",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongPassword.Error(),
		},
		{
			name:           "UnknownUser",
			username:       "seconduser",
			password:       "qwerty",
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			code, resp, data := postJSON(t, "/users/login", gin.H{"username": tc.username, "password": tc.password})
			require.Equal(t, tc.wantStatusCode, code)
			require.Equal(t, tc.wantError, resp.Error)

			if tc.wantStatusCode == http.StatusOK {
				require.NotEmpty(t, resp.AccessToken)
				require.NotEmpty(t, resp.RefreshToken)
				require.Equal(t, tc.username, data.User.Username)
			}
		})
	}
}
