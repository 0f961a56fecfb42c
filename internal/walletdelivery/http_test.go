package walletdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/middleware"
	"github.com/go-petr/bookstore/internal/permission"
	"github.com/go-petr/bookstore/internal/test"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/moneypkg"
	"github.com/go-petr/bookstore/pkg/randompkg"
	"github.com/go-petr/bookstore/pkg/tokenpkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var tokenMaker tokenpkg.Maker

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("money", moneypkg.ValidMoney); err != nil {
			panic(err)
		}
	}

	var err error

	tokenMaker, err = tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func newServer(h *Handler) *gin.Engine {
	server := gin.New()
	group := server.Group("/profile",
		middleware.Identify(tokenMaker),
		middleware.Authorize(permission.Authenticated, nil),
	)
	group.GET("", h.Profile)
	group.POST("/topup", h.TopUp)

	return server
}

func TestTopUp(t *testing.T) {
	username := randompkg.Owner()

	authorized := func(t *testing.T, r *http.Request) error {
		return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, username, false, time.Minute)
	}

	testCases := []struct {
		name           string
		body           gin.H
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
		wantMessage    string
	}{
		{
			name:      "OK",
			body:      gin.H{"amount": "25.50"},
			setupAuth: authorized,
			buildStubs: func(s *MockService) {
				s.EXPECT().
					TopUp(gomock.Any(), username, "25.50").
					Times(1).
					Return(domain.TopUpTxResult{
						Client: domain.Client{Username: username, Money: "35.50"},
						Entry:  domain.Entry{Username: username, Amount: "25.50", Kind: domain.EntryTopUp},
					}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Successfully added 25.50 to your balance",
		},
		{
			name:      "NegativeAmount",
			body:      gin.H{"amount": "-3"},
			setupAuth: authorized,
			buildStubs: func(s *MockService) {
				s.EXPECT().
					TopUp(gomock.Any(), username, "-3").
					Times(1).
					Return(domain.TopUpTxResult{}, domain.ErrNonPositiveAmount)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "only positive amounts allowed",
		},
		{
			name:      "NotADecimal",
			body:      gin.H{"amount": "lots"},
			setupAuth: authorized,
			buildStubs: func(s *MockService) {
				s.EXPECT().TopUp(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a decimal amount",
		},
		{
			name:      "MissingAmount",
			body:      gin.H{},
			setupAuth: authorized,
			buildStubs: func(s *MockService) {
				s.EXPECT().TopUp(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount field is required",
		},
		{
			name: "NoAuthorization",
			body: gin.H{"amount": "1"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(s *MockService) {
				s.EXPECT().TopUp(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      errorspkg.ErrUnauthenticated.Error(),
		},
		{
			name:      "MissingClient",
			body:      gin.H{"amount": "1"},
			setupAuth: authorized,
			buildStubs: func(s *MockService) {
				s.EXPECT().
					TopUp(gomock.Any(), username, "1").
					Times(1).
					Return(domain.TopUpTxResult{}, domain.ErrClientNotFound)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newServer(NewHandler(service))

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/profile/topup", bytes.NewReader(body))
			require.NoError(t, err)
			require.NoError(t, tc.setupAuth(t, req))

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res web.Response
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, tc.wantError, res.Error)
			require.Equal(t, tc.wantMessage, res.Message)
		})
	}
}

func TestProfile(t *testing.T) {
	username := randompkg.Owner()
	profile := domain.Profile{
		Client:  test.RandomClient(username, "12.00"),
		Books:   []domain.Book{test.RandomBook("3.00")},
		Entries: []domain.Entry{{ID: 1, Username: username, Amount: "15.00", Kind: domain.EntryTopUp}},
	}

	testCases := []struct {
		name           string
		authenticated  bool
		buildStubs     func(s *MockService)
		wantStatusCode int
	}{
		{
			name:          "OK",
			authenticated: true,
			buildStubs: func(s *MockService) {
				s.EXPECT().Profile(gomock.Any(), username).Times(1).Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "Anonymous",
			buildStubs: func(s *MockService) {
				s.EXPECT().Profile(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:          "MissingClient",
			authenticated: true,
			buildStubs: func(s *MockService) {
				s.EXPECT().Profile(gomock.Any(), username).Times(1).Return(domain.Profile{}, domain.ErrClientNotFound)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newServer(NewHandler(service))

			req, err := http.NewRequest(http.MethodGet, "/profile", nil)
			require.NoError(t, err)

			if tc.authenticated {
				err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, username, false, time.Minute)
				require.NoError(t, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			var res struct {
				Data domain.Profile `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

			if diff := cmp.Diff(profile, res.Data); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
