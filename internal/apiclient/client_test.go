package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowpilot/portal-go/internal/model"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) (*Client, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c, &hits
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestLoginCarriesSessionCookie(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body.Email)
		assert.Equal(t, "Secret123", body.Senha)

		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
		writeRaw(w, http.StatusOK, `{"success":true,"data":{"message":"ok"}}`)
	})
	r.Get("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("sid")
		if err != nil || cookie.Value != "abc" {
			writeRaw(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"not signed in"}}`)
			return
		}
		writeRaw(w, http.StatusOK, `{"success":true,"data":{"id":"u1","email":"a@b.com","nome":"Ana"}}`)
	})

	c, _ := newTestClient(t, r)
	ctx := context.Background()

	login := c.Login(ctx, model.LoginRequest{Email: "a@b.com", Senha: "Secret123"})
	require.True(t, login.Success)
	require.NotNil(t, login.Data)
	assert.Nil(t, login.Error)

	me := c.Me(ctx)
	require.True(t, me.Success, "probe should carry the cookie set by login: %+v", me.Error)
	assert.Equal(t, "u1", me.Data.ID)
}

func TestNonSuccessStatusKeepsBackendEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusBadRequest, `{"success":false,"error":{"code":"BAD_REQUEST","message":"invalid credentials","details":[{"field":"senha","message":"wrong"}]}}`)
	}))

	resp := c.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Senha: "wrong"})

	require.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, model.CodeBadRequest, resp.Error.Code)
	assert.Equal(t, "invalid credentials", resp.Error.Message)
	assert.Equal(t, []model.FieldError{{Field: "senha", Message: "wrong"}}, resp.Error.Details)
}

func TestSuccessFlagIsAuthoritativeOverStatus(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusAccepted, `{"success":true,"data":{"id":"w1","name":"Acme","slug":"acme"}}`)
	}))

	resp := c.GetWorkspace(context.Background())

	require.True(t, resp.Success)
	assert.Equal(t, "acme", resp.Data.Slug)
}

func TestConnectionRefusedYieldsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	resp := c.Me(context.Background())

	require.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, model.CodeNetworkError, resp.Error.Code)
	assert.Equal(t, model.NetworkErrorMessage, resp.Error.Message)
}

func TestMalformedBodiesYieldNetworkError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "html error page", body: `<html>502 Bad Gateway</html>`},
		{name: "empty body", body: ``},
		{name: "failure without error", body: `{"success":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeRaw(w, http.StatusBadGateway, tt.body)
			}))

			resp := c.ListPlans(context.Background())

			require.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, model.CodeNetworkError, resp.Error.Code)
		})
	}
}

func TestTimeoutYieldsNetworkError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		writeRaw(w, http.StatusOK, `{"success":true,"data":{}}`)
	}), WithTimeout(50*time.Millisecond))

	resp := c.GetSubscription(context.Background())

	require.NotNil(t, resp.Error)
	assert.Equal(t, model.CodeNetworkError, resp.Error.Code)
}

func TestEnvelopeInvariantAcrossEndpoints(t *testing.T) {
	// Acks without data still satisfy success => data.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusOK, `{"success":true}`)
	}))
	ctx := context.Background()

	logout := c.Logout(ctx)
	assert.True(t, logout.Success)
	assert.NotNil(t, logout.Data)
	assert.Nil(t, logout.Error)

	clientLogout := c.ClientLogout(ctx)
	assert.True(t, clientLogout.Success)
	assert.NotNil(t, clientLogout.Data)

	forgot := c.ForgotPassword(ctx, model.ForgotPasswordRequest{Email: "a@b.com"})
	assert.True(t, forgot.Success)
	assert.NotNil(t, forgot.Data)
}

func TestCreateClientRejectsMalformedEmailBeforeNetwork(t *testing.T) {
	c, hits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusCreated, `{"success":true,"data":{"client":{"id":"c1"},"temporaryPassword":"x"}}`)
	}))

	resp := c.CreateClient(context.Background(), model.CreateClientRequest{Nome: "Bruno", Email: "not-an-email"})

	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, model.CodeBadRequest, resp.Error.Code)
	assert.Equal(t, []model.FieldError{{Field: "email", Message: "must be a valid email address"}}, resp.Error.Details)
	assert.Zero(t, hits.Load(), "no request should reach the backend")
}

func TestCreateClientReturnsTemporaryPassword(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/clients", func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusCreated, `{"success":true,"data":{"client":{"id":"c1","nome":"Bruno","email":"b@c.com","active":true},"temporaryPassword":"Tmp-4821"}}`)
	})
	c, hits := newTestClient(t, r)

	resp := c.CreateClient(context.Background(), model.CreateClientRequest{Nome: "Bruno", Email: "b@c.com"})

	require.True(t, resp.Success)
	assert.Equal(t, "Tmp-4821", resp.Data.TemporaryPassword)
	assert.Equal(t, "c1", resp.Data.Client.ID)
	assert.EqualValues(t, 1, hits.Load())
}

func TestUpdateClient(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c 1", chi.URLParam(r, "id"))
		writeRaw(w, http.StatusOK, `{"success":true,"data":{"id":"c 1","nome":"Novo","active":false}}`)
	})
	c, hits := newTestClient(t, r)
	ctx := context.Background()

	nome := "Novo"
	active := false
	resp := c.UpdateClient(ctx, "c 1", model.UpdateClientRequest{Nome: &nome, Active: &active})
	require.True(t, resp.Success, "%+v", resp.Error)
	assert.Equal(t, "Novo", resp.Data.Nome)

	empty := c.UpdateClient(ctx, "  ", model.UpdateClientRequest{})
	require.False(t, empty.Success)
	assert.Equal(t, "id", empty.Error.Details[0].Field)
	assert.EqualValues(t, 1, hits.Load())
}

func TestClientSideValidation(t *testing.T) {
	c, hits := newTestClient(t, http.NotFoundHandler())
	ctx := context.Background()

	tests := []struct {
		name   string
		resp   func() *model.APIError
		fields []string
	}{
		{
			name: "invite with unknown role",
			resp: func() *model.APIError {
				return c.CreateInvite(ctx, model.InviteRequest{Email: "x@y.com", Role: "OWNER"}).Error
			},
			fields: []string{"role"},
		},
		{
			name: "register with weak password",
			resp: func() *model.APIError {
				return c.Register(ctx, model.RegisterRequest{Nome: "Ana", Email: "a@b.com", Senha: "short"}).Error
			},
			fields: []string{"senha"},
		},
		{
			name: "register missing fields in declaration order",
			resp: func() *model.APIError {
				return c.Register(ctx, model.RegisterRequest{}).Error
			},
			fields: []string{"nome", "email", "senha"},
		},
		{
			name: "workspace slug with spaces",
			resp: func() *model.APIError {
				return c.CreateWorkspace(ctx, model.CreateWorkspaceRequest{Name: "Acme", Slug: "Acme Inc"}).Error
			},
			fields: []string{"slug"},
		},
		{
			name: "client login without workspace",
			resp: func() *model.APIError {
				return c.ClientLogin(ctx, model.ClientLoginRequest{Email: "a@b.com", Senha: "x"}).Error
			},
			fields: []string{"workspaceSlug"},
		},
		{
			name: "reset password without token",
			resp: func() *model.APIError {
				return c.ResetPassword(ctx, model.ResetPasswordRequest{Senha: "Sup3rSecret"}).Error
			},
			fields: []string{"token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := tt.resp()
			require.NotNil(t, apiErr)
			assert.Equal(t, model.CodeBadRequest, apiErr.Code)

			var fields []string
			for _, d := range apiErr.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}

	assert.Zero(t, hits.Load())
}

type countingTransport struct {
	rt    http.RoundTripper
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.rt.RoundTrip(r)
}

func TestSharedTransportKeepsJarsApart(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s1", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{}}`))
	})
	r.Get("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := r.Cookie("sid"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHORIZED","message":"not signed in"}}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"id":"u1"}}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	tr := &countingTransport{rt: NewTransport()}
	a, err := New(srv.URL, WithTransport(tr))
	require.NoError(t, err)
	b, err := New(srv.URL, WithTransport(tr))
	require.NoError(t, err)
	ctx := context.Background()

	require.True(t, a.Login(ctx, model.LoginRequest{Email: "a@b.com", Senha: "Secret123"}).Success)

	assert.True(t, a.Me(ctx).Success)
	assert.False(t, b.Me(ctx).Success)
	assert.Equal(t, int32(3), tr.calls.Load())
}
