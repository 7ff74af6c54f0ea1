package model

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("success drops error and fills data", func(t *testing.T) {
		r := Response[Empty]{Success: true, Error: &APIError{Code: CodeInternalError}}
		if !r.Normalize() {
			t.Fatal("Normalize() = false, want true")
		}
		if r.Error != nil {
			t.Error("error should be dropped on success")
		}
		if r.Data == nil {
			t.Error("data should be filled on success")
		}
	})

	t.Run("failure drops data", func(t *testing.T) {
		u := User{ID: "u1"}
		r := Response[User]{Success: false, Data: &u, Error: &APIError{Code: CodeForbidden}}
		if !r.Normalize() {
			t.Fatal("Normalize() = false, want true")
		}
		if r.Data != nil {
			t.Error("data should be dropped on failure")
		}
	})

	t.Run("failure without error is not repairable", func(t *testing.T) {
		r := Response[User]{Success: false}
		if r.Normalize() {
			t.Error("Normalize() = true, want false")
		}
	})
}

func TestConstructorsKeepInvariant(t *testing.T) {
	ok := OK(Workspace{ID: "w1"})
	if !ok.Success || ok.Data == nil || ok.Error != nil {
		t.Errorf("OK() = %+v, want data only", ok)
	}

	fail := Fail[Workspace](APIError{Code: CodeNotFound})
	if fail.Success || fail.Data != nil || fail.Error == nil {
		t.Errorf("Fail() = %+v, want error only", fail)
	}

	net := NetworkFailure[Workspace]()
	if net.Error == nil || net.Error.Code != CodeNetworkError || net.Error.Message != NetworkErrorMessage {
		t.Errorf("NetworkFailure() = %+v", net)
	}
}

func TestSubscriptionActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{SubscriptionActive, true},
		{SubscriptionTrialing, true},
		{SubscriptionPastDue, false},
		{SubscriptionCanceled, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := (Subscription{Status: tt.status}).Active(); got != tt.want {
			t.Errorf("Subscription{Status: %q}.Active() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
