package validate

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"owner@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plainaddress", false},
		{"missing@tld", false},
		{"@nodomain.com", false},
		{"spaces in@example.com", false},
		{"user@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidEmail(tt.email); got != tt.valid {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

func TestRules_ValidPassword(t *testing.T) {
	rules := DefaultRules

	if rules.ValidPassword("short7!") {
		t.Error("7 characters should fail the default 8-char minimum")
	}
	if !rules.ValidPassword("exactly8") {
		t.Error("8 characters should pass")
	}

	strict := Rules{PasswordMinLength: 12}
	if strict.ValidPassword("exactly8") {
		t.Error("8 characters should fail a 12-char policy")
	}
}

func TestRules_LoginForm(t *testing.T) {
	rules := DefaultRules

	tests := []struct {
		name       string
		email      string
		password   string
		valid      bool
		wantFields []string
	}{
		{"valid input", "owner@example.com", "longenough", true, nil},
		{"missing both", "", "", false, []string{"email", "password"}},
		{"bad email shape", "not-an-email", "longenough", false, []string{"email"}},
		{"short password", "owner@example.com", "short", false, []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := rules.LoginForm(tt.email, tt.password)
			if res.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", res.Valid, tt.valid, res.Errors)
			}
			for _, f := range tt.wantFields {
				if _, ok := res.Errors[f]; !ok {
					t.Errorf("expected an error for field %q, got %v", f, res.Errors)
				}
			}
			if tt.valid && len(res.Errors) != 0 {
				t.Errorf("valid result should carry no errors, got %v", res.Errors)
			}
		})
	}
}

func TestRules_LoginForm_RequiredBeatsShape(t *testing.T) {
	res := DefaultRules.LoginForm("", "longenough")
	if res.Errors["email"] != MsgEmailRequired {
		t.Errorf("empty email should report %q, got %q", MsgEmailRequired, res.Errors["email"])
	}
}

func TestRules_RegistrationForm(t *testing.T) {
	rules := DefaultRules

	base := Registration{
		Email:           "owner@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		Name:            "Dana Owner",
	}

	t.Run("valid input", func(t *testing.T) {
		res := rules.RegistrationForm(base)
		if !res.Valid {
			t.Fatalf("expected valid, got errors %v", res.Errors)
		}
	})

	t.Run("name too short", func(t *testing.T) {
		in := base
		in.Name = "D"
		res := rules.RegistrationForm(in)
		if res.Valid {
			t.Fatal("single-character name should fail")
		}
		if _, ok := res.Errors["name"]; !ok {
			t.Errorf("expected a name error, got %v", res.Errors)
		}
	})

	t.Run("name trimmed before length check", func(t *testing.T) {
		in := base
		in.Name = "   D   "
		if res := rules.RegistrationForm(in); res.Valid {
			t.Error("whitespace padding should not rescue a short name")
		}
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		in := base
		in.ConfirmPassword = "longenough-x"
		res := rules.RegistrationForm(in)
		if res.Valid {
			t.Fatal("mismatched confirmation should fail")
		}
		if res.Errors["confirm_password"] != MsgPasswordMismatch {
			t.Errorf("expected %q, got %q", MsgPasswordMismatch, res.Errors["confirm_password"])
		}
	})

	t.Run("aggregates all field errors", func(t *testing.T) {
		res := rules.RegistrationForm(Registration{})
		for _, f := range []string{"email", "password", "name"} {
			if _, ok := res.Errors[f]; !ok {
				t.Errorf("expected an error for field %q, got %v", f, res.Errors)
			}
		}
	})
}
