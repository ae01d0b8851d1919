package service

import (
	"errors"
	"testing"
)

func TestUserRegisterAndAuthenticate(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserService(gdb)

	if _, err := users.Register("leo", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := users.Register("leo", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username: err = %v, want ErrUsernameTaken", err)
	}

	if _, err := users.Authenticate("leo", "secret123"); err != nil {
		t.Errorf("authenticate failed: %v", err)
	}
	if _, err := users.Authenticate("leo", "wrong"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredential", err)
	}
	if _, err := users.Authenticate("ghost", "secret123"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredential", err)
	}
}

func TestRegisterRejectsBlankInput(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserService(gdb)

	if _, err := users.Register("  ", "secret123"); err == nil {
		t.Error("blank username should be rejected")
	}
	if _, err := users.Register("leo", "   "); err == nil {
		t.Error("blank password should be rejected")
	}

	if _, err := users.GetByUsername("leo"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
