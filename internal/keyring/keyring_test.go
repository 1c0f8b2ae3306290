package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/tyke?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteConnectionString()

	if _, err := GetConnectionString(); err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetPIN(t *testing.T) {
	gokeyring.MockInit()

	if err := SetPIN("1234"); err != nil {
		t.Fatalf("SetPIN() failed: %v", err)
	}

	pin, err := GetPIN()
	if err != nil {
		t.Fatalf("GetPIN() failed: %v", err)
	}
	if pin != "1234" {
		t.Errorf("GetPIN() = %q, want 1234", pin)
	}
}

func TestSetPINValidation(t *testing.T) {
	gokeyring.MockInit()

	for _, pin := range []string{"", "123", "12345", "12a4", "abcd"} {
		if err := SetPIN(pin); err == nil {
			t.Errorf("SetPIN(%q) should fail", pin)
		}
	}
}

func TestVerifyPIN(t *testing.T) {
	t.Run("no pin set allows access", func(t *testing.T) {
		gokeyring.MockInit()
		_ = DeletePIN()

		ok, err := VerifyPIN("0000")
		if err != nil {
			t.Fatalf("VerifyPIN() failed: %v", err)
		}
		if !ok {
			t.Error("VerifyPIN() should succeed when no PIN is stored")
		}
	})

	t.Run("correct pin", func(t *testing.T) {
		gokeyring.MockInit()
		if err := SetPIN("4321"); err != nil {
			t.Fatalf("SetPIN() failed: %v", err)
		}

		ok, err := VerifyPIN("4321")
		if err != nil {
			t.Fatalf("VerifyPIN() failed: %v", err)
		}
		if !ok {
			t.Error("VerifyPIN() should accept the stored PIN")
		}
	})

	t.Run("wrong pin", func(t *testing.T) {
		gokeyring.MockInit()
		if err := SetPIN("4321"); err != nil {
			t.Fatalf("SetPIN() failed: %v", err)
		}

		ok, err := VerifyPIN("1111")
		if err != nil {
			t.Fatalf("VerifyPIN() failed: %v", err)
		}
		if ok {
			t.Error("VerifyPIN() should reject a wrong PIN")
		}
	})
}
