package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCredentialsRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected a store, got error %v", err)
	}
	in := Credentials{
		Host:     "http://tv.example.com:8080",
		Username: "alice",
		Password: "hunter2-secret",
	}
	if err := s.SaveCredentials(in); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	out, err := s.LoadCredentials()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}

	blob, err := os.ReadFile(filepath.Join(s.Dir(), credentialsFile))
	if err != nil {
		t.Fatalf("expected the credentials file on disk, got %v", err)
	}
	if bytes.Contains(blob, []byte(in.Password)) {
		t.Errorf("expected the stored password sealed, found it in clear text")
	}
	if !bytes.Contains(blob, []byte(in.Username)) {
		t.Errorf("expected the username readable in the file")
	}
}

func TestCredentialsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("expected a store, got error %v", err)
	}
	in := Credentials{Host: "h", Username: "u", Password: "p"}
	if err := s1.SaveCredentials(in); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("expected to reopen the store, got error %v", err)
	}
	out, err := s2.LoadCredentials()
	if err != nil {
		t.Fatalf("expected load after reopen to succeed, got %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestLoadCredentialsMissing(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected a store, got error %v", err)
	}
	if _, err := s.LoadCredentials(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist for a fresh store, got %v", err)
	}
}

func TestClearCredentials(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected a store, got error %v", err)
	}
	if err := s.SaveCredentials(Credentials{Host: "h", Username: "u", Password: "p"}); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	if err := s.ClearCredentials(); err != nil {
		t.Fatalf("expected clear to succeed, got %v", err)
	}
	if _, err := s.LoadCredentials(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist after clearing, got %v", err)
	}
	if err := s.ClearCredentials(); err != nil {
		t.Errorf("expected repeated clear to be a no-op, got %v", err)
	}
}

func TestCredentialsTamperDetected(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("expected a store, got error %v", err)
	}
	if err := s.SaveCredentials(Credentials{Host: "h", Username: "u", Password: "p"}); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	path := filepath.Join(s.Dir(), credentialsFile)
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected to read the credentials file, got %v", err)
	}
	var sc sealedCredentials
	if err := json.Unmarshal(blob, &sc); err != nil {
		t.Fatalf("expected to decode the credentials file, got %v", err)
	}
	flipped := []byte(sc.Password)
	if flipped[0] == 'A' {
		flipped[0] = 'B'
	} else {
		flipped[0] = 'A'
	}
	sc.Password = string(flipped)
	blob, err = json.Marshal(sc)
	if err != nil {
		t.Fatalf("expected to re-encode the credentials file, got %v", err)
	}
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		t.Fatalf("expected to rewrite the credentials file, got %v", err)
	}

	if _, err := s.LoadCredentials(); err == nil {
		t.Errorf("expected a tampered password to fail to unseal")
	}
}
