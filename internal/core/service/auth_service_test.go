package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/core/domain"
	"github.com/marketloop/storefront-api/internal/core/ports"
	"github.com/marketloop/storefront-api/pkg/password"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID        map[string]*domain.User
	nextID      int
	findErr     error // if set, lookups return this error
	insertErr   error // if set, Insert returns this error
	updateErr   error // if set, UpdateByID returns this error
	updateCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailAndAnswer(_ context.Context, email, answer string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email && u.SecurityAnswer == answer {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[clone.ID] = cloneUser(clone)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) UpdateByID(_ context.Context, id string, user *domain.User) (*domain.User, error) {
	r.updateCalls++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.byID[id]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := cloneUser(user)
	clone.ID = id
	r.byID[id] = cloneUser(clone)
	return cloneUser(clone), nil
}

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, NewTokenIssuer("secret", time.Hour), zerolog.Nop())
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "password123",
		Phone:    "12345678",
		Address:  "123 Test St",
		Answer:   "Test Answer",
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_MissingFields(t *testing.T) {
	// Drop one field at a time, each time with every earlier field present,
	// and assert the reported message names exactly that field.
	cases := []struct {
		name    string
		mutate  func(*ports.RegisterInput)
		message string
	}{
		{"name", func(in *ports.RegisterInput) { in.Name = "" }, "Name is required"},
		{"email", func(in *ports.RegisterInput) { in.Email = "" }, "Email is required"},
		{"password", func(in *ports.RegisterInput) { in.Password = "" }, "Password is required"},
		{"phone", func(in *ports.RegisterInput) { in.Phone = "" }, "Phone number is required"},
		{"address", func(in *ports.RegisterInput) { in.Address = "" }, "Address is required"},
		{"answer", func(in *ports.RegisterInput) { in.Answer = "" }, "Answer is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAuthService(newStubUserRepo())
			in := validRegisterInput()
			tc.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			ve, ok := domain.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, ve.Message)
			}
		})
	}
}

func TestAuthService_Register_FieldOrder(t *testing.T) {
	// With all fields missing, the first check in the fixed order wins.
	svc := newAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{})
	ve, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Name is required" {
		t.Fatalf("expected the name check to fire first, got %q", ve.Message)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected role customer, got %s", user.Role)
	}
	if user.PasswordHash == "password123" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("password123", user.PasswordHash) {
		t.Fatalf("stored hash does not verify the password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	in := validRegisterInput()
	in.Name = "Someone Else"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.insertErr = errors.New("mongo down")
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), validRegisterInput())
	if err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if !errors.Is(err, repo.insertErr) {
		t.Fatalf("expected underlying cause preserved, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "", "anything"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "user@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_UnregisteredEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "u@x.com", "password123"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword_SoftFail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "user@example.com", "wrongPassword")
	if err != nil {
		t.Fatalf("expected soft fail without error, got %v", err)
	}
	if !result.InvalidPassword {
		t.Fatalf("expected InvalidPassword flag set")
	}
	if result.Token != "" || result.User != nil {
		t.Fatalf("soft fail must not carry a token or user")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "user@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.InvalidPassword {
		t.Fatalf("unexpected InvalidPassword flag")
	}
	if result.User == nil || result.User.Email != "user@example.com" {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != result.User.ID {
		t.Fatalf("expected sub %s, got %v", result.User.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleCustomer {
		t.Fatalf("expected role customer, got %v", claims["role"])
	}
}

func TestAuthService_Login_SigningFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, NewTokenIssuer("", time.Hour), zerolog.Nop())

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), "user@example.com", "password123")
	if !errors.Is(err, ErrSigningKeyMissing) {
		t.Fatalf("expected ErrSigningKeyMissing surfaced, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ForgotPassword
// ---------------------------------------------------------------------------

func TestAuthService_ForgotPassword_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	cases := []struct {
		name    string
		in      ports.ForgotPasswordInput
		message string
	}{
		{"email", ports.ForgotPasswordInput{}, "Email is required"},
		{"answer", ports.ForgotPasswordInput{Email: "u@x.com"}, "Answer is required"},
		{"new password", ports.ForgotPasswordInput{Email: "u@x.com", Answer: "a"}, "New Password is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ForgotPassword(context.Background(), tc.in)
			ve, ok := domain.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, ve.Message)
			}
		})
	}
}

func TestAuthService_ForgotPassword_WrongCombo(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err := svc.ForgotPassword(context.Background(), ports.ForgotPasswordInput{
		Email:       "user@example.com",
		Answer:      "wrong answer",
		NewPassword: "newPW123",
	})
	if !errors.Is(err, domain.ErrWrongEmailOrAnswer) {
		t.Fatalf("expected ErrWrongEmailOrAnswer, got %v", err)
	}
}

func TestAuthService_ForgotPassword_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err = svc.ForgotPassword(context.Background(), ports.ForgotPasswordInput{
		Email:       "user@example.com",
		Answer:      "Test Answer",
		NewPassword: "newPW123",
	})
	if err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}

	stored := repo.byID[created.ID]
	if !password.Verify("newPW123", stored.PasswordHash) {
		t.Fatalf("new password does not verify against the stored hash")
	}
	if password.Verify("password123", stored.PasswordHash) {
		t.Fatalf("old password still verifies")
	}
	// Only the password hash changes.
	if stored.Name != created.Name || stored.Email != created.Email || stored.Phone != created.Phone {
		t.Fatalf("recovery must not touch other fields: %+v", stored)
	}
}

func TestAuthService_ForgotPassword_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo down")
	svc := newAuthService(repo)

	err := svc.ForgotPassword(context.Background(), ports.ForgotPasswordInput{
		Email:       "user@example.com",
		Answer:      "a",
		NewPassword: "newPW123",
	})
	if err == nil || errors.Is(err, domain.ErrWrongEmailOrAnswer) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateProfile
// ---------------------------------------------------------------------------

func TestAuthService_UpdateProfile_PartialMerge(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Old",
		Email:    "old@example.com",
		Password: "password123",
		Phone:    "111",
		Address:  "Old Address",
		Answer:   "answer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Phone: "222"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if updated.Phone != "222" {
		t.Fatalf("expected phone 222, got %s", updated.Phone)
	}
	if updated.Name != "Old" || updated.Email != "old@example.com" || updated.Address != "Old Address" {
		t.Fatalf("untouched fields must keep their stored values: %+v", updated)
	}
	if !password.Verify("password123", updated.PasswordHash) {
		t.Fatalf("password hash must be retained when password is omitted")
	}
	if updated.Role != domain.RoleCustomer {
		t.Fatalf("role must be immutable, got %s", updated.Role)
	}
}

func TestAuthService_UpdateProfile_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.updateCalls = 0

	_, err = svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Password: "123"})
	ve, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Password is required and 6 characters long" {
		t.Fatalf("unexpected message %q", ve.Message)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("length check must fire before any persistence attempt")
	}
}

func TestAuthService_UpdateProfile_NewPasswordHashed(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Password: "fresh-pass"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.PasswordHash == "fresh-pass" {
		t.Fatalf("expected supplied password to be hashed")
	}
	if !password.Verify("fresh-pass", updated.PasswordHash) {
		t.Fatalf("new password does not verify")
	}
}

func TestAuthService_UpdateProfile_LoadFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo down")
	svc := newAuthService(repo)

	_, err := svc.UpdateProfile(context.Background(), "user-1", ports.UpdateProfileInput{Phone: "222"})
	if err == nil {
		t.Fatalf("expected error when load fails")
	}
	if _, ok := domain.AsValidation(err); ok {
		t.Fatalf("load failure must not surface as a validation error")
	}
}
