// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/retr0h/taskboard/internal/authtoken"
	"github.com/retr0h/taskboard/internal/user"
	"github.com/retr0h/taskboard/internal/validation"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	users user.Store,
	tokens TokenManager,
	hasher Hasher,
	opts Options,
) *Service {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}

	return &Service{
		logger: logger,
		users:  users,
		tokens: tokens,
		hasher: hasher,
		opts:   opts,
	}
}

// Issue signs a token for u.
func (s *Service) Issue(
	u *user.User,
) (string, error) {
	token, err := s.tokens.Generate(s.opts.SigningKey, u.ID, u.Email, s.opts.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// Verify validates token and returns its claims. Every failure is reported
// as ErrInvalidToken.
func (s *Service) Verify(
	token string,
) (*authtoken.CustomClaims, error) {
	claims, err := s.tokens.Validate(token, s.opts.SigningKey)
	if err != nil {
		s.logger.Debug(
			"token verification failed",
			slog.String("error", err.Error()),
		)
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ResolveUser loads the user a verified token refers to.
func (s *Service) ResolveUser(
	ctx context.Context,
	id int64,
) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

// Login checks credentials and issues a token. An unknown email and a wrong
// password both return ErrInvalidCredentials.
func (s *Service) Login(
	ctx context.Context,
	in LoginInput,
) (*Result, error) {
	if errMsg, ok := validation.Struct(in); !ok {
		return nil, &ValidationError{Message: errMsg}
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Verify(in.Password, u.PasswordHash); err != nil {
		s.logger.Debug(
			"password mismatch",
			slog.Int64("user_id", u.ID),
		)
		return nil, ErrInvalidCredentials
	}

	return s.result(u)
}

// Register creates an account with role user and issues a token.
func (s *Service) Register(
	ctx context.Context,
	in RegisterInput,
) (*Result, error) {
	in.Email = strings.TrimSpace(in.Email)
	if errMsg, ok := validation.Struct(in); !ok {
		return nil, &ValidationError{Message: errMsg}
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         authtoken.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(
		"registered user",
		slog.Int64("user_id", u.ID),
	)

	return s.result(u)
}

// CreateUser provisions an account with an explicit role. Used by the CLI
// to bootstrap administrators.
func (s *Service) CreateUser(
	ctx context.Context,
	in RegisterInput,
	role authtoken.Role,
) (*user.User, error) {
	if !role.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unsupported role: %s", role)}
	}

	result, err := s.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if role == authtoken.RoleUser {
		return result.User, nil
	}

	result.User.Role = role
	if err := s.users.Update(ctx, result.User); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}

	return result.User, nil
}

// UpdateProfile applies the non-nil fields of in to the user with id.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id int64,
	in ProfileInput,
) (*user.User, error) {
	if errMsg, ok := validation.Struct(in); !ok {
		return nil, &ValidationError{Message: errMsg}
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return u, nil
}

func (s *Service) result(
	u *user.User,
) (*Result, error) {
	token, err := s.Issue(u)
	if err != nil {
		return nil, err
	}

	return &Result{User: u, Token: token}, nil
}
